package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/barendas1/Heat-Flow-Modeling/model"
)

// Server exposes the solver over a websocket endpoint. Each connection gets
// its own hub and field, so concurrent clients run independent simulations.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
}

func NewServer(addr string, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	hub := NewHub()
	defer hub.close()
	go hub.handleRequest()
	go hub.writeLoop(conn)

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			log.Infof("connection closed: %v", err)
			return
		}
		hub.in <- msg
	}
}

func (s *Server) Serve() error {
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.serveWs(w, r)
	})
	log.Infof("listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}
