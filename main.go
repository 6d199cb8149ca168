package main

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/barendas1/Heat-Flow-Modeling/field"
	"github.com/barendas1/Heat-Flow-Modeling/server"
)

const configPath = "conf/config.ini"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func listenAddr() string {
	file, err := ini.Load(configPath)
	if err != nil {
		return ":9000"
	}
	return file.Section("server").Key("Addr").MustString(":9000")
}

func main() {
	field.LoadConfig(configPath)
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(listenAddr(), upgrader)
	if err := s.Serve(); err != nil {
		log.Fatal("serve: ", err)
	}
}
