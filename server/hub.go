package server

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/barendas1/Heat-Flow-Modeling/field"
	"github.com/barendas1/Heat-Flow-Modeling/interference"
	"github.com/barendas1/Heat-Flow-Modeling/model"
)

const (
	framePeriod = 100 * time.Millisecond
	maxSpeed    = 200 // substeps per frame at full throttle
)

// Frame is one pushed simulation state: the °F grid, per-sample mean
// temperatures, and simulated seconds elapsed.
type Frame struct {
	Grid    [][]float64        `json:"grid"`
	Samples map[string]float64 `json:"samples"`
	Elapsed float64            `json:"elapsed"`
}

// Hub owns one connection's simulation: the field, the scorer, and the
// request/response/push goroutines. The mutex serializes Step against
// Initialize and reads, so the field keeps its single-writer discipline.
type Hub struct {
	mu      sync.Mutex
	f       *field.Field
	scorer  *interference.Scorer
	samples []*model.Sample

	speed   int // Step calls per pushed frame
	pushing bool
	stop    chan struct{}

	in   chan model.Msg
	out  chan model.Msg
	done chan struct{}
}

func NewHub() *Hub {
	cfg := field.Cfg()
	return &Hub{
		f:      field.New(),
		scorer: interference.NewScorer(cfg.PixelsPerInch, cfg.PairPolicy),
		speed:  1,
		in:     make(chan model.Msg, 10),
		out:    make(chan model.Msg, 10),
		done:   make(chan struct{}),
	}
}

func (h *Hub) close() {
	h.mu.Lock()
	if h.pushing {
		close(h.stop)
		h.pushing = false
	}
	h.mu.Unlock()
	close(h.done)
}

func (h *Hub) handleRequest() {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.in:
			if reply := h.handleMsg(msg); reply != nil {
				h.send(*reply)
			}
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn) {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.out:
			if err := conn.WriteJSON(&msg); err != nil {
				log.Errorf("write failed: %v", err)
				return
			}
		}
	}
}

func (h *Hub) send(msg model.Msg) {
	select {
	case h.out <- msg:
	case <-h.done:
	}
}

func (h *Hub) handleMsg(msg model.Msg) *model.Msg {
	switch msg.Type {
	case "scene":
		return h.handleScene(msg.Content)
	case "start":
		h.mu.Lock()
		defer h.mu.Unlock()
		if !h.f.Ready() {
			return errMsg("start before scene")
		}
		if !h.pushing {
			h.stop = make(chan struct{})
			h.pushing = true
			go h.pushFrames(h.stop)
		}
		return &model.Msg{Type: "started"}
	case "stop":
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.pushing {
			close(h.stop)
			h.pushing = false
		}
		return &model.Msg{Type: "stopped"}
	case "speed":
		n, err := strconv.Atoi(strings.TrimSpace(msg.Content))
		if err != nil || n < 1 {
			return errMsg(fmt.Sprintf("bad speed %q", msg.Content))
		}
		if n > maxSpeed {
			n = maxSpeed
		}
		h.mu.Lock()
		h.speed = n
		h.mu.Unlock()
		return &model.Msg{Type: "speed_set", Content: strconv.Itoa(n)}
	case "sample_temp":
		h.mu.Lock()
		temp := h.f.SampleTemp(strings.TrimSpace(msg.Content))
		h.mu.Unlock()
		return &model.Msg{Type: "sample_temp", Content: strconv.FormatFloat(temp, 'f', 2, 64)}
	case "report":
		h.mu.Lock()
		lines := h.scorer.Report(h.samples, h.f.Elapsed(), h.f)
		h.mu.Unlock()
		return &model.Msg{Type: "report", Content: strings.Join(lines, "\n")}
	default:
		log.Warnf("no such message type: %q", msg.Type)
		return nil
	}
}

func (h *Hub) handleScene(content string) *model.Msg {
	var scene model.Scene
	if err := json.Unmarshal([]byte(content), &scene); err != nil {
		return errMsg(fmt.Sprintf("bad scene: %v", err))
	}
	samples := make([]*model.Sample, len(scene.Samples))
	for i := range scene.Samples {
		samples[i] = &scene.Samples[i]
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.f.Initialize(&scene.Container, samples, scene.RenderWidth, scene.RenderHeight); err != nil {
		return errMsg(err.Error())
	}
	h.samples = samples
	return &model.Msg{Type: "scene_set"}
}

// pushFrames drives the simulation: every frame period it advances the field
// by the configured number of substeps and pushes the snapshot. High playback
// speed widens the substep count, not DeltaT, so the stability bound is never
// silently violated.
func (h *Hub) pushFrames(stop chan struct{}) {
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-h.done:
			return
		case <-ticker.C:
			h.mu.Lock()
			var grid [][]float64
			var err error
			for i := 0; i < h.speed; i++ {
				if grid, err = h.f.Step(); err != nil {
					break
				}
			}
			frame := Frame{
				Grid:    grid,
				Samples: make(map[string]float64, len(h.samples)),
				Elapsed: h.f.Elapsed(),
			}
			for _, s := range h.samples {
				frame.Samples[s.ID] = s.CurrentTemp
			}
			h.mu.Unlock()
			if err != nil {
				log.Errorf("step failed: %v", err)
				return
			}
			data, err := json.Marshal(&frame)
			if err != nil {
				log.Errorf("marshal frame: %v", err)
				continue
			}
			h.send(model.Msg{Type: "frame", Content: string(data)})
		}
	}
}

func errMsg(detail string) *model.Msg {
	return &model.Msg{Type: "error", Content: detail}
}
