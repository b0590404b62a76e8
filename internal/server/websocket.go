package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"mute-bridge/internal/bridge"
	"mute-bridge/internal/hub"
)

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		writeError(w, http.StatusUnauthorized, "authentication error")
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("consumer connected remote=%s", r.RemoteAddr)
	go s.readConsumer(conn)
}

// readConsumer handles frames from one consumer: group joins, and
// passthrough audio signals relayed verbatim to the secondary group.
// Passthrough frames never touch the session store.
func (s *Server) readConsumer(conn *websocket.Conn) {
	defer s.hub.Leave(conn)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Printf("consumer disconnected error=%v", err)
			return
		}
		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		switch frame.Event {
		case "room":
			var group string
			if err := json.Unmarshal(frame.Data, &group); err != nil || group == "" {
				continue
			}
			s.hub.Join(group, conn)
		case bridge.EventMute, bridge.EventUnmuteUndeafen, bridge.EventMuteDeafen:
			s.hub.Relay(hub.GroupSecondary, frame.Event, frame.Data, conn)
		}
	}
}
