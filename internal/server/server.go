// Package server exposes the consumer channel and the lifecycle event
// ingest endpoint.
package server

import (
	"net/http"

	"mute-bridge/internal/bridge"
	"mute-bridge/internal/hub"
)

type Server struct {
	bridge *bridge.Bridge
	hub    *hub.Hub
	secret string
}

func New(b *bridge.Bridge, h *hub.Hub, secret string) *Server {
	return &Server{
		bridge: b,
		hub:    h,
		secret: secret,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	mux.HandleFunc("POST /api/events", s.handleLifecycleEvent)
	return mux
}
