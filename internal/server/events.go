package server

import (
	"errors"
	"log"
	"net/http"

	"mute-bridge/internal/bridge"
)

type lifecycleEventRequest struct {
	Type     string `json:"type"`
	ClientID int    `json:"client_id"`
	RoomCode int32  `json:"room_code"`
	Name     string `json:"name"`
	Color    int    `json:"color"`
}

// handleLifecycleEvent accepts one lifecycle event from the host game
// runtime and dispatches it through the bridge.
func (s *Server) handleLifecycleEvent(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		writeError(w, http.StatusUnauthorized, "authentication error")
		return
	}
	var req lifecycleEventRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ev := bridge.Event{
		Kind:     bridge.Kind(req.Type),
		ClientID: req.ClientID,
		RoomCode: req.RoomCode,
		Name:     req.Name,
		Color:    req.Color,
	}
	if err := s.bridge.Dispatch(r.Context(), ev); err != nil {
		if errors.Is(err, bridge.ErrUnknownEvent) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("event handling failed type=%s client_id=%d error=%v", req.Type, req.ClientID, err)
		writeError(w, http.StatusInternalServerError, "event handling failed")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
