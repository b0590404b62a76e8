// Package hub routes consumer websocket connections into named broadcast
// groups and multicasts payloads to them.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Groups used on the consumer channel.
const (
	GroupPrimary   = "main"
	GroupSecondary = "second"
)

type frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type Hub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

func New() *Hub {
	return &Hub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Join adds a connection to a named group. A connection may belong to
// several groups at once.
func (h *Hub) Join(group string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members := h.groups[group]
	if members == nil {
		members = make(map[*websocket.Conn]struct{})
		h.groups[group] = members
	}
	members[conn] = struct{}{}
}

// Leave drops a connection from every group and closes it.
func (h *Hub) Leave(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for group, members := range h.groups {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
	_ = conn.Close()
}

// GroupSize reports the current membership of a group.
func (h *Hub) GroupSize(group string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[group])
}

// Multicast delivers an event frame to every member of a group.
// Delivery is fire-and-forget: there is no acknowledgment, and a member
// whose write fails is dropped.
func (h *Hub) Multicast(group, event string, payload any) {
	h.Relay(group, event, payload, nil)
}

// Relay is Multicast with the originating connection excluded, used when
// forwarding a frame received from one consumer to its group peers.
func (h *Hub) Relay(group, event string, payload any, from *websocket.Conn) {
	h.mu.Lock()
	members := h.groups[group]
	conns := make([]*websocket.Conn, 0, len(members))
	for conn := range members {
		if conn == from {
			continue
		}
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(frame{Event: event, Data: payload})
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Leave(conn)
		}
	}
}
