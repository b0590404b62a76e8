package store

import (
	"context"
	"sync"

	"mute-bridge/internal/db"
)

// MemoryStore keeps sessions in process memory. Used by tests and for
// running the bridge without a database.
type MemoryStore struct {
	mu         sync.Mutex
	sessions   map[int]db.PlayerSession
	links      map[int]db.LinkedPlayer
	broadcasts []db.BroadcastEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int]db.PlayerSession),
		links:    make(map[int]db.LinkedPlayer),
	}
}

func (s *MemoryStore) CreateSession(ctx context.Context, clientID int, username, roomcode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[clientID]; exists {
		return nil
	}
	s.sessions[clientID] = db.PlayerSession{
		ClientID: clientID,
		Roomcode: roomcode,
		Username: username,
	}
	return nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, clientID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, clientID)
	return nil
}

func (s *MemoryStore) RenameSession(ctx context.Context, clientID int, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[clientID]; exists {
		session.Username = username
		s.sessions[clientID] = session
	}
	return nil
}

func (s *MemoryStore) RecolorSession(ctx context.Context, clientID int, colorID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[clientID]; exists {
		color := colorID
		session.ColorID = &color
		s.sessions[clientID] = session
	}
	return nil
}

func (s *MemoryStore) MarkGhost(ctx context.Context, clientID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[clientID]; exists {
		session.IsGhost = true
		s.sessions[clientID] = session
	}
	return nil
}

func (s *MemoryStore) LookupCorrelation(ctx context.Context, clientID int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[clientID]
	if !exists {
		return 0, ErrSessionNotFound
	}
	if session.DiscordMessageID == nil {
		return 0, nil
	}
	return *session.DiscordMessageID, nil
}

func (s *MemoryStore) LookupLink(ctx context.Context, clientID int) (db.LinkedPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, exists := s.links[clientID]
	if !exists {
		return db.LinkedPlayer{}, ErrSessionNotFound
	}
	return link, nil
}

func (s *MemoryStore) PurgeSessions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[int]db.PlayerSession)
	return nil
}

func (s *MemoryStore) RecordBroadcast(ctx context.Context, roomcode, event string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcasts = append(s.broadcasts, db.BroadcastEvent{
		Roomcode: roomcode,
		Event:    event,
		Payload:  append([]byte(nil), payload...),
	})
	return nil
}

// Session returns a copy of the stored row for inspection.
func (s *MemoryStore) Session(clientID int) (db.PlayerSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[clientID]
	return session, exists
}

// SetCorrelation stores an external message handle on a session, standing
// in for the downstream consumer that owns the discord_* columns.
func (s *MemoryStore) SetCorrelation(clientID int, messageID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[clientID]; exists {
		id := messageID
		session.DiscordMessageID = &id
		s.sessions[clientID] = session
	}
}

// SetLink stores a persistent identity binding.
func (s *MemoryStore) SetLink(link db.LinkedPlayer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[link.ClientID] = link
}
