// Package store holds the per-player session records for connected game
// clients.
package store

import (
	"context"
	"errors"

	"mute-bridge/internal/db"
)

// ErrSessionNotFound is returned by lookups when no session row exists
// for the client.
var ErrSessionNotFound = errors.New("session not found")

// Store is the session persistence surface used by the event bridge.
// Every operation is a single statement; mutations on absent rows are
// no-ops.
type Store interface {
	// CreateSession inserts a session row, ignoring duplicates.
	CreateSession(ctx context.Context, clientID int, username, roomcode string) error
	DeleteSession(ctx context.Context, clientID int) error
	RenameSession(ctx context.Context, clientID int, username string) error
	RecolorSession(ctx context.Context, clientID int, colorID int) error
	// MarkGhost sets the ghost flag. The flag never reverts before the
	// row is deleted.
	MarkGhost(ctx context.Context, clientID int) error
	// LookupCorrelation returns the stored external message handle, 0
	// when the row exists without one, ErrSessionNotFound when absent.
	LookupCorrelation(ctx context.Context, clientID int) (uint64, error)
	// LookupLink reads the persistent identity binding for a client.
	LookupLink(ctx context.Context, clientID int) (db.LinkedPlayer, error)
	// PurgeSessions drops every session row. Run once at startup;
	// sessions never outlive the game server process.
	PurgeSessions(ctx context.Context) error
	// RecordBroadcast appends an audit row for an emitted broadcast.
	RecordBroadcast(ctx context.Context, roomcode, event string, payload []byte) error
}
