// Package bridge turns game lifecycle events into session mutations and
// consumer broadcasts.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"mute-bridge/internal/gamecode"
	"mute-bridge/internal/hub"
	"mute-bridge/internal/store"
)

// Kind identifies a lifecycle event from the host runtime.
type Kind string

const (
	KindPlayerJoin         Kind = "player.join"
	KindPlayerLeave        Kind = "player.leave"
	KindPlayerSetName      Kind = "player.setname"
	KindPlayerSetColor     Kind = "player.setcolor"
	KindPlayerDie          Kind = "player.die"
	KindPlayerStartMeeting Kind = "player.startmeeting"
	KindGameStart          Kind = "room.gamestart"
	KindGameEnd            Kind = "room.gameend"
	KindVotingComplete     Kind = "meeting.votingcomplete"
)

// ErrUnknownEvent is returned by Dispatch for kinds with no handler.
var ErrUnknownEvent = errors.New("unknown event kind")

// Event is one lifecycle notification. RoomCode carries the host
// runtime's integer room code.
type Event struct {
	Kind     Kind
	ClientID int
	RoomCode int32
	Name     string
	Color    int
}

// Multicaster is the broadcast surface the bridge emits on.
type Multicaster interface {
	Multicast(group, event string, payload any)
}

type handlerFunc func(ctx context.Context, ev Event) error

// Bridge dispatches lifecycle events through an explicit kind-to-handler
// registry. Each handler runs its store operation first and broadcasts
// only if that operation succeeded; a handler failure never affects
// later events.
type Bridge struct {
	store    store.Store
	out      Multicaster
	handlers map[Kind]handlerFunc
}

func New(st store.Store, out Multicaster) *Bridge {
	b := &Bridge{store: st, out: out}
	b.handlers = map[Kind]handlerFunc{
		KindPlayerJoin:         b.onPlayerJoin,
		KindPlayerLeave:        b.onPlayerLeave,
		KindPlayerSetName:      b.onPlayerSetName,
		KindPlayerSetColor:     b.onPlayerSetColor,
		KindPlayerDie:          b.onPlayerDie,
		KindPlayerStartMeeting: b.onPlayerStartMeeting,
		KindGameStart:          b.onGameStart,
		KindGameEnd:            b.onGameEnd,
		KindVotingComplete:     b.onVotingComplete,
	}
	return b
}

// Dispatch routes an event to its handler.
func (b *Bridge) Dispatch(ctx context.Context, ev Event) error {
	handler, ok := b.handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	return handler(ctx, ev)
}

func (b *Bridge) onPlayerJoin(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	if err := b.store.CreateSession(ctx, ev.ClientID, ev.Name, roomcode); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	b.emit(ctx, EventJoin, roomcode, JoinPayload{
		ClientID: ev.ClientID,
		Roomcode: roomcode,
		Username: ev.Name,
	})
	return nil
}

func (b *Bridge) onPlayerLeave(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	messageID := ""
	id, err := b.store.LookupCorrelation(ctx, ev.ClientID)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		// No session row; the teardown broadcast still goes out with an
		// empty correlation handle.
	case err != nil:
		return fmt.Errorf("lookup correlation: %w", err)
	case id != 0:
		messageID = strconv.FormatUint(id, 10)
	}
	if err := b.store.DeleteSession(ctx, ev.ClientID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	b.emit(ctx, EventLeave, roomcode, LeavePayload{
		ClientID:  ev.ClientID,
		MessageID: messageID,
		Roomcode:  roomcode,
		Username:  ev.Name,
	})
	return nil
}

// onPlayerSetName reuses the join event name; the consumer contract has
// no separate rename notification.
func (b *Bridge) onPlayerSetName(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	if err := b.store.RenameSession(ctx, ev.ClientID, ev.Name); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	b.emit(ctx, EventJoin, roomcode, JoinPayload{
		ClientID: ev.ClientID,
		Roomcode: roomcode,
		Username: ev.Name,
	})
	return nil
}

func (b *Bridge) onPlayerSetColor(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	if err := b.store.RecolorSession(ctx, ev.ClientID, ev.Color); err != nil {
		return fmt.Errorf("recolor session: %w", err)
	}
	b.emit(ctx, EventSetColor, roomcode, SetColorPayload{
		ClientID: ev.ClientID,
		Roomcode: roomcode,
		Username: ev.Name,
	})
	return nil
}

func (b *Bridge) onPlayerDie(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	if err := b.store.MarkGhost(ctx, ev.ClientID); err != nil {
		return fmt.Errorf("mark ghost: %w", err)
	}
	b.emit(ctx, EventPlayerDie, roomcode, RoomPayload{Roomcode: roomcode})
	return nil
}

func (b *Bridge) onPlayerStartMeeting(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	b.emit(ctx, EventStartMeeting, roomcode, RoomPayload{Roomcode: roomcode})
	return nil
}

func (b *Bridge) onGameStart(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	b.emit(ctx, EventGameStart, roomcode, RoomPayload{Roomcode: roomcode})
	return nil
}

func (b *Bridge) onGameEnd(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	b.emit(ctx, EventGameEnd, roomcode, RoomPayload{Roomcode: roomcode})
	return nil
}

func (b *Bridge) onVotingComplete(ctx context.Context, ev Event) error {
	roomcode := gamecode.IntToString(ev.RoomCode)
	b.emit(ctx, EventVotingComplete, roomcode, RoomPayload{Roomcode: roomcode})
	return nil
}

// emit multicasts on the primary group and records a best-effort audit
// row. An audit failure never suppresses the broadcast.
func (b *Bridge) emit(ctx context.Context, event, roomcode string, payload any) {
	b.out.Multicast(hub.GroupPrimary, event, payload)
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := b.store.RecordBroadcast(ctx, roomcode, event, data); err != nil {
		log.Printf("broadcast audit failed event=%s roomcode=%s error=%v", event, roomcode, err)
	}
}
