package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mute-bridge/internal/db"
)

// GormStore persists sessions in MariaDB. All statements go through
// gorm's parameter binding; values never appear in query text.
type GormStore struct {
	conn *gorm.DB
}

func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{conn: conn}
}

func (s *GormStore) CreateSession(ctx context.Context, clientID int, username, roomcode string) error {
	record := db.PlayerSession{
		ClientID: clientID,
		Roomcode: roomcode,
		Username: username,
	}
	return s.conn.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error
}

func (s *GormStore) DeleteSession(ctx context.Context, clientID int) error {
	return s.conn.WithContext(ctx).
		Delete(&db.PlayerSession{}, "client_id = ?", clientID).Error
}

func (s *GormStore) RenameSession(ctx context.Context, clientID int, username string) error {
	return s.conn.WithContext(ctx).
		Model(&db.PlayerSession{}).
		Where("client_id = ?", clientID).
		Update("username", username).Error
}

func (s *GormStore) RecolorSession(ctx context.Context, clientID int, colorID int) error {
	return s.conn.WithContext(ctx).
		Model(&db.PlayerSession{}).
		Where("client_id = ?", clientID).
		Update("color_id", colorID).Error
}

func (s *GormStore) MarkGhost(ctx context.Context, clientID int) error {
	return s.conn.WithContext(ctx).
		Model(&db.PlayerSession{}).
		Where("client_id = ?", clientID).
		Update("is_ghost", true).Error
}

func (s *GormStore) LookupCorrelation(ctx context.Context, clientID int) (uint64, error) {
	var record db.PlayerSession
	err := s.conn.WithContext(ctx).
		Select("discord_message_id").
		First(&record, "client_id = ?", clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	if record.DiscordMessageID == nil {
		return 0, nil
	}
	return *record.DiscordMessageID, nil
}

func (s *GormStore) LookupLink(ctx context.Context, clientID int) (db.LinkedPlayer, error) {
	var record db.LinkedPlayer
	err := s.conn.WithContext(ctx).
		First(&record, "client_id = ?", clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.LinkedPlayer{}, ErrSessionNotFound
	}
	return record, err
}

func (s *GormStore) PurgeSessions(ctx context.Context) error {
	return s.conn.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&db.PlayerSession{}).Error
}

func (s *GormStore) RecordBroadcast(ctx context.Context, roomcode, event string, payload []byte) error {
	record := db.BroadcastEvent{
		Roomcode:  roomcode,
		Event:     event,
		Payload:   datatypes.JSON(payload),
		CreatedAt: time.Now().UTC(),
	}
	return s.conn.WithContext(ctx).Create(&record).Error
}
