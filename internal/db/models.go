package db

import (
	"time"

	"gorm.io/datatypes"
)

// PlayerSession is one row per connected game client. The discord_*
// columns are written by the downstream consumer; this service only
// reads them.
type PlayerSession struct {
	ClientID         int     `gorm:"column:client_id;primaryKey"`
	Roomcode         string  `gorm:"size:6;not null"`
	Username         string  `gorm:"size:10;not null"`
	ColorID          *int    `gorm:"column:color_id"`
	IsGhost          bool    `gorm:"not null;default:false"`
	IsHost           bool    `gorm:"not null;default:false"`
	DiscordUserID    *uint64 `gorm:"column:discord_user_id"`
	DiscordMessageID *uint64 `gorm:"column:discord_message_id"`
	DiscordVoiceID   *uint64 `gorm:"column:discord_voice_id"`
}

func (PlayerSession) TableName() string { return "players" }

// LinkedPlayer is a persistent identity binding between a client and an
// external user handle, independent of any single session.
type LinkedPlayer struct {
	ClientID      int     `gorm:"column:client_id;primaryKey"`
	Username      string  `gorm:"size:10;not null"`
	DiscordUserID *uint64 `gorm:"column:discord_user_id"`
}

func (LinkedPlayer) TableName() string { return "linked_players" }

// BroadcastEvent is an audit row recorded for every primary-group
// broadcast.
type BroadcastEvent struct {
	ID        uint           `gorm:"primaryKey"`
	Roomcode  string         `gorm:"size:6;not null;index"`
	Event     string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (BroadcastEvent) TableName() string { return "broadcast_events" }
