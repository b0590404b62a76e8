package bridge

// Event names emitted on the consumer channel.
const (
	EventJoin           = "on_join"
	EventLeave          = "on_leave"
	EventSetColor       = "on_setcolor"
	EventGameStart      = "on_game_start"
	EventGameEnd        = "on_game_end"
	EventPlayerDie      = "on_player_die"
	EventStartMeeting   = "on_player_start_meeting"
	EventVotingComplete = "on_meeting_voting_complete"

	// Passthrough signals relayed verbatim on the secondary group.
	EventMute           = "on_mute"
	EventUnmuteUndeafen = "on_unmute_undeafen"
	EventMuteDeafen     = "on_mute_deafen"
)

type JoinPayload struct {
	ClientID int    `json:"client_id"`
	Roomcode string `json:"roomcode"`
	Username string `json:"username"`
}

type LeavePayload struct {
	ClientID int `json:"client_id"`
	// MessageID echoes the correlation handle the downstream consumer
	// stored on the session; empty when none was ever set.
	MessageID string `json:"message_id"`
	Roomcode  string `json:"roomcode"`
	Username  string `json:"username"`
}

type SetColorPayload struct {
	ClientID int    `json:"client_id"`
	Roomcode string `json:"roomcode"`
	Username string `json:"username"`
}

type RoomPayload struct {
	Roomcode string `json:"roomcode"`
}
