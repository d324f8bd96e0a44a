// Package event defines the values flowing through the realtime pipeline:
// gateway -> moderation -> fan-out -> (optionally) assistant -> fan-out.
package event

import "devroom/domain"

// MessagePosted is a message as received from a connected client, before
// moderation. SenderConn identifies the originating connection so the relay
// can exclude it (the sender already has a local echo).
type MessagePosted struct {
	Msg        domain.ChatMessage
	SenderConn string
}

// SanitizedMessage is a message ready for fan-out. An empty ExcludeConn
// means every room member receives it, which is how assistant replies are
// delivered.
type SanitizedMessage struct {
	Msg         domain.ChatMessage
	ExcludeConn string
	Lang        string
}

// BotJob is one pending assistant invocation: the mention directive plus
// the room the reply must land in.
type BotJob struct {
	Prompt    string
	ProjectID string
}
