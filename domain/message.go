// Package domain contains core concepts of the collaboration chat system.
// This file defines the wire-level chat message and mention rules.
// Messages are immutable and never persisted: they are forwarded and discarded.
package domain

import "strings"

// MentionToken is the reserved literal that summons the assistant.
// Matching is case-sensitive, exactly as typed by the user.
const MentionToken = "@ai"

// DefaultBotLabel is the reserved sender identifier for assistant replies.
// It is distinct from any real user's email and never passes the gate.
const DefaultBotLabel = "Bevin"

// ChatMessage is the single event shape exchanged over a room socket.
// The same shape is used for user relays and assistant replies; Sender is
// either a verified caller's email or the bot label, never both.
type ChatMessage struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	ProjectID string `json:"projectId"`
}

// Identity is the verified caller behind a connection or request.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// ParseMention reports whether text carries the mention token and, if so,
// returns the directive: the text with the first occurrence of the token
// removed and surrounding whitespace trimmed. Interior whitespace is kept
// as-is, so "hello @ai what" yields "hello  what".
func ParseMention(text string) (string, bool) {
	if !strings.Contains(text, MentionToken) {
		return "", false
	}
	directive := strings.TrimSpace(strings.Replace(text, MentionToken, "", 1))
	return directive, true
}
