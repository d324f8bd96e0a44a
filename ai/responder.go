//go:generate go run go.uber.org/mock/mockgen -source=responder.go -destination=../mocks/mock_responder.go -package=mocks
package ai

import "context"

// Responder produces a free-text reply for a prompt. One attempt, no retry,
// no streaming: a failure is terminal for that prompt.
type Responder interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
