//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"devroom/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself; the supervisor recovers its panics.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker
// for logging and supervision, avoiding manual naming on the interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Sink is one delivery target, usually a connected socket. Consume must not
// block the fan-out: implementations drop when their buffer is full.
type Sink interface {
	Consume(ctx context.Context, msg domain.ChatMessage) error
}

// Broadcaster is the room-scoped fan-out surface. A connection belongs to
// exactly one room between Join and Leave. Delivery is best-effort,
// at-most-once, with no ordering guarantee between recipients.
type Broadcaster interface {
	Join(connID, roomID string, sink Sink)
	Leave(connID, roomID string)
	Broadcast(ctx context.Context, roomID string, msg domain.ChatMessage, excludeConnID string)
}
