package runtime

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"devroom/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// recordingSink collects every delivered message, safe for concurrent use.
type recordingSink struct {
	mu       sync.Mutex
	received []domain.ChatMessage
	fail     error
}

func (s *recordingSink) Consume(_ context.Context, msg domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.received = append(s.received, msg)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

func TestRegistry_Join_One_Room_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	connID := uuid.NewString()
	roomID := uuid.NewString()
	sink := &recordingSink{}

	// Given no connection exists
	req.Zero(registry.MemberCount(roomID))

	// When a connection joins a room
	registry.Join(connID, roomID, sink)

	// Then
	req.Equal(1, registry.MemberCount(roomID))
	req.Len(registry.sinksForRoom(roomID, ""), 1)
}

func TestRegistry_Join_One_Room_Multiple_Connections(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	roomID := uuid.NewString()

	// When connections join a room
	registry.Join(uuid.NewString(), roomID, &recordingSink{})
	registry.Join(uuid.NewString(), roomID, &recordingSink{})

	// Then
	req.Equal(2, registry.MemberCount(roomID))
	req.Len(registry.sinksForRoom(roomID, ""), 2)
}

func TestRegistry_Leave_Last_Connection_Drops_The_Room(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	connID := uuid.NewString()
	roomID := uuid.NewString()

	// Given a connection joined a room
	registry.Join(connID, roomID, &recordingSink{})

	// When it leaves
	registry.Leave(connID, roomID)

	// Then no member is left and the room entry is gone
	req.Zero(registry.MemberCount(roomID))
	req.Nil(registry.sinksForRoom(roomID, ""))
}

func TestRegistry_Broadcast_Excludes_The_Sender(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	roomID := uuid.NewString()
	senderConn := uuid.NewString()
	senderSink := &recordingSink{}
	otherSink := &recordingSink{}

	// Given two connections in the same room
	registry.Join(senderConn, roomID, senderSink)
	registry.Join(uuid.NewString(), roomID, otherSink)

	msg := domain.ChatMessage{Text: "hello", Sender: "a@example.com", ProjectID: roomID}

	// When a broadcast excludes the sender connection
	registry.Broadcast(context.Background(), roomID, msg, senderConn)

	// Then only the other connection received the message
	req.Zero(senderSink.count())
	req.Equal(1, otherSink.count())
	req.Equal(msg, otherSink.received[0])
}

func TestRegistry_Broadcast_Empty_Exclusion_Reaches_Everyone(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	roomID := uuid.NewString()
	sink1 := &recordingSink{}
	sink2 := &recordingSink{}

	registry.Join(uuid.NewString(), roomID, sink1)
	registry.Join(uuid.NewString(), roomID, sink2)

	// When the exclusion is empty (assistant replies)
	registry.Broadcast(context.Background(), roomID,
		domain.ChatMessage{Text: "reply", Sender: "Bevin", ProjectID: roomID}, "")

	// Then both connections received it
	req.Equal(1, sink1.count())
	req.Equal(1, sink2.count())
}

func TestRegistry_Broadcast_Is_Scoped_To_The_Room(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	roomA := uuid.NewString()
	roomB := uuid.NewString()
	sinkA := &recordingSink{}
	sinkB := &recordingSink{}

	registry.Join(uuid.NewString(), roomA, sinkA)
	registry.Join(uuid.NewString(), roomB, sinkB)

	// When a message is broadcast to room A
	registry.Broadcast(context.Background(), roomA,
		domain.ChatMessage{Text: "hello", ProjectID: roomA}, "")

	// Then room B never sees it
	req.Equal(1, sinkA.count())
	req.Zero(sinkB.count())
}

func TestRegistry_Broadcast_Survives_A_Failing_Sink(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default())
	roomID := uuid.NewString()
	dead := &recordingSink{fail: context.DeadlineExceeded}
	alive := &recordingSink{}

	registry.Join(uuid.NewString(), roomID, dead)
	registry.Join(uuid.NewString(), roomID, alive)

	// When a broadcast hits a failing sink
	registry.Broadcast(context.Background(), roomID,
		domain.ChatMessage{Text: "hello", ProjectID: roomID}, "")

	// Then delivery to the healthy sink is unaffected
	req.Equal(1, alive.count())
}
