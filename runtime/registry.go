package runtime

import (
	"context"
	"log/slog"
	"sync"

	"devroom/contract"
	"devroom/domain"
)

type set map[string]struct{}

// Registry is the room membership table, the only shared mutable structure
// of the realtime layer. It is mutated exclusively by connection lifecycle
// events (join/leave) and read by broadcasts, which iterate a snapshot so
// concurrent joins and leaves stay safe.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]contract.Sink // connection id -> sink
	roomMembers map[string]set           // room id -> connection ids
	log         *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		sessions:    make(map[string]contract.Sink),
		roomMembers: make(map[string]set),
		log:         log,
	}
}

// Join registers a connection's sink and assigns it to roomID. The room is
// created implicitly on first join.
func (r *Registry) Join(connID, roomID string, sink contract.Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[connID] = sink

	if _, ok := r.roomMembers[roomID]; !ok {
		r.roomMembers[roomID] = make(set)
	}
	r.roomMembers[roomID][connID] = struct{}{}
}

// Leave removes a connection from its room. The room entry itself is
// dropped when the last member leaves, so empty rooms never linger.
func (r *Registry) Leave(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, connID)

	if members, ok := r.roomMembers[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.roomMembers, roomID)
		}
	}
}

// Broadcast delivers msg to every member of roomID except excludeConnID
// (empty string excludes nobody). Sinks are collected under a read lock and
// consumed outside it; a full or dead sink misses the message, it is never
// waited on.
func (r *Registry) Broadcast(ctx context.Context, roomID string, msg domain.ChatMessage, excludeConnID string) {
	for _, sink := range r.sinksForRoom(roomID, excludeConnID) {
		if err := sink.Consume(ctx, msg); err != nil {
			r.log.Debug("Sink dropped a message", "room_id", roomID, "error", err)
		}
	}
}

// MemberCount reports the current number of connections in a room.
func (r *Registry) MemberCount(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roomMembers[roomID])
}

func (r *Registry) sinksForRoom(roomID, excludeConnID string) []contract.Sink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[roomID]
	if !ok {
		return nil
	}
	sinks := make([]contract.Sink, 0, len(members))
	for connID := range members {
		if connID == excludeConnID {
			continue
		}
		if sink, exists := r.sessions[connID]; exists {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}
