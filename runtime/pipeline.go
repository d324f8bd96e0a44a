// Package runtime owns message propagation: room membership, moderation,
// fan-out and the assistant path. It orchestrates the realtime layer without
// containing business rules.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"devroom/ai"
	"devroom/contract"
	"devroom/domain/event"
	"devroom/moderation"
	"devroom/observability"
	"devroom/runtime/workers"
)

// PipelineConfig bounds the channel buffers and the assistant call.
type PipelineConfig struct {
	BufferSize      int
	BotQueueSize    int
	BotLabel        string
	BotTimeout      time.Duration
	CharReplacement rune
}

// Pipeline wires the realtime workers together under a supervisor:
//
//	gateway --inbound--> moderation --outbound--> fanout --jobs--> bot
//	                                    ^__________________________|
//
// Message ordering is preserved per sender relative to the single dispatch
// path; an assistant reply to an earlier mention may land after newer human
// messages, which is an accepted property of the fire-and-forget call.
type Pipeline struct {
	log        *slog.Logger
	supervisor contract.ISupervisor
	registry   *Registry
	responder  ai.Responder
	monitor    *observability.Monitor
	cfg        PipelineConfig

	inbound  chan event.MessagePosted
	outbound chan event.SanitizedMessage
	botJobs  chan event.BotJob
}

func NewPipeline(log *slog.Logger, supervisor contract.ISupervisor,
	registry *Registry, responder ai.Responder,
	monitor *observability.Monitor, cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		log:        log,
		supervisor: supervisor,
		registry:   registry,
		responder:  responder,
		monitor:    monitor,
		cfg:        cfg,
		inbound:    make(chan event.MessagePosted, cfg.BufferSize),
		outbound:   make(chan event.SanitizedMessage, cfg.BufferSize),
		botJobs:    make(chan event.BotJob, cfg.BotQueueSize),
	}
}

// Broadcaster exposes the room membership surface consumed by the gateway.
func (p *Pipeline) Broadcaster() contract.Broadcaster {
	return p.registry
}

// Dispatch hands an inbound message to the pipeline. Non-blocking: when the
// buffer is full the message is dropped with a warning, never queued behind
// a slow consumer.
func (p *Pipeline) Dispatch(in event.MessagePosted) {
	p.monitor.MessageSeen()
	select {
	case p.inbound <- in:
	default:
		p.log.Warn("Inbound channel full, dropping message", "room_id", in.Msg.ProjectID)
	}
}

// Start builds the moderation automaton, registers all workers and runs the
// supervisor. It blocks until ctx is canceled and every worker has stopped.
func (p *Pipeline) Start(ctx context.Context) error {
	words, err := moderation.LoadEmbeddedWords()
	if err != nil {
		return err
	}
	p.log.Info("Censored word lists loaded",
		"languages", len(words.Languages), "words", len(words.Words))

	moderator, err := moderation.NewModerator(words.Words, p.cfg.CharReplacement)
	if err != nil {
		return err
	}

	p.supervisor.Add(
		workers.NewModerationWorker(moderator, p.inbound, p.outbound, p.log),
		workers.NewFanoutWorker(p.registry, p.outbound, p.botJobs, p.cfg.BotLabel, p.log),
		workers.NewBotWorker(p.responder, p.botJobs, p.outbound, p.cfg.BotLabel, p.cfg.BotTimeout, p.log),
	)

	p.log.Info("Starting realtime pipeline")
	p.supervisor.Run(ctx)
	return nil
}

// Stop asks the supervisor to cancel all workers.
func (p *Pipeline) Stop() {
	p.log.Info("Requesting pipeline shutdown")
	p.supervisor.Stop()
}
