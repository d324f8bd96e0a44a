package workers

import (
	"context"
	"log/slog"
	"time"

	"devroom/ai"
	"devroom/domain"
	"devroom/domain/event"
)

// BotWorker consumes pending assistant invocations, calls the responder
// once per job and feeds the reply back into the fan-out path as a room-wide
// message attributed to the bot label.
//
// A failed generation is logged and dropped: the triggering user gets no
// in-room error. The call is not tied to the triggering connection either;
// if that client disconnects mid-call, the reply still reaches the room.
type BotWorker struct {
	responder ai.Responder
	botJobs   chan event.BotJob
	outbound  chan event.SanitizedMessage
	botLabel  string
	timeout   time.Duration
	log       *slog.Logger
}

func NewBotWorker(responder ai.Responder, botJobs chan event.BotJob,
	outbound chan event.SanitizedMessage, botLabel string, timeout time.Duration,
	log *slog.Logger) *BotWorker {
	return &BotWorker{
		responder: responder,
		botJobs:   botJobs,
		outbound:  outbound,
		botLabel:  botLabel,
		timeout:   timeout,
		log:       log,
	}
}

func (w *BotWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case job, ok := <-w.botJobs:
			if !ok {
				return nil
			}
			w.handle(ctx, job)
		}
	}
}

func (w *BotWorker) handle(ctx context.Context, job event.BotJob) {
	genCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	reply, err := w.responder.Generate(genCtx, job.Prompt)
	if err != nil {
		w.log.Error("Assistant generation failed",
			"room_id", job.ProjectID,
			"latency_ms", time.Since(start).Milliseconds(),
			"error", err)
		return
	}

	w.log.Debug("Assistant reply generated",
		"room_id", job.ProjectID,
		"latency_ms", time.Since(start).Milliseconds())

	out := event.SanitizedMessage{
		Msg: domain.ChatMessage{
			Text:      reply,
			Sender:    w.botLabel,
			ProjectID: job.ProjectID,
		},
		// No exclusion: the triggering sender receives the reply too.
	}

	select {
	case <-ctx.Done():
	case w.outbound <- out:
	}
}
