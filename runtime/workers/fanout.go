package workers

import (
	"context"
	"log/slog"

	"devroom/contract"
	"devroom/domain"
	"devroom/domain/event"
)

// FanoutWorker delivers sanitized messages to their room and spots assistant
// mentions. The relay always happens first; a detected mention only enqueues
// a BotJob and never delays or blocks the delivery.
//
// Loop prevention: a message whose sender is the bot label is relayed but
// never triggers another assistant call, even if it contains the token.
type FanoutWorker struct {
	broadcaster contract.Broadcaster
	outbound    chan event.SanitizedMessage
	botJobs     chan event.BotJob
	botLabel    string
	log         *slog.Logger
}

func NewFanoutWorker(broadcaster contract.Broadcaster, outbound chan event.SanitizedMessage,
	botJobs chan event.BotJob, botLabel string, log *slog.Logger) *FanoutWorker {
	return &FanoutWorker{
		broadcaster: broadcaster,
		outbound:    outbound,
		botJobs:     botJobs,
		botLabel:    botLabel,
		log:         log,
	}
}

func (w FanoutWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case out, ok := <-w.outbound:
			if !ok {
				return nil
			}
			w.broadcaster.Broadcast(ctx, out.Msg.ProjectID, out.Msg, out.ExcludeConn)
			w.detectMention(out.Msg)
		}
	}
}

func (w FanoutWorker) detectMention(msg domain.ChatMessage) {
	if msg.Sender == w.botLabel {
		return
	}
	directive, ok := domain.ParseMention(msg.Text)
	if !ok {
		return
	}
	if directive == "" {
		// Message was exactly the token: nothing to ask, skip the call.
		w.log.Debug("Empty mention directive ignored", "room_id", msg.ProjectID)
		return
	}

	select {
	case w.botJobs <- event.BotJob{Prompt: directive, ProjectID: msg.ProjectID}:
	default:
		w.log.Warn("Bot queue full, dropping mention", "room_id", msg.ProjectID)
	}
}
