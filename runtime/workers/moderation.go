package workers

import (
	"context"
	"log/slog"

	"devroom/domain/event"
	"devroom/moderation"

	"github.com/abadojack/whatlanggo"
)

// ModerationWorker sits between the gateway and the fan-out: it censors
// forbidden words and tags the detected language before the message is
// relayed. The message text is otherwise forwarded untouched.
type ModerationWorker struct {
	moderator moderation.Moderator
	inbound   chan event.MessagePosted
	outbound  chan event.SanitizedMessage
	log       *slog.Logger
}

func NewModerationWorker(moderator moderation.Moderator,
	inbound chan event.MessagePosted, outbound chan event.SanitizedMessage,
	log *slog.Logger) *ModerationWorker {
	return &ModerationWorker{
		moderator: moderator,
		inbound:   inbound,
		outbound:  outbound,
		log:       log,
	}
}

func (w ModerationWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case in, ok := <-w.inbound:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			select {
			case <-ctx.Done():
				w.log.Debug("Stopping worker")
				return ctx.Err()
			case w.outbound <- w.toSanitized(in):
			}
		}
	}
}

func (w ModerationWorker) toSanitized(in event.MessagePosted) event.SanitizedMessage {
	info := whatlanggo.Detect(in.Msg.Text)
	langCode := info.Lang.Iso6391()

	sanitized, foundWords := w.moderator.Censor(in.Msg.Text)
	if len(foundWords) > 0 {
		w.log.Warn("Message censored",
			"room_id", in.Msg.ProjectID,
			"sender", in.Msg.Sender,
			"lang", langCode,
			"words", len(foundWords))
	}

	msg := in.Msg
	msg.Text = sanitized
	return event.SanitizedMessage{
		Msg:         msg,
		ExcludeConn: in.SenderConn,
		Lang:        langCode,
	}
}
