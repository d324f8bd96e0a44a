package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"devroom/domain"
	"devroom/domain/event"
	"devroom/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const botLabel = "Bevin"

func TestFanoutWorker_RelaysWithSenderExclusion(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broadcaster := mocks.NewMockBroadcaster(ctrl)
	outbound := make(chan event.SanitizedMessage, 1)
	botJobs := make(chan event.BotJob, 1)
	worker := NewFanoutWorker(broadcaster, outbound, botJobs, botLabel, slog.Default())

	msg := domain.ChatMessage{Text: "hello room", Sender: "a@example.com", ProjectID: "p1"}

	delivered := make(chan struct{})
	// Then the relay targets the message's room and excludes the sender conn
	broadcaster.EXPECT().
		Broadcast(gomock.Any(), "p1", msg, "conn-1").
		Do(func(_ context.Context, _ string, _ domain.ChatMessage, _ string) {
			close(delivered)
		}).
		Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	// When a sanitized message reaches the fan-out
	outbound <- event.SanitizedMessage{Msg: msg, ExcludeConn: "conn-1"}

	select {
	case <-delivered:
	case <-time.After(time.Second):
		req.Fail("Broadcast was never called")
	}
	time.Sleep(50 * time.Millisecond)

	// And no assistant job was produced for a plain message
	req.Empty(botJobs)
}

func TestFanoutWorker_MentionEnqueuesBotJob(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broadcaster := mocks.NewMockBroadcaster(ctrl)
	broadcaster.EXPECT().Broadcast(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	outbound := make(chan event.SanitizedMessage, 1)
	botJobs := make(chan event.BotJob, 1)
	worker := NewFanoutWorker(broadcaster, outbound, botJobs, botLabel, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	// When a message mentions the assistant
	outbound <- event.SanitizedMessage{
		Msg:         domain.ChatMessage{Text: "@ai what is 2+2", Sender: "a@example.com", ProjectID: "p1"},
		ExcludeConn: "conn-1",
	}

	// Then a job carrying the stripped directive is queued
	select {
	case job := <-botJobs:
		req.Equal("what is 2+2", job.Prompt)
		req.Equal("p1", job.ProjectID)
	case <-time.After(time.Second):
		req.Fail("No bot job was enqueued")
	}
}

func TestFanoutWorker_BotMessagesNeverTriggerTheAssistant(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broadcaster := mocks.NewMockBroadcaster(ctrl)
	delivered := make(chan struct{})
	broadcaster.EXPECT().
		Broadcast(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ string, _ domain.ChatMessage, _ string) {
			close(delivered)
		}).
		Times(1)

	outbound := make(chan event.SanitizedMessage, 1)
	botJobs := make(chan event.BotJob, 1)
	worker := NewFanoutWorker(broadcaster, outbound, botJobs, botLabel, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	// When the assistant's own reply quotes the token
	outbound <- event.SanitizedMessage{
		Msg: domain.ChatMessage{Text: "you asked @ai about loops", Sender: botLabel, ProjectID: "p1"},
	}

	<-delivered
	time.Sleep(50 * time.Millisecond)

	// Then it is relayed but no new job is spawned
	req.Empty(botJobs)
}

func TestFanoutWorker_EmptyDirectiveSkipsTheCall(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	broadcaster := mocks.NewMockBroadcaster(ctrl)
	delivered := make(chan struct{})
	broadcaster.EXPECT().
		Broadcast(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ string, _ domain.ChatMessage, _ string) {
			close(delivered)
		}).
		Times(1)

	outbound := make(chan event.SanitizedMessage, 1)
	botJobs := make(chan event.BotJob, 1)
	worker := NewFanoutWorker(broadcaster, outbound, botJobs, botLabel, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	// When the message is exactly the token with nothing to ask
	outbound <- event.SanitizedMessage{
		Msg:         domain.ChatMessage{Text: "@ai", Sender: "a@example.com", ProjectID: "p1"},
		ExcludeConn: "conn-1",
	}

	<-delivered
	time.Sleep(50 * time.Millisecond)

	// Then the relay happened but no assistant call is queued
	req.Empty(botJobs)
}
