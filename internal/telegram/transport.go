// Package telegram connects the command dispatcher to the Telegram Bot API
// through long polling.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const pollTimeoutSeconds = 30

// API is the part of *tgbotapi.BotAPI the transport uses.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	StopReceivingUpdates()
}

// Handler answers a command. ok is false when nothing should be sent.
type Handler interface {
	Handle(ctx context.Context, userID int64, text string) (reply string, ok bool)
}

type Transport struct {
	api     API
	handler Handler
	workers int
	log     *zap.Logger
}

func NewTransport(api API, handler Handler, workers int, log *zap.Logger) *Transport {
	if workers <= 0 {
		workers = 1
	}
	return &Transport{
		api:     api,
		handler: handler,
		workers: workers,
		log:     log.Named("telegram.transport"),
	}
}

// Run consumes updates until ctx is done or the update channel closes.
// At most workers commands run at once; receiving pauses while the pool is
// full. In-flight commands are allowed to finish before Run returns.
func (t *Transport) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := t.api.GetUpdatesChan(cfg)

	var g errgroup.Group
	g.SetLimit(t.workers)

	work := context.WithoutCancel(ctx)
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case update, ok := <-updates:
			if !ok {
				break loop
			}
			g.Go(func() error {
				t.process(work, update)
				return nil
			})
		}
	}
	return g.Wait()
}

func (t *Transport) process(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	reply, ok := t.handler.Handle(ctx, msg.From.ID, msg.Text)
	if !ok || reply == "" {
		return
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ReplyToMessageID = msg.MessageID
	if _, err := t.api.Send(out); err != nil {
		t.log.Warn("send reply failed",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Int("update_id", update.UpdateID),
			zap.Error(err),
		)
	}
}
