package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/smallbiznis/togetherbot/internal/bot"
	"github.com/smallbiznis/togetherbot/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("telegram",
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, cfg config.Config, dispatcher *bot.Dispatcher, log *zap.Logger) {
	if cfg.BotToken == "" {
		log.Warn("BOT_TOKEN is empty, chat transport disabled")
		return
	}

	var (
		api    *tgbotapi.BotAPI
		cancel context.CancelFunc
		done   = make(chan struct{})
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			api, err = tgbotapi.NewBotAPI(cfg.BotToken)
			if err != nil {
				return fmt.Errorf("connect telegram: %w", err)
			}
			log.Info("telegram bot authorized",
				zap.String("username", api.Self.UserName),
				zap.Int("workers", cfg.BotWorkers),
			)

			transport := NewTransport(api, dispatcher, cfg.BotWorkers, log)
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			go func() {
				defer close(done)
				if err := transport.Run(runCtx); err != nil {
					log.Error("telegram transport stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel == nil {
				return nil
			}
			cancel()
			api.StopReceivingUpdates()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
