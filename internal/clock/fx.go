package clock

import (
	"github.com/smallbiznis/togetherbot/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("clock",
	fx.Provide(func(cfg config.Config) Clock {
		return NewSystemClock(cfg.Location())
	}),
)
