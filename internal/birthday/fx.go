package birthday

import (
	"github.com/smallbiznis/togetherbot/internal/birthday/repository"
	"github.com/smallbiznis/togetherbot/internal/birthday/service"
	"go.uber.org/fx"
)

var Module = fx.Module("birthday.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
