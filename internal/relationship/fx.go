package relationship

import (
	"github.com/smallbiznis/togetherbot/internal/relationship/repository"
	"github.com/smallbiznis/togetherbot/internal/relationship/service"
	"go.uber.org/fx"
)

var Module = fx.Module("relationship.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
