package compatibility

import "go.uber.org/fx"

var Module = fx.Module("compatibility.service",
	fx.Provide(New),
)
