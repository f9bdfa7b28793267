package config

import "go.uber.org/fx"

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(provideCatalog),
)

func provideCatalog(cfg Config) (Catalog, error) {
	return LoadCatalog(cfg.CatalogPath)
}
