package entitlement

import (
	"github.com/smallbiznis/togetherbot/internal/config"
	"github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	"github.com/smallbiznis/togetherbot/internal/entitlement/repository"
	"github.com/smallbiznis/togetherbot/internal/entitlement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("entitlement.service",
	fx.Provide(provideCatalog),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(func(svc domain.Service) domain.Gate { return svc }),
)

func provideCatalog(cat config.Catalog) (*domain.Catalog, error) {
	features := make([]domain.Feature, 0, len(cat.Features))
	for _, f := range cat.Features {
		features = append(features, domain.Feature{
			ID:          domain.FeatureID(f.ID),
			Name:        f.Name,
			Cost:        f.Cost,
			Description: f.Description,
		})
	}
	return domain.NewCatalog(cat.Currency, features)
}
