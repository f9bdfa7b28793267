package holiday

import (
	"github.com/smallbiznis/togetherbot/internal/config"
	"github.com/smallbiznis/togetherbot/internal/holiday/domain"
	"github.com/smallbiznis/togetherbot/internal/holiday/repository"
	"github.com/smallbiznis/togetherbot/internal/holiday/service"
	"github.com/smallbiznis/togetherbot/internal/occurrence"
	"go.uber.org/fx"
)

var Module = fx.Module("holiday.service",
	fx.Provide(provideStaticTable),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

func provideStaticTable(cat config.Catalog) (*domain.StaticTable, error) {
	holidays := make([]domain.Holiday, 0, len(cat.Holidays))
	for _, h := range cat.Holidays {
		md, err := occurrence.ParseMonthDay(h.Date)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, domain.Holiday{Name: h.Name, Date: md})
	}
	return domain.NewStaticTable(holidays), nil
}
