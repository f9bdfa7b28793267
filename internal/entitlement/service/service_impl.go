package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smallbiznis/togetherbot/internal/clock"
	"github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	"github.com/smallbiznis/togetherbot/internal/keylock"
	obslogger "github.com/smallbiznis/togetherbot/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/togetherbot/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Locker  keylock.Locker
	Repo    domain.Repository
	Catalog *domain.Catalog
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	locker  keylock.Locker
	repo    domain.Repository
	catalog *domain.Catalog
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("entitlement.service"),
		clock:   p.Clock,
		locker:  p.Locker,
		repo:    p.Repo,
		catalog: p.Catalog,
		metrics: p.Metrics,
	}
}

func (s *Service) Catalog() *domain.Catalog {
	return s.catalog
}

func (s *Service) Has(ctx context.Context, userID int64, feature domain.FeatureID) (bool, error) {
	if userID == 0 {
		return false, domain.ErrInvalidUser
	}
	current, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return false, err
	}
	return current.Has(feature), nil
}

func (s *Service) Require(ctx context.Context, userID int64, feature domain.FeatureID) error {
	ok, err := s.Has(ctx, userID, feature)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	f, found := s.catalog.Lookup(feature)
	if !found {
		f = domain.Feature{ID: feature, Name: string(feature)}
	}
	return &domain.DeniedError{Feature: f, Currency: s.catalog.Currency()}
}

func (s *Service) FeaturesOf(ctx context.Context, userID int64) ([]domain.FeatureID, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	current, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return current.Features(), nil
}

func (s *Service) Shop(ctx context.Context, userID int64) ([]domain.ShopItem, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	current, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	features := s.catalog.List()
	items := make([]domain.ShopItem, 0, len(features))
	for _, f := range features {
		items = append(items, domain.ShopItem{Feature: f, Owned: current.Has(f.ID)})
	}
	return items, nil
}

// Grant adds feature to the user's set. Payment is not verified. The
// read-append-write runs under the user's key lock inside one transaction so
// concurrent grants for the same user cannot lose each other.
func (s *Service) Grant(ctx context.Context, userID int64, feature domain.FeatureID) (*domain.GrantResult, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	f, ok := s.catalog.Lookup(feature)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFeature, feature)
	}

	unlock, err := s.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return nil, fmt.Errorf("lock entitlement: %w", err)
	}
	defer unlock()

	result := &domain.GrantResult{Feature: f}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			current = &domain.Entitlement{UserID: userID}
		}
		if current.Has(feature) {
			result.AlreadyOwned = true
			return nil
		}

		current.PurchasedFeatures = append(current.Features(), feature)
		current.PurchaseDate = s.clock.Now().UTC()
		return s.repo.Upsert(ctx, tx, current)
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyOwned {
		s.metrics.RecordGrant(string(feature))
		obslogger.WithContext(ctx, s.log).Info("feature granted", zap.String("feature", string(feature)))
	}
	return result, nil
}

func lockKey(userID int64) string {
	return "entitlement:" + strconv.FormatInt(userID, 10)
}
