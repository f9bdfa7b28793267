package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/togetherbot/internal/clock"
	"github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	"github.com/smallbiznis/togetherbot/internal/entitlement/repository"
	"github.com/smallbiznis/togetherbot/internal/keylock"
	obsmetrics "github.com/smallbiznis/togetherbot/internal/observability/metrics"
	"github.com/smallbiznis/togetherbot/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const userID int64 = 42

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	cat, err := domain.NewCatalog("⭐", []domain.Feature{
		{ID: domain.FeatureAdvancedStats, Name: "Расширенная статистика", Cost: 50},
		{ID: domain.FeatureAddHoliday, Name: "Свои праздники", Cost: 30},
		{ID: domain.FeatureCompatibility, Name: "Тест совместимости", Cost: 20},
	})
	require.NoError(t, err)
	return cat
}

func setupService(t *testing.T) (*Service, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics, err := obsmetrics.New(obsmetrics.Config{ServiceName: "togetherbot"}, reg)
	require.NoError(t, err)

	svc := New(Params{
		DB:      dbtest.Open(t),
		Log:     zap.NewNop(),
		Clock:   clock.NewFakeClock(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)),
		Locker:  keylock.NewLocal(),
		Repo:    repository.Provide(),
		Catalog: testCatalog(t),
		Metrics: metrics,
	})
	return svc.(*Service), reg
}

func grantCount(t *testing.T, reg *prometheus.Registry, feature domain.FeatureID) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "togetherbot_entitlement_grants_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "feature" && label.GetValue() == string(feature) {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestGrantIsIdempotent(t *testing.T) {
	svc, reg := setupService(t)
	ctx := context.Background()

	first, err := svc.Grant(ctx, userID, domain.FeatureAdvancedStats)
	require.NoError(t, err)
	assert.False(t, first.AlreadyOwned)
	assert.Equal(t, 50, first.Feature.Cost)

	for i := 0; i < 4; i++ {
		again, err := svc.Grant(ctx, userID, domain.FeatureAdvancedStats)
		require.NoError(t, err)
		assert.True(t, again.AlreadyOwned)
	}

	features, err := svc.FeaturesOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []domain.FeatureID{domain.FeatureAdvancedStats}, features)
	assert.Equal(t, 1.0, grantCount(t, reg, domain.FeatureAdvancedStats))
}

func TestGrantUnknownFeature(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Grant(ctx, userID, domain.FeatureID("free_lunch"))
	require.ErrorIs(t, err, domain.ErrUnknownFeature)

	features, err := svc.FeaturesOf(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestGrantInvalidUser(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.Grant(context.Background(), 0, domain.FeatureAdvancedStats)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestConcurrentGrantsKeepEveryFeature(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	features := []domain.FeatureID{
		domain.FeatureAdvancedStats,
		domain.FeatureAddHoliday,
		domain.FeatureCompatibility,
	}

	var wg sync.WaitGroup
	for round := 0; round < 5; round++ {
		for _, f := range features {
			wg.Add(1)
			go func(f domain.FeatureID) {
				defer wg.Done()
				_, err := svc.Grant(ctx, userID, f)
				assert.NoError(t, err)
			}(f)
		}
	}
	wg.Wait()

	got, err := svc.FeaturesOf(ctx, userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, features, got)
}

func TestRequireDeniesWithoutSideEffects(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	err := svc.Require(ctx, userID, domain.FeatureAdvancedStats)
	require.ErrorIs(t, err, domain.ErrEntitlementDenied)

	var denied *domain.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, 50, denied.Feature.Cost)
	assert.Equal(t, "⭐", denied.Currency)

	features, err := svc.FeaturesOf(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, features)

	_, err = svc.Grant(ctx, userID, domain.FeatureAdvancedStats)
	require.NoError(t, err)
	assert.NoError(t, svc.Require(ctx, userID, domain.FeatureAdvancedStats))
	assert.ErrorIs(t, svc.Require(ctx, userID, domain.FeatureAddHoliday), domain.ErrEntitlementDenied)
}

func TestShopMarksOwned(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Grant(ctx, userID, domain.FeatureAddHoliday)
	require.NoError(t, err)

	items, err := svc.Shop(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, item.ID == domain.FeatureAddHoliday, item.Owned, item.ID)
	}

	other, err := svc.Shop(ctx, userID+1)
	require.NoError(t, err)
	for _, item := range other {
		assert.False(t, item.Owned)
	}
}

func TestGrantStampsPurchaseDate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Grant(ctx, userID, domain.FeatureCompatibility)
	require.NoError(t, err)

	stored, err := svc.repo.FindByUserID(ctx, svc.db, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.PurchaseDate.Equal(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)))
}
