package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	birthdayrepo "github.com/smallbiznis/togetherbot/internal/birthday/repository"
	birthdaysvc "github.com/smallbiznis/togetherbot/internal/birthday/service"
	"github.com/smallbiznis/togetherbot/internal/clock"
	"github.com/smallbiznis/togetherbot/internal/compatibility"
	"github.com/smallbiznis/togetherbot/internal/config"
	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	entrepo "github.com/smallbiznis/togetherbot/internal/entitlement/repository"
	entsvc "github.com/smallbiznis/togetherbot/internal/entitlement/service"
	holidaydomain "github.com/smallbiznis/togetherbot/internal/holiday/domain"
	holidayrepo "github.com/smallbiznis/togetherbot/internal/holiday/repository"
	holidaysvc "github.com/smallbiznis/togetherbot/internal/holiday/service"
	"github.com/smallbiznis/togetherbot/internal/keylock"
	obsmetrics "github.com/smallbiznis/togetherbot/internal/observability/metrics"
	"github.com/smallbiznis/togetherbot/internal/occurrence"
	relrepo "github.com/smallbiznis/togetherbot/internal/relationship/repository"
	relsvc "github.com/smallbiznis/togetherbot/internal/relationship/service"
	"github.com/smallbiznis/togetherbot/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const userID int64 = 1001

type fixture struct {
	dispatcher   *Dispatcher
	clock        *clock.FakeClock
	entitlements entdomain.Service
}

func newFixture(t *testing.T, premium bool) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, config.Config{PremiumEnabled: premium})
}

func newFixtureWithConfig(t *testing.T, cfg config.Config) *fixture {
	t.Helper()

	conn := dbtest.Open(t)
	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC))
	locker := keylock.NewLocal()

	metrics, err := obsmetrics.New(obsmetrics.Config{ServiceName: "togetherbot"}, prometheus.NewRegistry())
	require.NoError(t, err)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	catalog, err := entdomain.NewCatalog("⭐", []entdomain.Feature{
		{ID: entdomain.FeatureAdvancedStats, Name: "Расширенная статистика", Cost: 50},
		{ID: entdomain.FeatureAddHoliday, Name: "Свои праздники", Cost: 30},
		{ID: entdomain.FeatureCompatibility, Name: "Тест совместимости", Cost: 20},
	})
	require.NoError(t, err)

	entitlements := entsvc.New(entsvc.Params{
		DB: conn, Log: log, Clock: clk, Locker: locker,
		Repo: entrepo.Provide(), Catalog: catalog, Metrics: metrics,
	})

	table := holidaydomain.NewStaticTable([]holidaydomain.Holiday{
		{Name: "New Year", Date: occurrence.MonthDay{Month: time.January, Day: 1}},
		{Name: "Valentine's Day", Date: occurrence.MonthDay{Month: time.February, Day: 14}},
		{Name: "Chinese New Year", Date: occurrence.MonthDay{Month: time.January, Day: 29}},
	})

	d := New(Params{
		Config:  cfg,
		Log:     log,
		Metrics: metrics,
		Node:    node,
		Relationships: relsvc.New(relsvc.Params{
			DB: conn, Log: log, Clock: clk, Locker: locker,
			Repo: relrepo.Provide(), Gate: entitlements,
		}),
		Birthdays: birthdaysvc.New(birthdaysvc.Params{
			DB: conn, Log: log, Clock: clk, Repo: birthdayrepo.Provide(),
		}),
		Holidays: holidaysvc.New(holidaysvc.Params{
			DB: conn, Log: log, Clock: clk, Repo: holidayrepo.Provide(),
			Table: table, Gate: entitlements,
		}),
		Entitlements:  entitlements,
		Compatibility: compatibility.New(compatibility.Params{Log: log, Gate: entitlements}),
	})
	return &fixture{dispatcher: d, clock: clk, entitlements: entitlements}
}

func (f *fixture) send(t *testing.T, text string) string {
	t.Helper()
	reply, ok := f.dispatcher.Handle(context.Background(), userID, text)
	require.True(t, ok, text)
	return reply
}

func TestRelationshipFlow(t *testing.T) {
	f := newFixture(t, false)

	assert.Contains(t, f.send(t, "/count"), "Сначала установи дату")
	assert.Contains(t, f.send(t, "/setdate"), "укажи дату")
	assert.Contains(t, f.send(t, "/setdate 2023-01-01"), "Неверный формат даты")
	assert.Contains(t, f.send(t, "/setdate 02.01.2024"), "не может быть в будущем")

	reply := f.send(t, "/setdate 01.01.2023 Аня")
	assert.Contains(t, reply, "01.01.2023")
	assert.Contains(t, reply, "Аня")

	reply = f.send(t, "/count")
	assert.Contains(t, reply, "Вы с Аня вместе уже 365 дней!")
	assert.Contains(t, reply, "Это 1 год и 0 дней")
	assert.Contains(t, reply, "Целый год вместе")

	reply = f.send(t, "/stats")
	assert.Contains(t, reply, "52 недели")
	assert.Contains(t, reply, "12 месяцев")

	f.send(t, "/setdate 31.12.2023")
	reply = f.send(t, "/count")
	assert.Contains(t, reply, "вместе уже 1 день!")
	assert.NotContains(t, reply, "📊")
}

func TestPluralRuleFromConfig(t *testing.T) {
	f := newFixtureWithConfig(t, config.Config{PluralRule: "cldr", BotLang: "en"})
	f.send(t, "/setdate 01.01.2023")

	reply := f.send(t, "/stats")
	assert.Contains(t, reply, "52 недель")
	assert.Contains(t, reply, "1 год")

	f = newFixtureWithConfig(t, config.Config{PluralRule: "roman", BotLang: "ru"})
	f.send(t, "/setdate 01.01.2023")
	assert.Contains(t, f.send(t, "/stats"), "52 недели")
}

func TestBirthdayFlow(t *testing.T) {
	f := newFixture(t, false)

	assert.Contains(t, f.send(t, "/birthdays"), "Нет добавленных")
	assert.Contains(t, f.send(t, "/addbirthday Маша"), "/addbirthday Имя DD.MM")
	assert.Contains(t, f.send(t, "/addbirthday Маша 31.02"), "Неверный формат даты! Используй: DD.MM")

	assert.Contains(t, f.send(t, "/addbirthday Маша 15.03"), "Маша: 15.03")
	f.send(t, "/addbirthday Маша 02.01")
	f.send(t, "/addbirthday Петя 01.01")

	reply := f.send(t, "/birthdays")
	assert.Contains(t, reply, "Маша: завтра! (02.01)")
	assert.Contains(t, reply, "Сегодня день рождения у Петя")
	assert.NotContains(t, reply, "15.03")

	assert.Contains(t, f.send(t, "/delbirthday Маша"), "удален")
	assert.Contains(t, f.send(t, "/delbirthday Маша"), "не найден")
	assert.Contains(t, f.send(t, "/delbirthday"), "Укажи имя")
}

func TestHolidayCommands(t *testing.T) {
	f := newFixture(t, false)

	reply := f.send(t, "/find new")
	assert.Contains(t, reply, "New Year - СЕГОДНЯ! (01.01)")
	assert.Contains(t, reply, "Chinese New Year - через 28 дней (29.01)")
	assert.NotContains(t, reply, "Valentine")

	assert.Contains(t, f.send(t, "/find easter"), "не найдены")
	assert.Contains(t, f.send(t, "/find"), "Используй: /find")

	assert.Contains(t, f.send(t, "/nextholiday"), "СЕГОДНЯ New Year")

	reply = f.send(t, "/holidays")
	assert.Contains(t, reply, "New Year: СЕГОДНЯ!")
	assert.Contains(t, reply, "Valentine's Day: через 44 дня (14.02)")

	reply = f.send(t, "/allholidays")
	assert.Contains(t, reply, "📅 Январь:")
	assert.Contains(t, reply, "📅 Февраль:")

	assert.Contains(t, f.send(t, "/botday"), "15 ноября")
}

func TestPremiumDisabledHidesCommands(t *testing.T) {
	f := newFixture(t, false)

	assert.Equal(t, replyUnknownCmd, f.send(t, "/premium_shop"))
	assert.Equal(t, replyUnknownCmd, f.send(t, "/buy_advanced_stats"))
	assert.NotContains(t, f.send(t, "/help"), "/premium_shop")
	assert.NotContains(t, f.dispatcher.Commands(), "advanced_stats")

	features, err := f.entitlements.FeaturesOf(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestGatedCommandAfterPurchase(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	f.send(t, "/setdate 01.01.2023")
	assert.Contains(t, f.send(t, "/help"), "/premium_shop")

	reply := f.send(t, "/advanced_stats")
	assert.Contains(t, reply, "50 ⭐")
	assert.Contains(t, reply, "/buy_advanced_stats")

	features, err := f.entitlements.FeaturesOf(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, features)

	assert.Contains(t, f.send(t, "/premium_shop"), "/buy_advanced_stats")
	assert.Contains(t, f.send(t, "/buy_advanced_stats"), "активирована")
	assert.Contains(t, f.send(t, "/buy_advanced_stats"), "уже куплена")
	assert.Contains(t, f.send(t, "/premium_shop"), "Расширенная статистика (куплено)")

	reply = f.send(t, "/advanced_stats")
	assert.Contains(t, reply, "Расширенная статистика")
	assert.Contains(t, reply, "воскресенье")
	assert.Contains(t, reply, "8772 часа")

	features, err = f.entitlements.FeaturesOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []entdomain.FeatureID{entdomain.FeatureAdvancedStats}, features)
}

func TestBuyUnknownFeature(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, replyUnknownFeat, f.send(t, "/buy_free_lunch"))
	features, err := f.entitlements.FeaturesOf(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestPersonalHolidayCommands(t *testing.T) {
	f := newFixture(t, true)

	assert.Contains(t, f.send(t, "/add_holiday Годовщина 05.01"), "/buy_add_holiday")
	f.send(t, "/buy_add_holiday")

	assert.Contains(t, f.send(t, "/add_holiday Годовщина"), "/add_holiday Название DD.MM")
	assert.Contains(t, f.send(t, "/add_holiday Наша годовщина 05.01"), "Наша годовщина: 05.01, через 4 дня")
	assert.Contains(t, f.send(t, "/myholidays"), "Наша годовщина (05.01)")
	assert.Contains(t, f.send(t, "/holidays"), "Наша годовщина")
	assert.Contains(t, f.send(t, "/find годовщина"), "Наша годовщина")
	assert.Contains(t, f.send(t, "/delholiday Наша годовщина"), "удален")
	assert.Contains(t, f.send(t, "/myholidays"), "нет своих праздников")
}

func TestCompatibilityCommand(t *testing.T) {
	f := newFixture(t, true)

	assert.Contains(t, f.send(t, "/compatibility Аня Петя"), "/buy_compatibility")
	f.send(t, "/buy_compatibility")
	assert.Contains(t, f.send(t, "/compatibility Аня"), "/compatibility Имя1 Имя2")

	reply := f.send(t, "/compatibility Аня Петя")
	assert.Contains(t, reply, "Аня + Петя")
	assert.Contains(t, reply, "Совместимость:")
}

func TestBoundaryDropsUnexpectedFailures(t *testing.T) {
	f := newFixture(t, false)
	f.dispatcher.router.Handle("boom", func(ctx context.Context, req Request) (string, error) {
		panic("kaboom")
	})
	f.dispatcher.router.Handle("broken", func(ctx context.Context, req Request) (string, error) {
		return "", errors.New("disk on fire")
	})

	reply, ok := f.dispatcher.Handle(context.Background(), userID, "/boom")
	assert.False(t, ok)
	assert.Empty(t, reply)

	reply, ok = f.dispatcher.Handle(context.Background(), userID, "/broken")
	assert.False(t, ok)
	assert.Empty(t, reply)

	// The dispatcher keeps serving after a failure.
	assert.Contains(t, f.send(t, "/help"), "/count")

	_, ok = f.dispatcher.Handle(context.Background(), userID, "just chatting")
	assert.False(t, ok)
}
