package bot

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/snowflake"
	birthdaydomain "github.com/smallbiznis/togetherbot/internal/birthday/domain"
	"github.com/smallbiznis/togetherbot/internal/compatibility"
	"github.com/smallbiznis/togetherbot/internal/config"
	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	holidaydomain "github.com/smallbiznis/togetherbot/internal/holiday/domain"
	obslogger "github.com/smallbiznis/togetherbot/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/togetherbot/internal/observability/metrics"
	"github.com/smallbiznis/togetherbot/internal/plural"
	reldomain "github.com/smallbiznis/togetherbot/internal/relationship/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config        config.Config
	Log           *zap.Logger
	Metrics       *obsmetrics.Metrics `optional:"true"`
	Node          *snowflake.Node
	Relationships reldomain.Service
	Birthdays     birthdaydomain.Service
	Holidays      holidaydomain.Service
	Entitlements  entdomain.Service
	Compatibility compatibility.Service
}

// Dispatcher turns chat commands into replies. Every command runs behind a
// boundary that recovers panics, so one failing command never affects others.
type Dispatcher struct {
	log     *zap.Logger
	metrics *obsmetrics.Metrics
	node    *snowflake.Node
	router  *Router
	premium bool
	text    replies

	relationships reldomain.Service
	birthdays     birthdaydomain.Service
	holidays      holidaydomain.Service
	entitlements  entdomain.Service
	compatibility compatibility.Service
}

func New(p Params) *Dispatcher {
	log := p.Log.Named("bot.dispatcher")
	rule, err := plural.Parse(p.Config.PluralRule, p.Config.BotLang)
	if err != nil {
		log.Warn("falling back to slavic plural rule", zap.Error(err))
		rule = plural.Slavic{}
	}

	d := &Dispatcher{
		log:           log,
		metrics:       p.Metrics,
		node:          p.Node,
		router:        NewRouter(),
		premium:       p.Config.PremiumEnabled,
		text:          replies{rule: rule},
		relationships: p.Relationships,
		birthdays:     p.Birthdays,
		holidays:      p.Holidays,
		entitlements:  p.Entitlements,
		compatibility: p.Compatibility,
	}
	d.registerRoutes()
	return d
}

func (d *Dispatcher) registerRoutes() {
	r := d.router
	r.Handle("start", d.start)
	r.Handle("help", d.help)

	r.Handle("setdate", d.setDate)
	r.Handle("count", d.countDays)
	r.Handle("stats", d.stats)

	r.Handle("addbirthday", d.addBirthday)
	r.Handle("birthdays", d.listBirthdays)
	r.Handle("delbirthday", d.deleteBirthday)

	r.Handle("holidays", d.upcomingHolidays)
	r.Handle("allholidays", d.allHolidays)
	r.Handle("find", d.findHoliday)
	r.Handle("nextholiday", d.nextHoliday)
	r.Handle("botday", d.botDay)

	if !d.premium {
		return
	}
	r.Handle("premium_shop", d.premiumShop)
	r.HandlePrefix("buy_", d.buy)
	r.Handle("advanced_stats", d.advancedStats)
	r.Handle("add_holiday", d.addHoliday)
	r.Handle("myholidays", d.myHolidays)
	r.Handle("delholiday", d.deleteHoliday)
	r.Handle("compatibility", d.checkCompatibility)
}

// Commands lists the registered command names.
func (d *Dispatcher) Commands() []string {
	return d.router.Names()
}

// Handle runs one command for userID. ok is false when text is not a command
// or the reply was dropped after an unexpected failure.
func (d *Dispatcher) Handle(ctx context.Context, userID int64, text string) (reply string, ok bool) {
	cmd, isCommand := ParseCommand(text)
	if !isCommand {
		return "", false
	}

	start := time.Now()
	handler, label, found := d.router.Route(cmd.Name)
	if !found {
		d.metrics.ObserveCommand("unknown", obsmetrics.OutcomeUnknownCmd, time.Since(start))
		return replyUnknownCmd, true
	}

	ctx = obslogger.WithCommand(ctx, d.node.Generate().String(), userID, label)
	log := obslogger.WithContext(ctx, d.log)
	req := Request{UserID: userID, Command: cmd}

	outcome := obsmetrics.OutcomeOK
	defer func() {
		if rec := recover(); rec != nil {
			outcome = obsmetrics.OutcomePanic
			reply, ok = "", false
			log.Error("command panicked",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
		}
		elapsed := time.Since(start)
		d.metrics.ObserveCommand(label, outcome, elapsed)
		log.Info("command handled",
			zap.String("outcome", outcome),
			zap.Duration("duration", elapsed),
		)
	}()

	out, err := handler(ctx, req)
	if err == nil {
		return out, true
	}

	reply, outcome, ok = classify(req, err)
	if !ok {
		log.Error("command failed", zap.Error(err))
		return "", false
	}
	log.Debug("command rejected", zap.Error(err))
	return reply, true
}
