package main

import (
	_ "time/tzdata"

	"github.com/smallbiznis/togetherbot/internal/birthday"
	"github.com/smallbiznis/togetherbot/internal/bot"
	"github.com/smallbiznis/togetherbot/internal/clock"
	"github.com/smallbiznis/togetherbot/internal/compatibility"
	"github.com/smallbiznis/togetherbot/internal/config"
	"github.com/smallbiznis/togetherbot/internal/entitlement"
	"github.com/smallbiznis/togetherbot/internal/holiday"
	"github.com/smallbiznis/togetherbot/internal/keylock"
	"github.com/smallbiznis/togetherbot/internal/migration"
	"github.com/smallbiznis/togetherbot/internal/observability"
	"github.com/smallbiznis/togetherbot/internal/relationship"
	"github.com/smallbiznis/togetherbot/internal/server"
	"github.com/smallbiznis/togetherbot/internal/telegram"
	"github.com/smallbiznis/togetherbot/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(bot.NewNode),
		db.Module,
		migration.Module,
		clock.Module,
		keylock.Module,

		// Functional Domains
		entitlement.Module,
		relationship.Module,
		birthday.Module,
		holiday.Module,
		compatibility.Module,

		// Surfaces
		bot.Module,
		server.Module,
		telegram.Module,
	)
	app.Run()
}
