package bot

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

var Module = fx.Module("bot",
	fx.Provide(New),
)

// NewNode returns the id generator for command correlation ids.
func NewNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
