package migration

import (
	"errors"
	"fmt"

	birthdaydomain "github.com/smallbiznis/togetherbot/internal/birthday/domain"
	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	holidaydomain "github.com/smallbiznis/togetherbot/internal/holiday/domain"
	reldomain "github.com/smallbiznis/togetherbot/internal/relationship/domain"
	"gorm.io/gorm"
)

// Models lists every persisted record kind, one table each.
func Models() []any {
	return []any{
		&reldomain.Relationship{},
		&birthdaydomain.Birthday{},
		&holidaydomain.PersonalHoliday{},
		&entdomain.Entitlement{},
	}
}

// Run creates the tables on startup so a fresh database file is usable
// without an external migration step. Existing tables only gain new columns.
func Run(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
