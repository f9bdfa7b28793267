// Package dbtest opens an isolated, migrated in-memory store for tests.
package dbtest

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/smallbiznis/togetherbot/internal/migration"
	"github.com/smallbiznis/togetherbot/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Open returns a fresh database named after the test. It is closed, and
// therefore dropped, when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := unsafeChars.ReplaceAllString(t.Name(), "_")
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString()[:8])

	conn, err := db.Open(db.Config{Type: "sqlite", Path: dsn, MaxOpenConn: 1}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := migration.Run(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}
