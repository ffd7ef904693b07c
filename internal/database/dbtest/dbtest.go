// internal/database/dbtest/dbtest.go

// Package dbtest opens throwaway in-memory catalog databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/storefront-catalog/internal/database"
)

var seq int64

// Open returns an empty in-memory sqlite database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:catalog%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", atomic.AddInt64(&seq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// New is Open plus the catalog schema.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	require.NoError(t, database.RunMigrations(db))
	return db
}
