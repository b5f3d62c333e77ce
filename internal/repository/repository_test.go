package repository

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. A single pooled connection
// keeps sqlite writers serialized; the conditional updates under test stay
// atomic per statement either way.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func migrateAll(t *testing.T, gdb *gorm.DB) (*SlotRepo, *BookingRepo, *DirectoryRepo, *UserRepo) {
	t.Helper()
	slots := NewSlotRepo(gdb)
	bookings := NewBookingRepo(gdb)
	dir := NewDirectoryRepo(gdb)
	users := NewUserRepo(gdb)
	require.NoError(t, dir.Migrate())
	require.NoError(t, users.Migrate())
	require.NoError(t, slots.Migrate())
	require.NoError(t, bookings.Migrate())
	return slots, bookings, dir, users
}
