package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/repository"
)

type published struct {
	Key     string
	Payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, published{Key: key, Payload: v})
	return nil
}

func (f *fakePublisher) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Key
	}
	return out
}

type testEnv struct {
	slots    *repository.SlotRepo
	bookings *repository.BookingRepo
	users    *repository.UserRepo
	dir      *repository.DirectoryRepo
	pub      *fakePublisher
	booking  *BookingService
	auth     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		slots:    repository.NewSlotRepo(gdb),
		bookings: repository.NewBookingRepo(gdb),
		users:    repository.NewUserRepo(gdb),
		dir:      repository.NewDirectoryRepo(gdb),
		pub:      &fakePublisher{},
	}
	require.NoError(t, env.dir.Migrate())
	require.NoError(t, env.users.Migrate())
	require.NoError(t, env.slots.Migrate())
	require.NoError(t, env.bookings.Migrate())

	env.booking = NewBookingService(env.slots, env.bookings, env.users, env.dir, env.pub)
	env.auth = NewAuthService(env.users, env.pub, "test-secret", time.Minute)
	return env
}

func (e *testEnv) seedUser(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@navbatyoq.uz", PasswordHash: "x"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) seedSlot(t *testing.T, capacity int32, start time.Time) *domain.TimeSlot {
	t.Helper()
	ctx := context.Background()
	reg := &domain.Region{Name: "Toshkent-" + uuid.NewString(), Slug: uuid.NewString()}
	require.NoError(t, e.dir.CreateRegion(ctx, reg))
	cat := &domain.Category{Name: "Klinika-" + uuid.NewString(), Slug: uuid.NewString()}
	require.NoError(t, e.dir.CreateCategory(ctx, cat))
	org := &domain.Organization{Name: "Org-" + uuid.NewString(), RegionID: reg.ID, CategoryID: cat.ID}
	require.NoError(t, e.dir.CreateOrganization(ctx, org))

	s := &domain.TimeSlot{OrganizationID: org.ID, StartTime: start, DurationMin: 15, MaxBookings: capacity}
	require.NoError(t, e.slots.Create(ctx, s))
	return s
}

// errIs is assert.ErrorIs without the test-failure side effect, for use in
// tallying loops.
func errIs(err, target error) bool { return errors.Is(err, target) }
