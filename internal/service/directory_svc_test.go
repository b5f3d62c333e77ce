package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
)

type mapCache struct {
	data map[string]string
	gets int
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: map[string]string{}} }

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.gets++
	return c.data[key], nil
}

func (c *mapCache) Set(_ context.Context, key, val string, _ time.Duration) error {
	c.sets++
	c.data[key] = val
	return nil
}

func TestHomepageUsesCacheOnSecondHit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedSlot(t, 1, slotStart) // seeds region/category/org as a side effect

	cache := newMapCache()
	dir := NewDirectoryService(env.dir, env.slots, cache, time.Minute)

	first, err := dir.Homepage(ctx, "")
	require.NoError(t, err)
	require.Len(t, first.Organizations, 1)
	assert.Equal(t, 1, cache.sets)

	second, err := dir.Homepage(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, first.Organizations[0].ID, second.Organizations[0].ID)
	assert.Equal(t, 1, cache.sets, "second hit must come from cache")
}

func TestHomepageSearchBypassesCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.seedSlot(t, 1, slotStart)

	org, err := env.dir.OrganizationByID(ctx, s.OrganizationID)
	require.NoError(t, err)

	cache := newMapCache()
	dir := NewDirectoryService(env.dir, env.slots, cache, time.Minute)

	page, err := dir.Homepage(ctx, org.Name)
	require.NoError(t, err)
	require.Len(t, page.Organizations, 1)
	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.sets)

	page, err = dir.Homepage(ctx, "hech-narsa-topilmaydi")
	require.NoError(t, err)
	assert.Empty(t, page.Organizations)
}

func TestOpenSlotsWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.seedSlot(t, 1, time.Now().Add(24*time.Hour))

	// outside the 7-day window
	far := &domain.TimeSlot{OrganizationID: s.OrganizationID, StartTime: time.Now().AddDate(0, 0, 30), MaxBookings: 1}
	require.NoError(t, env.slots.Create(ctx, far))

	dir := NewDirectoryService(env.dir, env.slots, nil, 0)
	got, err := dir.OpenSlots(ctx, s.OrganizationID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, s.ID, got[0].ID)
}

func TestCreateSlotValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.seedSlot(t, 1, slotStart)
	dir := NewDirectoryService(env.dir, env.slots, nil, 0)

	_, err := dir.CreateSlot(ctx, &domain.TimeSlot{
		OrganizationID: s.OrganizationID,
		StartTime:      slotStart.Add(time.Hour),
		DurationMin:    3, // below the 5-minute floor
	})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	created, err := dir.CreateSlot(ctx, &domain.TimeSlot{
		OrganizationID: s.OrganizationID,
		StartTime:      slotStart.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 15, created.DurationMin)
	assert.EqualValues(t, 1, created.MaxBookings)
	assert.EqualValues(t, 0, created.CurrentBookings)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.auth.Register(ctx, "asilbek", "asilbek@navbatyoq.uz", "parol123", "+998901234567")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)

	p, err := env.auth.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "+998901234567", p.PhoneNumber)

	assert.Equal(t, []string{"user.registered"}, env.pub.keys())

	tok, err := env.auth.Login(ctx, "asilbek", "parol123")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	_, err = env.auth.Login(ctx, "asilbek", "notog'ri")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "yoq", "parol123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
