package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
)

func seedDirectory(t *testing.T, dir *DirectoryRepo) (domain.Region, domain.Category) {
	t.Helper()
	ctx := context.Background()
	reg := domain.Region{Name: "Toshkent", Slug: "toshkent"}
	require.NoError(t, dir.CreateRegion(ctx, &reg))
	cat := domain.Category{Name: "Klinika", Slug: "klinika"}
	require.NoError(t, dir.CreateCategory(ctx, &cat))
	return reg, cat
}

func TestOrganizationsFilterByRegionAndCategory(t *testing.T) {
	_, _, dir, _ := migrateAll(t, newTestDB(t))
	ctx := context.Background()
	reg, cat := seedDirectory(t, dir)

	other := domain.Region{Name: "Samarqand", Slug: "samarqand"}
	require.NoError(t, dir.CreateRegion(ctx, &other))

	require.NoError(t, dir.CreateOrganization(ctx, &domain.Organization{
		Name: "Shifo Klinikasi", RegionID: reg.ID, CategoryID: cat.ID, Address: "Chilonzor 5",
	}))
	require.NoError(t, dir.CreateOrganization(ctx, &domain.Organization{
		Name: "Registon Servis", RegionID: other.ID, CategoryID: cat.ID, Address: "Registon 1",
	}))

	got, err := dir.Organizations(ctx, reg.ID, "", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Shifo Klinikasi", got[0].Name)

	got, err = dir.Organizations(ctx, "", cat.ID, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchOrganizationsMatchesNameAddressRegion(t *testing.T) {
	_, _, dir, _ := migrateAll(t, newTestDB(t))
	ctx := context.Background()
	reg, cat := seedDirectory(t, dir)

	require.NoError(t, dir.CreateOrganization(ctx, &domain.Organization{
		Name: "Shifo Klinikasi", RegionID: reg.ID, CategoryID: cat.ID, Address: "Chilonzor 5",
	}))
	require.NoError(t, dir.CreateOrganization(ctx, &domain.Organization{
		Name: "Avto Servis", RegionID: reg.ID, CategoryID: cat.ID, Address: "Yunusobod 12",
	}))

	byName, err := dir.SearchOrganizations(ctx, "shifo", 0)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Shifo Klinikasi", byName[0].Name)

	byAddress, err := dir.SearchOrganizations(ctx, "yunusobod", 0)
	require.NoError(t, err)
	require.Len(t, byAddress, 1)
	assert.Equal(t, "Avto Servis", byAddress[0].Name)

	byRegion, err := dir.SearchOrganizations(ctx, "toshkent", 0)
	require.NoError(t, err)
	assert.Len(t, byRegion, 2)
}

func TestOrganizationNameUniquePerRegion(t *testing.T) {
	_, _, dir, _ := migrateAll(t, newTestDB(t))
	ctx := context.Background()
	reg, cat := seedDirectory(t, dir)

	require.NoError(t, dir.CreateOrganization(ctx, &domain.Organization{
		Name: "Shifo Klinikasi", RegionID: reg.ID, CategoryID: cat.ID,
	}))
	err := dir.CreateOrganization(ctx, &domain.Organization{
		Name: "Shifo Klinikasi", RegionID: reg.ID, CategoryID: cat.ID,
	})
	assert.Error(t, err)
}

func TestUserCreateAlsoCreatesProfile(t *testing.T) {
	_, _, _, users := migrateAll(t, newTestDB(t))
	ctx := context.Background()

	u := &domain.User{Username: "asilbek", Email: "asilbek@navbatyoq.uz", PasswordHash: "x", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, u))

	p, err := users.ProfileByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)

	dup := &domain.User{Username: "asilbek", Email: "other@navbatyoq.uz", PasswordHash: "x"}
	assert.ErrorIs(t, users.Create(ctx, dup), ErrUserExists)
}
