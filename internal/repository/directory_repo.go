package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
)

type DirectoryRepo struct{ db *gorm.DB }

func NewDirectoryRepo(db *gorm.DB) *DirectoryRepo {
	return &DirectoryRepo{db: db}
}

func (r *DirectoryRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Region{}, &domain.Category{}, &domain.Organization{})
}

func (r *DirectoryRepo) CreateRegion(ctx context.Context, reg *domain.Region) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *DirectoryRepo) CreateCategory(ctx context.Context, cat *domain.Category) error {
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *DirectoryRepo) CreateOrganization(ctx context.Context, org *domain.Organization) error {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *DirectoryRepo) Regions(ctx context.Context) ([]domain.Region, error) {
	var out []domain.Region
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *DirectoryRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *DirectoryRepo) OrganizationByID(ctx context.Context, id string) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.db.WithContext(ctx).Preload("Region").Preload("Category").First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Organizations filters by region and/or category; empty ids mean no filter.
func (r *DirectoryRepo) Organizations(ctx context.Context, regionID, categoryID string, limit int) ([]domain.Organization, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Organization{}).Preload("Region").Preload("Category")
	if regionID != "" {
		qb = qb.Where("region_id = ?", regionID)
	}
	if categoryID != "" {
		qb = qb.Where("category_id = ?", categoryID)
	}
	if limit > 0 {
		qb = qb.Limit(limit)
	}
	var out []domain.Organization
	err := qb.Order("name ASC").Find(&out).Error
	return out, err
}

// SearchOrganizations matches name, address or region name,
// case-insensitive, ordered by name.
func (r *DirectoryRepo) SearchOrganizations(ctx context.Context, query string, limit int) ([]domain.Organization, error) {
	pat := "%" + strings.ToLower(query) + "%"
	qb := r.db.WithContext(ctx).Model(&domain.Organization{}).
		Joins("LEFT JOIN regions ON regions.id = organizations.region_id").
		Where("LOWER(organizations.name) LIKE ? OR LOWER(organizations.address) LIKE ? OR LOWER(regions.name) LIKE ?", pat, pat, pat).
		Preload("Region").Preload("Category")
	if limit > 0 {
		qb = qb.Limit(limit)
	}
	var out []domain.Organization
	err := qb.Order("organizations.name ASC").Find(&out).Error
	return out, err
}
