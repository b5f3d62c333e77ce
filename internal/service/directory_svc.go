package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/repository"
)

// ErrInvalidSlot covers slot definitions that break the schedule rules.
var ErrInvalidSlot = errors.New("invalid_slot")

const (
	homepageOrgLimit = 10
	slotWindowDays   = 7
	homepageCacheKey = "homepage:orgs"
)

// Cache is the slice of go-redis the directory needs. Misses and transport
// errors fall through to the database.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
}

type DirectoryService struct {
	repo  *repository.DirectoryRepo
	slots *repository.SlotRepo
	cache Cache // nil disables caching
	ttl   time.Duration
	now   func() time.Time
}

func NewDirectoryService(repo *repository.DirectoryRepo, slots *repository.SlotRepo, cache Cache, ttl time.Duration) *DirectoryService {
	return &DirectoryService{repo: repo, slots: slots, cache: cache, ttl: ttl, now: time.Now}
}

type Homepage struct {
	Regions       []domain.Region       `json:"regions"`
	Categories    []domain.Category     `json:"categories"`
	Organizations []domain.Organization `json:"organizations"`
}

// Homepage returns the landing-page data: all regions and categories plus
// the top organizations, optionally narrowed by a free-text search.
func (s *DirectoryService) Homepage(ctx context.Context, search string) (*Homepage, error) {
	regions, err := s.repo.Regions(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	var orgs []domain.Organization
	if search != "" {
		orgs, err = s.repo.SearchOrganizations(ctx, search, homepageOrgLimit)
	} else {
		orgs, err = s.topOrganizations(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &Homepage{Regions: regions, Categories: categories, Organizations: orgs}, nil
}

func (s *DirectoryService) topOrganizations(ctx context.Context) ([]domain.Organization, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, homepageCacheKey); err == nil && raw != "" {
			var cached []domain.Organization
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	orgs, err := s.repo.Organizations(ctx, "", "", homepageOrgLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(orgs); err == nil {
			if err := s.cache.Set(ctx, homepageCacheKey, string(raw), s.ttl); err != nil {
				log.Printf("[directory] cache homepage orgs: %v", err)
			}
		}
	}
	return orgs, nil
}

func (s *DirectoryService) Regions(ctx context.Context) ([]domain.Region, error) {
	return s.repo.Regions(ctx)
}

func (s *DirectoryService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.Categories(ctx)
}

func (s *DirectoryService) Organizations(ctx context.Context, regionID, categoryID string) ([]domain.Organization, error) {
	return s.repo.Organizations(ctx, regionID, categoryID, 0)
}

func (s *DirectoryService) Organization(ctx context.Context, id string) (*domain.Organization, error) {
	return s.repo.OrganizationByID(ctx, id)
}

// OpenSlots lists the organization's bookable windows for the next week.
func (s *DirectoryService) OpenSlots(ctx context.Context, orgID string) ([]domain.TimeSlot, error) {
	if _, err := s.repo.OrganizationByID(ctx, orgID); err != nil {
		return nil, err
	}
	from := s.now()
	return s.slots.ListOpen(ctx, orgID, from, from.AddDate(0, 0, slotWindowDays))
}

// CreateSlot publishes a new bookable window for an organization.
func (s *DirectoryService) CreateSlot(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	if _, err := s.repo.OrganizationByID(ctx, slot.OrganizationID); err != nil {
		return nil, err
	}
	if slot.DurationMin == 0 {
		slot.DurationMin = 15
	}
	if slot.MaxBookings == 0 {
		slot.MaxBookings = 1
	}
	if slot.DurationMin < domain.MinSlotDurationMin || slot.MaxBookings < 1 || slot.StartTime.IsZero() {
		return nil, ErrInvalidSlot
	}
	slot.CurrentBookings = 0
	slot.IsClosed = false
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}
