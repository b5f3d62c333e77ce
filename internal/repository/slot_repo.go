package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
)

// ErrSlotUnavailable means the slot had no free seat at the moment of the
// claim. Retryable only by picking another slot.
var ErrSlotUnavailable = errors.New("slot_unavailable")

type SlotRepo struct{ db *gorm.DB }

func NewSlotRepo(db *gorm.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

func (r *SlotRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.TimeSlot{})
}

func (r *SlotRepo) Create(ctx context.Context, s *domain.TimeSlot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SlotRepo) ByID(ctx context.Context, id string) (*domain.TimeSlot, error) {
	var s domain.TimeSlot
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListOpen returns the organization's slots in [from, to) that still have a
// free seat, soonest first.
func (r *SlotRepo) ListOpen(ctx context.Context, orgID string, from, to time.Time) ([]domain.TimeSlot, error) {
	var out []domain.TimeSlot
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND start_time >= ? AND start_time < ?", orgID, from, to).
		Where("is_closed = ? AND current_bookings < max_bookings", false).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

// TryClaim reserves one seat. The guard and the increment are a single
// conditional UPDATE, so two concurrent claims on the last seat resolve to
// exactly one winner; a separate read-compare-write here would race.
func (r *SlotRepo) TryClaim(ctx context.Context, id string) error {
	return claimSlot(r.db.WithContext(ctx), id)
}

// Release returns one seat. Releasing an already-empty slot is a no-op.
func (r *SlotRepo) Release(ctx context.Context, id string) error {
	return releaseSlot(r.db.WithContext(ctx), id)
}

// claimSlot and releaseSlot are shared with the booking repository so a
// cancel can release inside its own transaction. is_closed is always
// recomputed from the counters, never pinned to a constant.

func claimSlot(tx *gorm.DB, id string) error {
	res := tx.Model(&domain.TimeSlot{}).
		Where("id = ? AND current_bookings < max_bookings", id).
		Updates(map[string]any{
			"current_bookings": gorm.Expr("current_bookings + 1"),
			"is_closed":        gorm.Expr("current_bookings + 1 >= max_bookings"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

func releaseSlot(tx *gorm.DB, id string) error {
	return tx.Model(&domain.TimeSlot{}).
		Where("id = ? AND current_bookings > 0", id).
		Updates(map[string]any{
			"current_bookings": gorm.Expr("current_bookings - 1"),
			"is_closed":        gorm.Expr("current_bookings - 1 >= max_bookings"),
		}).Error
}
