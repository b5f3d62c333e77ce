package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
)

var (
	// ErrAlreadyBooked means the (user, slot) pair already has a booking.
	ErrAlreadyBooked = errors.New("already_booked")
	// ErrAlreadyTerminal means the booking is cancelled or completed and
	// cannot transition again.
	ErrAlreadyTerminal = errors.New("booking_already_terminal")
	// ErrCodeCollision means the generated booking code lost a race with a
	// concurrent insert. The caller can regenerate and retry.
	ErrCodeCollision = errors.New("booking_code_collision")
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{})
}

// Create inserts a pending booking. The unique (user, slot) index backs up
// the application-level duplicate check against racing requests.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			// both sqlite and postgres name the breached index after the
			// column, so this tells a code race apart from a double booking
			if strings.Contains(strings.ToLower(err.Error()), "booking_code") {
				return ErrCodeCollision
			}
			return ErrAlreadyBooked
		}
		return err
	}
	return nil
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) ExistsForUserSlot(ctx context.Context, userID, slotID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("user_id = ? AND time_slot_id = ?", userID, slotID).
		Count(&n).Error
	return n > 0, err
}

func (r *BookingRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("booking_code = ?", code).
		Count(&n).Error
	return n > 0, err
}

// CancelAndRelease marks the booking cancelled and frees its seat in one
// transaction. The status change is a compare-and-set over the live
// statuses, so a second cancel loses the race cleanly and the seat is
// never released twice.
func (r *BookingRepo) CancelAndRelease(ctx context.Context, bookingID, slotID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Booking{}).
			Where("id = ? AND status IN ?", bookingID, []string{domain.StatusPending, domain.StatusConfirmed}).
			Update("status", domain.StatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyTerminal
		}
		return releaseSlot(tx, slotID)
	})
}

// TransitionStatus moves a booking from any of the given statuses to the
// target status. Zero affected rows means the booking was already past
// those states.
func (r *BookingRepo) TransitionStatus(ctx context.Context, id string, from []string, to string) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyTerminal
	}
	return nil
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("TimeSlot").
		Preload("TimeSlot.Organization").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite (tests) reports constraint breaches without gorm translation
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
