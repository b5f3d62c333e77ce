package domain

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Terminal reports whether a status admits no further transitions.
func Terminal(status string) bool {
	return status == StatusCancelled || status == StatusCompleted
}

// Booking is one user's claim on a TimeSlot. The (user, slot) pair is
// unique: the same slot cannot be booked twice by one user, cancelled or
// not. BookingCode is assigned once at creation and never changes.
type Booking struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index:idx_booking_user_slot,unique"`
	TimeSlotID  string `gorm:"index:idx_booking_user_slot,unique"`
	Status      string `gorm:"index;default:pending"`
	BookingCode string `gorm:"uniqueIndex;size:50"`
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	TimeSlot *TimeSlot `gorm:"foreignKey:TimeSlotID"`
}
