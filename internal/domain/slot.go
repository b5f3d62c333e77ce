package domain

import "time"

// MinSlotDurationMin is the shortest bookable window, in minutes.
const MinSlotDurationMin = 5

// TimeSlot is one bookable window at one organization. CurrentBookings
// counts active (non-cancelled) bookings and never exceeds MaxBookings;
// IsClosed holds exactly when the slot is at capacity. Both columns are
// mutated only through the repository's claim/release updates.
type TimeSlot struct {
	ID              string    `gorm:"primaryKey"`
	OrganizationID  string    `gorm:"index:idx_slot_org_start,unique"`
	StartTime       time.Time `gorm:"index:idx_slot_org_start,unique"`
	DurationMin     int32     `gorm:"default:15"`
	MaxBookings     int32     `gorm:"default:1"`
	CurrentBookings int32     `gorm:"default:0"`
	IsClosed        bool      `gorm:"default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Organization *Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

func (s *TimeSlot) Available() bool {
	return !s.IsClosed && s.CurrentBookings < s.MaxBookings
}

func (s *TimeSlot) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMin) * time.Minute)
}
