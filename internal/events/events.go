package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys published on the booking exchange.
const (
	RKBookingCreated   = "booking.created"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCancelled = "booking.cancelled"

	RKUserRegistered = "user.registered"
)

// BookingEvent carries everything the notification worker needs to render
// and address a message, so the worker never queries the database.
type BookingEvent struct {
	BookingID   string `json:"booking_id"`
	BookingCode string `json:"booking_code"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	OrgName     string `json:"org_name"`
	SlotStart   int64  `json:"slot_start"` // unix seconds
}

type UserRegistered struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
