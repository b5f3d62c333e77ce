package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/events"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/repository"
)

// ErrNotOwner means the caller tried to act on someone else's booking.
var ErrNotOwner = errors.New("not_owner")

// WarnNotifyFailed is returned alongside a successful result when the
// notification event could not be handed to the broker. The operation
// itself committed; only the message is lost.
const WarnNotifyFailed = "notification could not be sent"

// Publisher is the slice of pkg/mq the services need. Event delivery is
// best-effort: a broker failure is logged and never fails the operation.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingService struct {
	slots    *repository.SlotRepo
	bookings *repository.BookingRepo
	users    *repository.UserRepo
	dir      *repository.DirectoryRepo
	pub      Publisher
	now      func() time.Time
}

func NewBookingService(slots *repository.SlotRepo, bookings *repository.BookingRepo,
	users *repository.UserRepo, dir *repository.DirectoryRepo, pub Publisher) *BookingService {
	return &BookingService{slots: slots, bookings: bookings, users: users, dir: dir, pub: pub, now: time.Now}
}

// Book claims a seat on the slot and records a pending booking.
// The seat claim happens first; if anything after it fails the claim is
// released so capacity cannot leak. The returned warning is non-empty
// when the booking committed but its notification event did not.
func (s *BookingService) Book(ctx context.Context, userID, slotID, notes string) (*domain.Booking, string, error) {
	slot, err := s.slots.ByID(ctx, slotID)
	if err != nil {
		return nil, "", err
	}

	exists, err := s.bookings.ExistsForUserSlot(ctx, userID, slotID)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", repository.ErrAlreadyBooked
	}

	if err := s.slots.TryClaim(ctx, slotID); err != nil {
		return nil, "", err
	}

	var b *domain.Booking
	for attempt := 0; ; attempt++ {
		code, err := generateBookingCode(s.now(), userID, func(c string) (bool, error) {
			return s.bookings.CodeExists(ctx, c)
		})
		if err != nil {
			s.releaseClaim(ctx, slotID)
			return nil, "", err
		}

		b = &domain.Booking{
			UserID:      userID,
			TimeSlotID:  slotID,
			Status:      domain.StatusPending,
			BookingCode: code,
			Notes:       notes,
		}
		err = s.bookings.Create(ctx, b)
		if err == nil {
			break
		}
		// a concurrent insert can take the code between CodeExists and
		// Create; regenerate rather than fail the booking
		if errors.Is(err, repository.ErrCodeCollision) && attempt < 2 {
			continue
		}
		s.releaseClaim(ctx, slotID)
		return nil, "", err
	}

	var warn string
	if err := s.publishBooking(ctx, events.RKBookingCreated, b, slot); err != nil {
		warn = WarnNotifyFailed
	}
	return b, warn, nil
}

// Cancel moves the booking to cancelled and frees its seat. Only the
// booking's owner may cancel; terminal bookings are rejected. A non-empty
// warning means the cancellation committed without its notification.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID string) (string, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if b.UserID != userID {
		return "", ErrNotOwner
	}
	if err := s.bookings.CancelAndRelease(ctx, b.ID, b.TimeSlotID); err != nil {
		return "", err
	}

	slot, err := s.slots.ByID(ctx, b.TimeSlotID)
	if err != nil {
		log.Printf("[booking] load slot for cancel event: %v", err)
		slot = &domain.TimeSlot{ID: b.TimeSlotID}
	}
	if err := s.publishBooking(ctx, events.RKBookingCancelled, b, slot); err != nil {
		return WarnNotifyFailed, nil
	}
	return "", nil
}

// Confirm is the organization-side acknowledgement, pending → confirmed.
func (s *BookingService) Confirm(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if err := s.bookings.TransitionStatus(ctx, bookingID,
		[]string{domain.StatusPending}, domain.StatusConfirmed); err != nil {
		return nil, err
	}
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	slot, serr := s.slots.ByID(ctx, b.TimeSlotID)
	if serr != nil {
		slot = &domain.TimeSlot{ID: b.TimeSlotID}
	}
	s.publishBooking(ctx, events.RKBookingConfirmed, b, slot)
	return b, nil
}

// Complete marks a kept appointment, pending|confirmed → completed. The
// seat stays consumed.
func (s *BookingService) Complete(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if err := s.bookings.TransitionStatus(ctx, bookingID,
		[]string{domain.StatusPending, domain.StatusConfirmed}, domain.StatusCompleted); err != nil {
		return nil, err
	}
	return s.bookings.ByID(ctx, bookingID)
}

func (s *BookingService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.bookings.ByID(ctx, bookingID)
}

func (s *BookingService) ListMine(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) releaseClaim(ctx context.Context, slotID string) {
	if err := s.slots.Release(ctx, slotID); err != nil {
		log.Printf("[booking] release claim after failed create slot=%s: %v", slotID, err)
	}
}

func (s *BookingService) publishBooking(ctx context.Context, key string, b *domain.Booking, slot *domain.TimeSlot) error {
	ev := events.BookingEvent{
		BookingID:   b.ID,
		BookingCode: b.BookingCode,
		UserID:      b.UserID,
		SlotStart:   slot.StartTime.Unix(),
	}
	if u, err := s.users.ByID(ctx, b.UserID); err == nil {
		ev.Username = u.Username
		ev.Email = u.Email
	}
	if p, err := s.users.ProfileByUserID(ctx, b.UserID); err == nil {
		ev.Phone = p.PhoneNumber
	}
	if org, err := s.dir.OrganizationByID(ctx, slot.OrganizationID); err == nil {
		ev.OrgName = org.Name
	}
	if err := s.pub.PublishJSON(ctx, key, ev); err != nil {
		log.Printf("[booking] publish %s booking=%s: %v", key, b.ID, err)
		return err
	}
	return nil
}
