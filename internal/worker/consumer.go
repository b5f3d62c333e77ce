package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/events"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/notifier"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/mq"
)

// Worker drains the notification queue and delivers each event. Delivery is
// best-effort: a channel failure is logged and the message is acked anyway,
// because notifications must never replay booking state changes. Only
// undecodable payloads are dead-lettered.
type Worker struct {
	cons *mq.Consumer
	n    notifier.Notifier
}

func New(cons *mq.Consumer, n notifier.Notifier) *Worker {
	return &Worker{cons: cons, n: n}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.cons.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			m, err := render(d.RoutingKey, d.Body)
			if err != nil {
				log.Printf("[notify] bad payload key=%s err=%v -> dead-letter", d.RoutingKey, err)
				_ = d.Nack(false, false)
				continue
			}
			if m != nil {
				if err := w.n.Notify(ctx, *m); err != nil {
					log.Printf("[notify] delivery warning key=%s: %v", d.RoutingKey, err)
				}
			}
			_ = d.Ack(false)
		}
	}
}

// render maps a routing key and payload to a message. A nil message with a
// nil error means the key is not ours and the delivery is dropped.
func render(key string, body []byte) (*notifier.Message, error) {
	switch key {
	case events.RKBookingCreated:
		ev, err := events.Unmarshal[events.BookingEvent](body)
		if err != nil {
			return nil, err
		}
		return &notifier.Message{
			Subject: "Navbat band qilindi - NavbatYo'q.uz",
			Body: fmt.Sprintf("Tashkilot: %s<br>Vaqt: %s<br>Kod: %s",
				ev.OrgName, notifier.HumanTime(ev.SlotStart), ev.BookingCode),
			Email: ev.Email,
			Phone: ev.Phone,
		}, nil

	case events.RKBookingConfirmed:
		ev, err := events.Unmarshal[events.BookingEvent](body)
		if err != nil {
			return nil, err
		}
		return &notifier.Message{
			Subject: "Navbatingiz tasdiqlandi - NavbatYo'q.uz",
			Body: fmt.Sprintf("Tashkilot: %s<br>Vaqt: %s<br>Kod: %s",
				ev.OrgName, notifier.HumanTime(ev.SlotStart), ev.BookingCode),
			Email: ev.Email,
			Phone: ev.Phone,
		}, nil

	case events.RKBookingCancelled:
		ev, err := events.Unmarshal[events.BookingEvent](body)
		if err != nil {
			return nil, err
		}
		return &notifier.Message{
			Subject: "Navbat bekor qilindi - NavbatYo'q.uz",
			Body:    fmt.Sprintf("Tashkilot: %s<br>Kod: %s", ev.OrgName, ev.BookingCode),
			Email:   ev.Email,
			Phone:   ev.Phone,
		}, nil

	case events.RKUserRegistered:
		ev, err := events.Unmarshal[events.UserRegistered](body)
		if err != nil {
			return nil, err
		}
		return &notifier.Message{
			Subject: "Xush kelibsiz - NavbatYo'q.uz",
			Body:    fmt.Sprintf("Salom, %s! Platformamizda ro'yxatdan o'tdingiz.", ev.Username),
			Email:   ev.Email,
			Phone:   ev.Phone,
		}, nil

	default:
		log.Printf("[notify] skip unknown key=%s", key)
		return nil, nil
	}
}
