package notifier

import (
	"context"
	"errors"
	"log"
	"time"
)

// Message is one rendered notification. Empty Email or Phone skips that
// channel; a notifier only handles the channels it owns.
type Message struct {
	Subject string
	Body    string
	Email   string
	Phone   string
}

type Notifier interface {
	Notify(ctx context.Context, m Message) error
}

// Console logs instead of delivering. Used in dev and as the fallback when
// no channel is configured.
type Console struct{}

func NewConsole() *Console { return &Console{} }

func (c *Console) Notify(_ context.Context, m Message) error {
	log.Printf("[notify] %s :: %s (email=%s phone=%s)", m.Subject, m.Body, m.Email, m.Phone)
	return nil
}

// Multi fans one message out to every notifier and joins the failures, so
// one dead channel cannot silence the others.
type Multi []Notifier

func (ms Multi) Notify(ctx context.Context, m Message) error {
	var errs []error
	for _, n := range ms {
		if err := n.Notify(ctx, m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HumanTime formats a slot start for message bodies.
func HumanTime(unix int64) string {
	return time.Unix(unix, 0).Local().Format("2006-01-02 15:04")
}
