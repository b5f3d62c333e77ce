package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// EskizConfig points at the Eskiz SMS gateway. From is the sender id the
// gateway assigned to the account.
type EskizConfig struct {
	BaseURL string
	Token   string
	From    string
}

// Eskiz sends SMS through the Eskiz HTTP API.
type Eskiz struct {
	cfg    EskizConfig
	client *http.Client
}

func NewEskiz(cfg EskizConfig) *Eskiz {
	return &Eskiz{cfg: cfg, client: &http.Client{Timeout: 10 * time.Second}}
}

func (e *Eskiz) Notify(ctx context.Context, m Message) error {
	if m.Phone == "" {
		return nil
	}
	form := url.Values{}
	form.Set("mobile_phone", m.Phone)
	form.Set("message", m.Subject+"\n"+m.Body)
	form.Set("from", e.cfg.From)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.cfg.BaseURL+"/api/message/sms/send", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+e.cfg.Token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("eskiz send to %s: %w", m.Phone, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("eskiz send to %s: status %d: %s", m.Phone, resp.StatusCode, body)
	}
	return nil
}
