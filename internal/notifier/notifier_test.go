package notifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEskizSendsForm(t *testing.T) {
	var gotAuth, gotPhone, gotMessage, gotFrom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/message/sms/send", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotAuth = r.Header.Get("Authorization")
		gotPhone = r.PostForm.Get("mobile_phone")
		gotMessage = r.PostForm.Get("message")
		gotFrom = r.PostForm.Get("from")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := NewEskiz(EskizConfig{BaseURL: srv.URL, Token: "tok", From: "4546"})
	err := e.Notify(context.Background(), Message{
		Subject: "Navbat tasdiqlandi",
		Body:    "Kod: NAV-1",
		Phone:   "+998901234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "+998901234567", gotPhone)
	assert.Equal(t, "Navbat tasdiqlandi\nKod: NAV-1", gotMessage)
	assert.Equal(t, "4546", gotFrom)
}

func TestEskizErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	e := NewEskiz(EskizConfig{BaseURL: srv.URL, Token: "old"})
	err := e.Notify(context.Background(), Message{Phone: "+998901234567"})
	assert.ErrorContains(t, err, "status 401")
}

func TestEskizSkipsWithoutPhone(t *testing.T) {
	e := NewEskiz(EskizConfig{BaseURL: "http://127.0.0.1:1", Token: "tok"})
	assert.NoError(t, e.Notify(context.Background(), Message{Email: "a@b.uz"}))
}

func TestEmailBuildsHTMLMessage(t *testing.T) {
	var gotFrom string
	var gotTo []string
	var gotMsg []byte
	e := NewEmail(EmailConfig{Host: "smtp.navbatyoq.uz", Port: 587, From: "no-reply@navbatyoq.uz"})
	e.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.navbatyoq.uz:587", addr)
		gotFrom, gotTo, gotMsg = from, to, msg
		return nil
	}

	err := e.Notify(context.Background(), Message{
		Subject: "Xush kelibsiz",
		Body:    "<p>Salom!</p>",
		Email:   "user@navbatyoq.uz",
	})
	require.NoError(t, err)
	assert.Equal(t, "no-reply@navbatyoq.uz", gotFrom)
	assert.Equal(t, []string{"user@navbatyoq.uz"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Xush kelibsiz")
	assert.Contains(t, string(gotMsg), "text/html")
	assert.Contains(t, string(gotMsg), "<p>Salom!</p>")
}

func TestMultiJoinsFailures(t *testing.T) {
	okCalled := false
	ok := notifyFunc(func(context.Context, Message) error { okCalled = true; return nil })
	boom := notifyFunc(func(context.Context, Message) error { return errors.New("down") })

	err := Multi{boom, ok}.Notify(context.Background(), Message{})
	assert.Error(t, err)
	assert.True(t, okCalled, "a failing channel must not block the rest")
}

type notifyFunc func(ctx context.Context, m Message) error

func (f notifyFunc) Notify(ctx context.Context, m Message) error { return f(ctx, m) }
