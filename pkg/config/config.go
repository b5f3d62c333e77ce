package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// RabbitMQ
	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"navbat.exchange"`
	// Redis (homepage cache)
	RedisAddr        string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisDB          int    `envconfig:"REDIS_DB" default:"0"`
	HomepageCacheSec int    `envconfig:"HOMEPAGE_CACHE_SEC" default:"60"`
	// Tracing
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"otel-collector:4317"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// Notify holds broker wiring and delivery credentials for the notification
// worker. Sender identities live here, not in package-level state.
type Notify struct {
	RabbitURL string `envconfig:"RABBIT_URL" required:"true"`
	Exchange  string `envconfig:"BOOKING_EXCHANGE" default:"navbat.exchange"`
	Queue     string `envconfig:"NOTIFY_QUEUE" default:"notification.q"`
	Bindings  string `envconfig:"NOTIFY_BINDINGS" default:"booking.*,user.*"`
	Prefetch  int    `envconfig:"NOTIFY_PREFETCH" default:"16"`
	DLX       string `envconfig:"NOTIFY_DLX" default:"notification.dlx"`
	DLQ       string `envconfig:"NOTIFY_DLQ" default:"notification.q.dlq"`

	// SMTP (empty host disables the email channel)
	SMTPHost  string `envconfig:"SMTP_HOST" default:""`
	SMTPPort  int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser  string `envconfig:"SMTP_USER" default:""`
	SMTPPass  string `envconfig:"SMTP_PASS" default:""`
	FromEmail string `envconfig:"FROM_EMAIL" default:"no-reply@navbatyoq.uz"`

	// Eskiz SMS gateway (empty token disables the SMS channel)
	EskizBaseURL string `envconfig:"ESKIZ_BASE_URL" default:"https://notify.eskiz.uz"`
	EskizToken   string `envconfig:"ESKIZ_TOKEN" default:""`
	EskizFrom    string `envconfig:"ESKIZ_FROM" default:"4546"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"otel-collector:4317"`
}

func LoadNotify() (Notify, error) {
	var c Notify
	err := envconfig.Process("", &c)
	return c, err
}
