package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`
	// JWT
	JWTSecret           string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin        int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	JWTCookieExpireDays int    `envconfig:"JWT_COOKIE_EXPIRE" default:"30"`
	CookieSecure        bool   `envconfig:"COOKIE_SECURE" default:"false"`
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// RabbitMQ (optional; events are skipped when unset)
	RabbitURL           string `envconfig:"RABBIT_URL" default:""`
	ReservationExchange string `envconfig:"RESERVATION_EXCHANGE" default:"reservation.exchange"`
	// Tracing
	OtelEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OtelEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"otel-collector:4317"`
	Env          string `envconfig:"ENV" default:"dev"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
