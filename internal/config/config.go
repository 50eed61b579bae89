package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Port        string `envconfig:"PORT" default:"8080"`

	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"10080"`

	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`

	// Cron spec for the nightly review-aggregate resync.
	AggregateResyncCron string `envconfig:"AGGREGATE_RESYNC_CRON" default:"0 3 * * *"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
