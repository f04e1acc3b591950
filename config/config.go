package config

import "time"

type Config struct {
	Web       Web
	DB        DB
	Email     Email
	Notify    Notify
	Auth      Auth
	RateLimit RateLimit
	Cors      Cors
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost:5432"`
	Name         string `conf:"default:shop"`
	MaxIdleConns int    `conf:"default:3"`
	MaxOpenConns int    `conf:"default:10"`
	DisableTLS   bool   `conf:"default:true"`
	Migrate      bool   `conf:"default:true"`
}

type Email struct {
	Address  string `conf:"default:shop@example.com"`
	Password string `conf:"mask"`
	Host     string `conf:"default:localhost"`
	Port     int    `conf:"default:587"`
}

// Notify holds the destinations of the order notification.
type Notify struct {
	AdminAddress string        `conf:"default:admin@example.com"`
	KafkaBrokers string        `conf:"help:comma separated list; empty disables publishing"`
	KafkaTopic   string        `conf:"default:shop.orders"`
	Timeout      time.Duration `conf:"default:5s"`
}

type Auth struct {
	UserHeader string `conf:"default:X-User-Id"`
}

type RateLimit struct {
	Enabled bool    `conf:"default:true"`
	RPS     float64 `conf:"default:5"`
	Burst   int     `conf:"default:10"`
	Expiry  int     `conf:"default:3"`
}

type Cors struct {
	Origin string
}
