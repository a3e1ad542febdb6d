package config

import "time"

type HTTP struct {
	BaseURL string `env:"BASE_URL,expand" envDefault:"/"`
	Address string `env:"ADDRESS,expand" envDefault:":8000"`
	// Allowed CORS origins, every origin is allowed by default
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS,expand" envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,expand" envDefault:"10s"`
	Auth            Auth          `envPrefix:"AUTH_"`
	RateLimit       RateLimit     `envPrefix:"RATE_LIMIT_"`
	Metrics         Metrics       `envPrefix:"METRICS_"`
}

type Auth struct {
	Enabled bool `env:"ENABLED,expand" envDefault:"false"`
	User    User `envPrefix:"USER_"`
}

type User struct {
	Username string `env:"USERNAME,expand"`
	Password string `env:"PASSWORD,expand"`
}

// RateLimit bounds the number of chat requests accepted per client address.
type RateLimit struct {
	Enabled     bool          `env:"ENABLED,expand" envDefault:"true"`
	MinInterval time.Duration `env:"MIN_INTERVAL,expand" envDefault:"1s"`
	MaxBurst    int           `env:"MAX_BURST,expand" envDefault:"5"`
	CacheSize   int           `env:"CACHE_SIZE,expand" envDefault:"1024"`
	CacheTTL    time.Duration `env:"CACHE_TTL,expand" envDefault:"10m"`
	// Identify clients with the X-Forwarded-For and X-Real-Ip headers
	TrustHeaders bool `env:"TRUST_HEADERS,expand" envDefault:"false"`
}

type Metrics struct {
	Enabled bool `env:"ENABLED,expand" envDefault:"true"`
}
