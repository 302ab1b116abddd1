package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	// MongoURI is passed straight to the driver; an empty value fails at connect time.
	MongoURI  string        `env:"MONGO_URI"`
	MongoDB   string        `env:"MONGO_DB" env-default:"eventhall"`
	DBTimeout time.Duration `env:"DB_TIMEOUT" env-default:"5s"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTKeyID     string        `env:"JWT_KEY_ID" env-default:"primary"`
	JWTTTL       time.Duration `env:"JWT_TTL" env-default:"24h"`
	CookieSecure bool          `env:"COOKIE_SECURE" env-default:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" env-default:"bookings"`

	// AuthRateLimit is requests per second per client on signup and login; 0 disables it.
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT" env-default:"5"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" env-default:"10"`

	StaticDir      string   `env:"STATIC_DIR" env-default:"./frontend/build"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`

	// GeneratedSecret reports that JWTSecret was not supplied and a random one is in use.
	GeneratedSecret bool `env:"-"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		secret, err := randomSecret(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		cfg.JWTSecret = secret
		cfg.GeneratedSecret = true
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive")
	}
	if cfg.DBTimeout <= 0 {
		cfg.DBTimeout = 5 * time.Second
	}

	return cfg, nil
}

func randomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
