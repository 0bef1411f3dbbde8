package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	ChapaBaseURL    string
	ChapaSecretKey  string
	ChapaCurrency   string
	CallbackURL     string
	ReturnURL       string
	GatewayTimeout  time.Duration
}

// Load reads configuration from the environment. A .env file is applied
// first when present so local runs don't need exported variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:           envOrDefault("ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         durationOrDefault("JWT_TTL", 24*time.Hour),
		ChapaBaseURL:   envOrDefault("CHAPA_BASE_URL", "https://api.chapa.co"),
		ChapaSecretKey: os.Getenv("CHAPA_SECRET_KEY"),
		ChapaCurrency:  envOrDefault("CHAPA_CURRENCY", "ETB"),
		CallbackURL:    os.Getenv("PAYMENT_CALLBACK_URL"),
		ReturnURL:      os.Getenv("PAYMENT_RETURN_URL"),
		GatewayTimeout: durationOrDefault("GATEWAY_TIMEOUT", 15*time.Second),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	return cfg, nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func durationOrDefault(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
