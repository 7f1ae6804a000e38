package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	IdempotencyStoreMemory   = "memory"
	IdempotencyStoreDynamoDB = "dynamodb"

	callbackPath = "/api/mpesa/callback"
)

var ErrInvalidIdempotencyStore = errors.New("IDEMPOTENCY_STORE must be memory or dynamodb")

// Config holds the service settings read from the environment.
type Config struct {
	Port int

	ConsumerKey    string
	ConsumerSecret string
	Environment    string
	Timeout        time.Duration
	// BaseURL overrides the Daraja host, e.g. for a local stub.
	BaseURL string

	ShortCode   string
	PassKey     string
	CallbackURL string

	IdempotencyStore string
	IdempotencyTTL   time.Duration
	IdempotencyTable string
}

// Load reads the configuration. Credentials are not required here: a
// missing key only disables the gateway, it does not stop the server.
func Load() (*Config, error) {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	timeoutSeconds, err := getEnvInt("DARAJA_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	ttlHours, err := getEnvInt("IDEMPOTENCY_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             port,
		ConsumerKey:      os.Getenv("DARAJA_CONSUMER_KEY"),
		ConsumerSecret:   os.Getenv("DARAJA_CONSUMER_SECRET"),
		Environment:      strings.ToLower(getEnv("DARAJA_ENVIRONMENT", "sandbox")),
		Timeout:          time.Duration(timeoutSeconds) * time.Second,
		BaseURL:          os.Getenv("DARAJA_BASE_URL"),
		ShortCode:        os.Getenv("MPESA_SHORT_CODE"),
		PassKey:          os.Getenv("MPESA_PASSKEY"),
		CallbackURL:      callbackURL(),
		IdempotencyStore: strings.ToLower(getEnv("IDEMPOTENCY_STORE", IdempotencyStoreMemory)),
		IdempotencyTTL:   time.Duration(ttlHours) * time.Hour,
		IdempotencyTable: getEnv("IDEMPOTENCY_TABLE", "idempotency_keys"),
	}

	switch cfg.IdempotencyStore {
	case IdempotencyStoreMemory, IdempotencyStoreDynamoDB:
	default:
		return nil, ErrInvalidIdempotencyStore
	}
	return cfg, nil
}

func callbackURL() string {
	if v := os.Getenv("MPESA_CALLBACK_URL"); v != "" {
		return v
	}
	if app := strings.TrimRight(os.Getenv("APP_URL"), "/"); app != "" {
		return app + callbackPath
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
