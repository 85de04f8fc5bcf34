package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Port string

	StoreBackend string
	MongoURI     string
	DatabaseName string

	SecretKey  string
	TokenTTL   time.Duration
	BcryptCost int

	OpenRouterURL   string
	OpenRouterKey   string
	OpenRouterModel string

	RapidAPIHost string
	RapidAPIKey  string

	NominatimURL string

	LogLevel slog.Level
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from a lookup function so tests need not touch the environment.
func ConfigFromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		Port:            get("PORT", "5000"),
		StoreBackend:    strings.ToLower(get("STORE_BACKEND", BackendMongo)),
		MongoURI:        get("MONGODB_URI", ""),
		DatabaseName:    get("MONGOCLUSTER", "smarttrip"),
		SecretKey:       get("SECRET_KEY", ""),
		OpenRouterURL:   get("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterKey:   get("OPENROUTER_API_KEY", ""),
		OpenRouterModel: get("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		RapidAPIHost:    get("RAPIDAPI_HOST", "tripadvisor16.p.rapidapi.com"),
		RapidAPIKey:     get("RAPIDAPI_KEY", ""),
		NominatimURL:    get("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
	}

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	cost, err := strconv.Atoi(get("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid BCRYPT_COST %q", getenv("BCRYPT_COST"))
	}
	cfg.BcryptCost = cost

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable is not set")
	}
	switch cfg.StoreBackend {
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI environment variable is not set")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}
