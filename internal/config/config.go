package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for everything that is tunable from the environment. The
// geocoder defaults to the public Nominatim instance, the journal API to
// a local development server.
const (
	defaultAPIBaseURL      = "http://localhost:8000"
	defaultGeocoderBaseURL = "https://nominatim.openstreetmap.org"
	defaultMinQueryLength  = 3
	defaultDebounceMillis  = 400
	defaultSuggestionLimit = 5
	defaultTimeoutMillis   = 10000
	defaultCacheTTLSeconds = 60
)

// Config carries every externally tunable parameter of the client.
type Config struct {
	// APIBaseURL is the base URL of the wayfare journal API.
	APIBaseURL string
	// GeocoderBaseURL is the base URL of the place-search service.
	GeocoderBaseURL string
	// Token is the raw session token used for authenticated calls.
	Token string
	// MinQueryLength is the minimum input length before a place lookup fires.
	MinQueryLength int
	// DebounceInterval is the quiescence window for location typing.
	DebounceInterval time.Duration
	// SuggestionLimit caps the number of location suggestions shown.
	SuggestionLimit int
	// RequestTimeout bounds every outgoing HTTP request.
	RequestTimeout time.Duration
	// SuggestionCacheTTL is how long geocoder responses are reused.
	SuggestionCacheTTL time.Duration
	// MetricsAddress is the listen address for /metrics, empty disables it.
	MetricsAddress string
}

// LoadConfig reads the configuration from the environment, preferring a
// local .env file when one exists.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine, the environment is used as-is.
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:         getEnv("WAYFARE_API_URL", defaultAPIBaseURL),
		GeocoderBaseURL:    getEnv("WAYFARE_GEOCODER_URL", defaultGeocoderBaseURL),
		Token:              os.Getenv("WAYFARE_TOKEN"),
		MinQueryLength:     getEnvInt("WAYFARE_MIN_QUERY_LENGTH", defaultMinQueryLength),
		DebounceInterval:   time.Duration(getEnvInt("WAYFARE_DEBOUNCE_MS", defaultDebounceMillis)) * time.Millisecond,
		SuggestionLimit:    getEnvInt("WAYFARE_SUGGESTION_LIMIT", defaultSuggestionLimit),
		RequestTimeout:     time.Duration(getEnvInt("WAYFARE_REQUEST_TIMEOUT_MS", defaultTimeoutMillis)) * time.Millisecond,
		SuggestionCacheTTL: time.Duration(getEnvInt("WAYFARE_SUGGESTION_CACHE_TTL_S", defaultCacheTTLSeconds)) * time.Second,
		MetricsAddress:     os.Getenv("WAYFARE_METRICS_ADDRESS"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
