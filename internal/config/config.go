package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageSQLite    = "sqlite"
	StorageFirestore = "firestore"

	defaultJWTSecret = "default_secret_key"
)

type Config struct {
	Port    string
	GinMode string

	LLMProvider      string
	LLMAPIKey        string
	LLMModel         string
	LLMBaseURL       string
	LLMVision        *bool // nil이면 provider 기본값
	LLMHistoryWindow int
	LLMTimeout       time.Duration

	StorageBackend string
	SQLitePath     string
	GCPProject     string

	JWTSecret string
	// JWT_SECRET_KEY가 비어 있어 기본 키를 쓰는 중
	InsecureJWTSecret bool
	TokenTTL          time.Duration
	SessionTTL        time.Duration
	ClassCode         string

	ImageMaxBytes      int64
	RateLimitPerMinute int

	VoiceEnabled  bool
	VoiceLanguage string

	StaticDir string

	LogLevel  string
	LogFormat string
	LogFile   string
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if v == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),

		LLMProvider: strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
		LLMModel:    getEnv("LLM_MODEL", ""),
		LLMBaseURL:  getEnv("LLM_BASE_URL", ""),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageSQLite)),
		SQLitePath:     getEnv("SQLITE_PATH", "geleza.db"),
		GCPProject:     getEnv("GCP_PROJECT", ""),

		JWTSecret: getEnv("JWT_SECRET_KEY", ""),
		ClassCode: getEnv("CLASS_CODE", ""),

		VoiceEnabled:  getBoolEnv("VOICE_ENABLED", false),
		VoiceLanguage: getEnv("VOICE_LANGUAGE", "en-US"),

		StaticDir: getEnv("STATIC_DIR", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogFile:   getEnv("LOG_FILE", ""),
	}

	cfg.LLMAPIKey = getEnv("LLM_API_KEY", "")
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = providerKey(cfg.LLMProvider)
	}

	if v := os.Getenv("LLM_VISION"); v != "" {
		vision := getBoolEnv("LLM_VISION", false)
		cfg.LLMVision = &vision
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
		cfg.InsecureJWTSecret = true
	}

	var err error
	if cfg.LLMHistoryWindow, err = getIntEnv("LLM_HISTORY_WINDOW", 20); err != nil {
		return nil, err
	}
	if cfg.LLMTimeout, err = getDurationEnv("LLM_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDurationEnv("TOKEN_TTL", 720*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDurationEnv("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getIntEnv("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	maxBytes, err := getIntEnv("IMAGE_MAX_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	cfg.ImageMaxBytes = int64(maxBytes)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func providerKey(provider string) string {
	switch provider {
	case "groq":
		return getEnv("GROQ_API_KEY", "")
	case "gemini":
		return getEnv("GEMINI_API_KEY", "")
	case "anthropic":
		return getEnv("ANTHROPIC_API_KEY", "")
	case "openai":
		return getEnv("OPENAI_API_KEY", "")
	}
	return ""
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageSQLite:
	case StorageFirestore:
		if c.GCPProject == "" {
			return fmt.Errorf("GCP_PROJECT must be set when STORAGE_BACKEND=firestore")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.LLMHistoryWindow < 0 {
		return fmt.Errorf("LLM_HISTORY_WINDOW must not be negative")
	}
	if c.ImageMaxBytes <= 0 {
		return fmt.Errorf("IMAGE_MAX_BYTES must be positive")
	}
	return nil
}
