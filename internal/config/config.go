package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	// Server
	ServerAddr string
	ServerPort int

	// Public site address, used to build verification links.
	AppBaseURL string

	// Database
	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	MigrationsDir string

	// Subscription lifecycle
	TokenTTL         time.Duration
	StoreTimeout     time.Duration
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration

	// SMTP (optional; the dispatcher is disabled without it)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      bool

	RateLimit       RateLimitConfig
	SecurityHeaders SecurityHeadersConfig

	MaxRequestBodySize int64
}

// RateLimitConfig holds per-endpoint-group rate limiting settings.
type RateLimitConfig struct {
	Enabled bool

	SubscribeRequestsPerWindow int
	SubscribeWindowMinutes     int
	VerifyRequestsPerWindow    int
	VerifyWindowMinutes        int
	ContactRequestsPerWindow   int
	ContactWindowMinutes       int
	PostsRequestsPerMinute     int
}

// SecurityHeadersConfig holds response header hardening settings.
type SecurityHeadersConfig struct {
	Enabled            bool
	CSP                string
	HSTSMaxAge         int
	FrameOptions       string
	ContentTypeOptions string
	XSSProtection      string
	ReferrerPolicy     string
	PermissionsPolicy  string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", "0.0.0.0"),
		ServerPort: getEnvInt("SERVER_PORT", 8080),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnvInt("DB_PORT", 5432),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "bistro"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		TokenTTL:         getEnvDuration("VERIFICATION_TOKEN_TTL", 7*24*time.Hour),
		StoreTimeout:     getEnvDuration("STORE_TIMEOUT", 10*time.Second),
		RetryMaxAttempts: getEnvInt("RETRY_MAX_ATTEMPTS", 3),
		RetryBaseDelay:   getEnvDuration("RETRY_BASE_DELAY", 500*time.Millisecond),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", ""),
		SMTPTLS:      getEnvBool("SMTP_TLS", true),

		RateLimit: RateLimitConfig{
			Enabled:                    getEnvBool("RATE_LIMIT_ENABLED", true),
			SubscribeRequestsPerWindow: getEnvInt("RATE_LIMIT_SUBSCRIBE_REQUESTS", 5),
			SubscribeWindowMinutes:     getEnvInt("RATE_LIMIT_SUBSCRIBE_WINDOW_MINUTES", 15),
			VerifyRequestsPerWindow:    getEnvInt("RATE_LIMIT_VERIFY_REQUESTS", 10),
			VerifyWindowMinutes:        getEnvInt("RATE_LIMIT_VERIFY_WINDOW_MINUTES", 15),
			ContactRequestsPerWindow:   getEnvInt("RATE_LIMIT_CONTACT_REQUESTS", 5),
			ContactWindowMinutes:       getEnvInt("RATE_LIMIT_CONTACT_WINDOW_MINUTES", 15),
			PostsRequestsPerMinute:     getEnvInt("RATE_LIMIT_POSTS_REQUESTS_PER_MINUTE", 60),
		},

		SecurityHeaders: SecurityHeadersConfig{
			Enabled:            getEnvBool("SECURITY_HEADERS_ENABLED", true),
			CSP:                getEnv("SECURITY_CSP", "default-src 'none'"),
			HSTSMaxAge:         getEnvInt("SECURITY_HSTS_MAX_AGE", 31536000),
			FrameOptions:       getEnv("SECURITY_FRAME_OPTIONS", "DENY"),
			ContentTypeOptions: getEnv("SECURITY_CONTENT_TYPE_OPTIONS", "nosniff"),
			XSSProtection:      getEnv("SECURITY_XSS_PROTECTION", "1; mode=block"),
			ReferrerPolicy:     getEnv("SECURITY_REFERRER_POLICY", "strict-origin-when-cross-origin"),
			PermissionsPolicy:  getEnv("SECURITY_PERMISSIONS_POLICY", ""),
		},

		MaxRequestBodySize: getEnvInt64("MAX_REQUEST_BODY_SIZE", 64*1024),
	}

	if cfg.SMTPHost != "" && cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("SMTP_FROM is required when SMTP_HOST is set")
	}

	return cfg, nil
}

// HasSMTP returns true if outbound email is configured.
func (c *Config) HasSMTP() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
