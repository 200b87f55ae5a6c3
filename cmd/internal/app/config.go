package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string // "json" or "pretty"

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBSchema    string
	DBMaxConns  int32
	DBMinConns  int32

	// If true:
	// - /readyz returns 503 unless DB is configured and reachable.
	ReadinessRequireDB bool

	// Security policy:
	// If true, TICK_TOKEN_HMAC_KEY MUST be set (>= 32 bytes) and session-token
	// hashing must be HMAC-based.
	RequireTokenHMAC bool
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("TICK_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("TICK_LOG_LEVEL", "info"),
		LogFormat: EnvString("TICK_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("TICK_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("TICK_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("TICK_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("TICK_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("TICK_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("TICK_DATABASE_URL", ""),
		DBSchema:    EnvString("TICK_DB_SCHEMA", "tick"),
		DBMaxConns:  EnvInt32("TICK_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("TICK_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("TICK_READINESS_REQUIRE_DB", false),

		RequireTokenHMAC: EnvBool("TICK_REQUIRE_TOKEN_HMAC", false),
	}
}
