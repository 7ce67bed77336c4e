package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Client   ClientConfig
	Log      LogConfig
	Sandbox  SandboxConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type ClientConfig struct {
	BackendURL     string
	TokenDBPath    string
	RequestTimeout time.Duration
}

type LogConfig struct {
	Level  string
	File   string
	Colors bool
}

type SandboxConfig struct {
	Port           string
	JWTSecret      string
	JWTTTL         time.Duration
	OTPTTL         time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
}

// DatabaseConfig is optional. An empty PrimaryDSN keeps the sandbox in memory.
type DatabaseConfig struct {
	PrimaryDSN      string
	ReplicaDSNs     []string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig is optional. An empty Addr keeps OTPs in the primary storage.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not
	_ = godotenv.Load()

	cfg := &Config{
		Client: ClientConfig{
			BackendURL:     getEnv("BACKEND_URL", "http://localhost:8090/api"),
			TokenDBPath:    getEnv("TOKEN_DB_PATH", defaultTokenDBPath()),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "INFO"),
			File:   getEnv("LOG_FILE", "wecare-tui.log"),
			Colors: getEnv("LOG_COLORS", "true") != "false",
		},
		Sandbox: SandboxConfig{
			Port:           getEnv("SANDBOX_PORT", "8090"),
			JWTSecret:      getEnv("JWT_SECRET", "wecare-sandbox-secret"),
			JWTTTL:         getEnvAsDuration("JWT_TTL", 24*time.Hour),
			OTPTTL:         getEnvAsDuration("OTP_TTL", 10*time.Minute),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 1),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 5),
			AllowedOrigins: []string{getEnv("CORS_ORIGIN", "*")},
		},
		Database: DatabaseConfig{
			PrimaryDSN: getEnv("DB_PRIMARY_DSN", ""),
			ReplicaDSNs: nonEmpty(
				getEnv("DB_REPLICA1_DSN", ""),
				getEnv("DB_REPLICA2_DSN", ""),
			),
			MaxConns:        int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:        int32(getEnvAsInt("DB_MIN_CONNS", 1)),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
	}

	return cfg, nil
}

func defaultTokenDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "token.db"
	}
	return filepath.Join(dir, "wecare", "token.db")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
