package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Argon2    Argon2Config
	RateLimit RateLimitConfig
	Secure    SecureConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	// URL empty runs the service on in-memory stores (dev/demo mode).
	URL string
}

type RedisConfig struct {
	URL string
	// SessionCacheTTL in seconds for the read-side session cache.
	SessionCacheTTL int64
}

type JWTConfig struct {
	PrivateKeyPath string
	Issuer         string
	Audience       string
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

type RateLimitConfig struct {
	// Rate per IP ("100-M" = 100/min). Empty disables.
	RatePerIP string
}

type SecureConfig struct {
	IsDevelopment bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		_ = viper.ReadInConfig()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:             os.Getenv("REDIS_URL"),
			SessionCacheTTL: viper.GetInt64("SESSION_CACHE_TTL"),
		},
		JWT: JWTConfig{
			PrivateKeyPath: getEnvOrDefault("JWT_PRIVATE_KEY_PATH", ""),
			Issuer:         getEnvOrDefault("JWT_ISSUER", "heimdall"),
			Audience:       getEnvOrDefault("JWT_AUDIENCE", "heimdall"),
		},
		Argon2: Argon2Config{
			Memory:      uint32(viper.GetInt("ARGON2_MEMORY")),
			Iterations:  uint32(viper.GetInt("ARGON2_ITERATIONS")),
			Parallelism: uint8(viper.GetInt("ARGON2_PARALLELISM")),
		},
		RateLimit: RateLimitConfig{
			RatePerIP: getEnvOrDefault("RATE_PER_IP", "100-M"),
		},
		Secure: SecureConfig{
			IsDevelopment: viper.GetBool("DEV_MODE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
	if cfg.Redis.SessionCacheTTL <= 0 {
		cfg.Redis.SessionCacheTTL = 30
	}
	if cfg.Argon2.Memory == 0 {
		cfg.Argon2.Memory = 64 * 1024
	}
	if cfg.Argon2.Iterations == 0 {
		cfg.Argon2.Iterations = 3
	}
	if cfg.Argon2.Parallelism == 0 {
		cfg.Argon2.Parallelism = 2
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadJWTPrivateKey reads the PEM file and returns its contents.
func (c *Config) LoadJWTPrivateKey() ([]byte, error) {
	if c.JWT.PrivateKeyPath == "" {
		return nil, fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}
	return os.ReadFile(c.JWT.PrivateKeyPath)
}
