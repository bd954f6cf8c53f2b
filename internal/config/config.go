package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds application configuration.
type Config struct {
	// Bind is the address the API server listens on.
	Bind string `json:"bind,omitempty"`

	// Port is the API server port.
	Port int `json:"port,omitempty"`

	// JWTSecret signs and verifies bearer tokens (HS256).
	// Overridable via PROMPTSHELF_JWT_SECRET.
	JWTSecret string `json:"jwt_secret,omitempty"`

	// JWTExpireHours is the lifetime of minted tokens in hours.
	JWTExpireHours int `json:"jwt_expire_hours,omitempty"`

	// RedisAddr enables the content cache when set (host:port).
	// Overridable via PROMPTSHELF_REDIS_ADDR. Empty disables caching.
	RedisAddr string `json:"redis_addr,omitempty"`

	// RedisPassword is the optional Redis AUTH password.
	RedisPassword string `json:"redis_password,omitempty"`

	// CacheTTLSeconds is the content cache entry lifetime.
	// Content is immutable, so the TTL only bounds memory, not staleness.
	CacheTTLSeconds int `json:"cache_ttl_seconds,omitempty"`

	// MaxContentBytes limits the size of a single commit payload.
	MaxContentBytes int `json:"max_content_bytes,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized.
	// 0 means use sql.DB default. Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind:            "127.0.0.1",
		Port:            8420,
		JWTExpireHours:  72,
		CacheTTLSeconds: 3600,
		MaxContentBytes: 1 << 20,
	}
}

// Load loads configuration from baseDir/config.json, applies defaults, then
// environment overrides. Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.promptshelf.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	applyEnv(merged)
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides secrets and endpoints from the environment, matching
// how the service is deployed in containers.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PROMPTSHELF_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("PROMPTSHELF_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("PROMPTSHELF_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
}

// Merge combines base and overlay configs.
// Overlay values take precedence for non-zero scalars.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.Bind = overlay.Bind
	if result.Bind == "" {
		result.Bind = base.Bind
	}

	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}

	result.JWTSecret = overlay.JWTSecret
	if result.JWTSecret == "" {
		result.JWTSecret = base.JWTSecret
	}

	result.JWTExpireHours = overlay.JWTExpireHours
	if result.JWTExpireHours == 0 {
		result.JWTExpireHours = base.JWTExpireHours
	}

	result.RedisAddr = overlay.RedisAddr
	if result.RedisAddr == "" {
		result.RedisAddr = base.RedisAddr
	}

	result.RedisPassword = overlay.RedisPassword
	if result.RedisPassword == "" {
		result.RedisPassword = base.RedisPassword
	}

	result.CacheTTLSeconds = overlay.CacheTTLSeconds
	if result.CacheTTLSeconds == 0 {
		result.CacheTTLSeconds = base.CacheTTLSeconds
	}

	result.MaxContentBytes = overlay.MaxContentBytes
	if result.MaxContentBytes == 0 {
		result.MaxContentBytes = base.MaxContentBytes
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	return result
}
