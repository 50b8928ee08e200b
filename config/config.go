// Package config loads server and CLI settings from the environment.
//
// Sources, lowest priority first: built-in defaults, a .env file in the
// working directory (if present), ASN_* environment variables. Command-line
// flags in cmd/ override the result.
//
//	ASN_PORT              8080
//	ASN_STORAGE_DRIVER    sqlite | redis | memory
//	ASN_DB_PATH           asn.db
//	ASN_REDIS_ADDR        localhost:6379
//	ASN_REDIS_PASSWORD
//	ASN_REDIS_DB          0
//	ASN_REDIS_PREFIX
//	ASN_STORAGE_KEY       asn-monitor/records
//	ASN_HORIZON_DAYS      90
//	ASN_NIP_POLICY        strict | relaxed
//	ASN_IMPORT_RECOMPUTE  false
//	ASN_ALLOWED_ORIGINS   http://localhost:5173,http://localhost:8080
//	ASN_LOG_LEVEL         info
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/warp/asn-monitor/personnel"
	"github.com/warp/asn-monitor/schedule"
)

const envPrefix = "ASN"

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Port            int
	StorageDriver   string
	DBPath          string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisPrefix     string
	StorageKey      string
	HorizonDays     int
	NIPPolicy       string
	ImportRecompute bool
	AllowedOrigins  []string
	LogLevel        string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("storage_driver", DriverSQLite)
	v.SetDefault("db_path", "asn.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "")
	v.SetDefault("storage_key", personnel.DefaultStorageKey)
	v.SetDefault("horizon_days", schedule.DefaultHorizonDays)
	v.SetDefault("nip_policy", string(personnel.EmployeeNumberStrict))
	v.SetDefault("import_recompute", false)
	v.SetDefault("allowed_origins", "http://localhost:5173,http://localhost:8080")
	v.SetDefault("log_level", "info")
	return v
}

// Load reads .env (if present) and the ASN_* environment, applies defaults
// and validates the result.
func Load() (*Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := newViper()
	cfg := &Config{
		Port:            v.GetInt("port"),
		StorageDriver:   strings.ToLower(v.GetString("storage_driver")),
		DBPath:          v.GetString("db_path"),
		RedisAddr:       v.GetString("redis_addr"),
		RedisPassword:   v.GetString("redis_password"),
		RedisDB:         v.GetInt("redis_db"),
		RedisPrefix:     v.GetString("redis_prefix"),
		StorageKey:      v.GetString("storage_key"),
		HorizonDays:     v.GetInt("horizon_days"),
		NIPPolicy:       v.GetString("nip_policy"),
		ImportRecompute: v.GetBool("import_recompute"),
		AllowedOrigins:  splitList(v.GetString("allowed_origins")),
		LogLevel:        v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.HorizonDays < 0 {
		return fmt.Errorf("horizon days must not be negative, got %d", c.HorizonDays)
	}
	if _, err := personnel.ParseEmployeeNumberRule(c.NIPPolicy); err != nil {
		return err
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	return nil
}

// ValidationPolicy builds the entry policy named by NIPPolicy.
func (c *Config) ValidationPolicy() personnel.ValidationPolicy {
	rule, err := personnel.ParseEmployeeNumberRule(c.NIPPolicy)
	if err != nil {
		rule = personnel.EmployeeNumberStrict
	}
	return personnel.ValidationPolicy{EmployeeNumber: rule}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
