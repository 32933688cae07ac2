package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	Port            int
	StoreDriver     string // memory or sqlite
	DatabasePath    string // sqlite only; ":memory:" keeps it volatile
	SeedOnStart     bool
	StaticDirectory string
	LogDirectory    string
	LogLevel        string
	LogFormat       string // console or json
	ShutdownTimeout time.Duration
	EventQueueSize  int // buffered incident events awaiting broadcast
}

// Load reads .env (when present), the optional CONFIG_FILE and the environment.
// Missing or malformed values fall back to defaults; a CONFIG_FILE that cannot
// be read or parsed is an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:            positiveInt(v, "PORT", 8080),
		StoreDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabasePath:    v.GetString("DATABASE_PATH"),
		SeedOnStart:     v.GetBool("SEED_ON_START"),
		StaticDirectory: v.GetString("STATIC_DIR"),
		LogDirectory:    v.GetString("LOG_DIR"),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:       strings.ToLower(v.GetString("LOG_FORMAT")),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		EventQueueSize:  positiveInt(v, "EVENT_QUEUE_SIZE", 64),
	}

	if cfg.StoreDriver != StoreSQLite {
		cfg.StoreDriver = StoreMemory
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("DATABASE_PATH", filepath.Join(".", "data", "incidents.db"))
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("STATIC_DIR", filepath.Join(".", "static"))
	v.SetDefault("LOG_DIR", filepath.Join(".", "logs"))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("EVENT_QUEUE_SIZE", 64)
}

func positiveInt(v *viper.Viper, key string, defaultValue int) int {
	if value := v.GetInt(key); value > 0 {
		return value
	}
	return defaultValue
}
