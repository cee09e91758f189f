package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once
var loadErr error

type Config struct {
	Env     string `mapstructure:"APP_ENV"`
	Debug   bool   `mapstructure:"DEBUG"`
	LogMode string `mapstructure:"LOG_MODE"`

	DBDriver   string `mapstructure:"DB_DRIVER"` // sqlite | mysql
	DBDSN      string `mapstructure:"DB_DSN"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`
	RedisPass string `mapstructure:"REDIS_PASS"`

	OutputDir        string `mapstructure:"OUTPUT_DIR"`
	RegenCount       int    `mapstructure:"REGEN_COUNT"`
	RegenSchedule    string `mapstructure:"REGEN_SCHEDULE"`
	RegenPersist     bool   `mapstructure:"REGEN_PERSIST"`
	CoverageTTLHours int    `mapstructure:"COVERAGE_TTL_HOURS"`
}

func defaults() *Config {
	return &Config{
		Env:              "dev",
		LogMode:          "dev",
		DBDriver:         "sqlite",
		SQLitePath:       "coilgen.db",
		OutputDir:        "test-data",
		RegenCount:       10000,
		RegenSchedule:    "0 2 * * *",
		CoverageTTLHours: 24,
	}
}

// Decode builds a Config from key/value pairs over the defaults. Values may be
// strings ("true", "500"); they are converted to the field types.
func Decode(env map[string]interface{}) (*Config, error) {
	cfg := defaults()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(env); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.RegenCount <= 0 {
		return nil, fmt.Errorf("decode config: REGEN_COUNT must be positive, got %d", cfg.RegenCount)
	}
	return cfg, nil
}

// CoverageTTL is how long a published coverage summary lives in Redis.
func (c *Config) CoverageTTL() time.Duration {
	return time.Duration(c.CoverageTTLHours) * time.Hour
}

// LoadAppConfig initializes the global AppConfig variable from the environment.
// Later calls return the first result.
func LoadAppConfig() (*Config, error) {
	once.Do(func() {
		AppConfig, loadErr = Decode(environ())
	})
	return AppConfig, loadErr
}
