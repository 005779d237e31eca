package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once
var loadErr error

type Config struct {
	AppName string     `mapstructure:"APP_NAME"`
	Env     string     `mapstructure:"APP_ENV"`
	Debug   bool       `mapstructure:"DEBUG"`
	Seed    SeedConfig `mapstructure:"-"`
	Cron    CronConfig `mapstructure:"-"`
}

// SeedConfig holds the row targets and tuning of a seed run.
type SeedConfig struct {
	Categories int           `mapstructure:"SEED_CATEGORIES" validate:"gte=0"`
	Suppliers  int           `mapstructure:"SEED_SUPPLIERS" validate:"gte=0"`
	Warehouses int           `mapstructure:"SEED_WAREHOUSES" validate:"gte=0"`
	Items      int           `mapstructure:"SEED_ITEMS" validate:"gte=0"`
	Attributes int           `mapstructure:"SEED_ATTRIBUTES" validate:"gte=0"`
	BatchSize  int           `mapstructure:"SEED_BATCH_SIZE" validate:"gte=1,lte=3000"`
	RandomSeed uint64        `mapstructure:"SEED_RANDOM_SEED"`
	Writer     string        `mapstructure:"SEED_WRITER" validate:"oneof=gorm copy"`
	LockTTL    time.Duration `mapstructure:"SEED_LOCK_TTL" validate:"gt=0"`
}

var defaults = map[string]interface{}{
	"APP_NAME":         "inventory",
	"APP_ENV":          "development",
	"DEBUG":            false,
	"SEED_CATEGORIES":  10,
	"SEED_SUPPLIERS":   25,
	"SEED_WAREHOUSES":  1000,
	"SEED_ITEMS":       100000,
	"SEED_ATTRIBUTES":  1000000,
	"SEED_BATCH_SIZE":  1000,
	"SEED_RANDOM_SEED": 0,
	"SEED_WRITER":      "gorm",
	"SEED_LOCK_TTL":    "30m",
	"CRON_DENORMALIZE": "@every 1h",
}

// LoadAppConfig initializes the global AppConfig variable from the process environment.
func LoadAppConfig() (*Config, error) {
	once.Do(func() {
		AppConfig, loadErr = Load(os.Environ())
	})
	return AppConfig, loadErr
}

// Load decodes a KEY=VALUE environment list over the defaults and validates the result.
// Empty values do not override defaults.
func Load(environ []string) (*Config, error) {
	input := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		input[k] = v
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		if _, known := defaults[k]; known {
			input[k] = v
		}
	}

	cfg := &Config{}
	for _, target := range []interface{}{cfg, &cfg.Seed, &cfg.Cron} {
		if err := decode(input, target); err != nil {
			return nil, err
		}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(input map[string]interface{}, target interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
