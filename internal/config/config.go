package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type DashboardConfig struct {
	StoreURL      string `env:"MODEL_STORE_URL" envDefault:"http://localhost:3000"`
	IsAdmin       bool   `env:"DASHBOARD_ADMIN" envDefault:"false"`
	SessionCookie string `env:"SESSION_COOKIE"`
	LogFile       string `env:"LOG_FILE"`
}

type DevStoreConfig struct {
	Port        int    `env:"DEVSTORE_PORT" envDefault:"3000"`
	Database    string `env:"DEVSTORE_DB" envDefault:"file::memory:"`
	AdminCookie string `env:"DEVSTORE_ADMIN_COOKIE"`
	LogFile     string `env:"LOG_FILE"`
}

// LoadEnvFile loads variables from an env file. An empty path means only the
// process environment is used.
func LoadEnvFile(path string) error {
	if path == "" {
		log.Printf("no env file specified, using os.Environ only")
		return nil
	}

	log.Printf("loading env from file %s", path)
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file '%s': %w", path, err)
	}
	return nil
}

func LoadDashboardConfig() (DashboardConfig, error) {
	var cfg DashboardConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

func LoadDevStoreConfig() (DevStoreConfig, error) {
	var cfg DevStoreConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}
