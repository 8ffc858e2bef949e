package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"dutchie-extractor/internal/types"
)

// env mirrors types.Config with the environment-variable bindings. Fields
// absent from the environment keep the compiled-in defaults.
type env struct {
	MenuType          string        `envconfig:"MENU_TYPE"`
	NavigationTimeout time.Duration `envconfig:"NAV_TIMEOUT"`
	MenuWaitTimeout   time.Duration `envconfig:"MENU_WAIT_TIMEOUT"`
	SettleDelay       time.Duration `envconfig:"SETTLE_DELAY"`
	MaxPages          int           `envconfig:"MAX_PAGES"`
	Headless          bool          `envconfig:"HEADLESS"`
	UserAgent         string        `envconfig:"USER_AGENT"`
}

// Load builds the crawl configuration: compiled-in defaults, overridden by
// environment variables, which a local .env file may supply.
func Load() (*types.Config, error) {
	// No .env in production is the normal case; only complain when the
	// file exists but cannot be read.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("warning: .env file found but could not be loaded: %v", err)
		}
	}

	cfg := types.DefaultConfig()
	e := env{
		MenuType:          cfg.MenuType,
		NavigationTimeout: cfg.NavigationTimeout,
		MenuWaitTimeout:   cfg.MenuWaitTimeout,
		SettleDelay:       cfg.SettleDelay,
		MaxPages:          cfg.MaxPages,
		Headless:          cfg.Headless,
		UserAgent:         cfg.UserAgent,
	}
	if err := envconfig.Process("", &e); err != nil {
		return nil, err
	}

	cfg.MenuType = e.MenuType
	cfg.NavigationTimeout = e.NavigationTimeout
	cfg.MenuWaitTimeout = e.MenuWaitTimeout
	cfg.SettleDelay = e.SettleDelay
	cfg.MaxPages = e.MaxPages
	cfg.Headless = e.Headless
	cfg.UserAgent = e.UserAgent
	return cfg, nil
}
