// Package app wires configuration, storage and services into a runnable core.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/rentvest/internal/common"
	"github.com/bobmcallan/rentvest/internal/interfaces"
	"github.com/bobmcallan/rentvest/internal/services/portfolio"
	"github.com/bobmcallan/rentvest/internal/storage"
)

// App holds the initialized store and services shared by the binaries.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Store            interfaces.PortfolioStore
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, RENTVEST_CONFIG,
// rentvest.toml next to the binary, then config/rentvest.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("RENTVEST_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "rentvest.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/rentvest.toml"
		}
	}
	return configPath
}

// NewApp loads configuration and initializes storage and services.
// configPath may be empty, in which case ResolveConfigPath decides.
func NewApp(configPath string) (*App, error) {
	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewAppWithConfig(config, common.NewLogger(config.Logging.Level))
}

// NewAppWithConfig initializes storage and services from an already loaded config.
func NewAppWithConfig(config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	store, err := storage.NewPortfolioStore(logger, &config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Config:           config,
		Logger:           logger,
		Store:            store,
		PortfolioService: portfolio.NewService(store, config.Valuation.DefaultMarketCapRate, logger),
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("backend", config.Storage.Backend).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")
	return a, nil
}

// Close releases the store.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
		a.Store = nil
	}
}
