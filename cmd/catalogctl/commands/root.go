package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/princeprakhar/device-catalog/internal/config"
	"github.com/princeprakhar/device-catalog/internal/services"
	"github.com/princeprakhar/device-catalog/internal/store"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

var (
	// Global flags
	storeDriver string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Operate a device catalog's record store",
	Long: `catalogctl manages a device catalog directly through its record store,
using the same configuration as the server (.env, config.yml, environment).

Examples:
  catalogctl promote --email ada@example.com
  catalogctl list-admins --json
  catalogctl seed --count 20
  catalogctl settings export --file settings.yaml`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "Override STORE_DRIVER (memory, redis, postgres)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// app is the subset of the service graph the commands work with.
type app struct {
	backend  *store.Backend
	users    *services.UserService
	settings *services.SettingsService
	devices  *services.DeviceService
}

func (a *app) Close() error {
	return a.backend.Store.Close()
}

func openApp(ctx context.Context) (*app, error) {
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storeDriver != "" {
		cfg.StoreDriver = storeDriver
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.StoreDriver == config.DriverMemory {
		logger.Warn("The memory store is private to this process; changes will not reach a running server")
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	identity := services.NewGoTrueClient(cfg.IdentityURL, cfg.IdentityServiceKey, cfg.IdentityJWTSecret)
	settingsService := services.NewSettingsService(backend.Store)
	return &app{
		backend:  backend,
		users:    services.NewUserService(backend.Store, identity, nil),
		settings: settingsService,
		devices:  services.NewDeviceService(backend.Store, settingsService),
	}, nil
}
