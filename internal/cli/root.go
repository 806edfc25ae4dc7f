// Package cli defines the cobra command tree for rsapi.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realstate-api/internal/client"
	"github.com/evcraddock/realstate-api/internal/config"
	"github.com/evcraddock/realstate-api/internal/docstore"
)

var (
	flagFormat string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rsapi",
		Short:         "Real-estate property API",
		Long:          "Serve the real-estate property API, or manage properties, owners and sales from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applySavedDefaults(cmd)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "server config file (YAML)")

	root.AddCommand(
		newServeCmd(),
		newPropertyCmd(),
		newOwnerCmd(),
		newTraceCmd(),
		newConnectCmd(),
		newConfigCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// loadServerConfig loads and validates the server configuration.
func loadServerConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore opens the document store selected by cfg.
func openStore(ctx context.Context, cfg config.Config) (docstore.Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		return docstore.OpenSQLite(ctx, cfg.SQLitePath)
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return docstore.OpenMongo(connectCtx, cfg.MongoURI(), cfg.DatabaseName)
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
}

// closeStore closes the store, logging any error to stderr.
func closeStore(store docstore.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing store: %v\n", err)
	}
}

// newAPIClient creates an HTTP client for the property API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
