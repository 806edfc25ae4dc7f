package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realstate-api/internal/client"
)

func newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <server-url>",
		Short: "Save the API server URL",
		Long:  "Checks that the server answers its health endpoint, then saves it as server_url in ~/.config/rsapi/config.yaml.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL := strings.TrimRight(args[0], "/")

			if err := client.New(serverURL).Health(); err != nil {
				return fmt.Errorf("checking %s: %w", serverURL, err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.ServerURL = serverURL
			if err := saveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s\n", serverURL)
			return nil
		},
	}
}
