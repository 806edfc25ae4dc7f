package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realstate-api/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the API server",
		Long:  "Calls the server's health endpoint, which also checks the document store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout())
		},
	}
}

func runStatus(w io.Writer) error {
	serverURL := getServerURL()
	fmt.Fprintf(w, "Server:  %s\n", serverURL)

	err := client.New(serverURL).Health()
	var apiErr *client.APIError
	switch {
	case err == nil:
		fmt.Fprintln(w, "Status:  ✓ server and store are up")
	case errors.As(err, &apiErr):
		fmt.Fprintf(w, "Status:  ✗ unhealthy (%d)\n", apiErr.Status)
	default:
		fmt.Fprintf(w, "Status:  ✗ cannot reach server (%v)\n", err)
	}

	return nil
}
