package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realstate-api/internal/objectid"
	"github.com/evcraddock/realstate-api/internal/trace"
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Manage property sale records directly in the store",
		Long:  "Sale records are not exposed over HTTP. These commands open the configured store directly.",
	}
	cmd.AddCommand(newTraceAddCmd(), newTraceShowCmd())
	return cmd
}

func newTraceAddCmd() *cobra.Command {
	var (
		in         trace.Create
		propertyID string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a property sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := objectid.Parse(propertyID)
			if err != nil {
				return fmt.Errorf("--property: %w", err)
			}
			in.IDProperty = pid

			cfg, err := loadServerConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			pt, err := trace.NewRepository(store).Create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("recording sale: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), pt)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sale recorded.")
			printTrace(cmd.OutOrStdout(), pt)
			return nil
		},
	}

	cmd.Flags().StringVar(&propertyID, "property", "", "property id")
	cmd.Flags().StringVar(&in.DateSale, "date", "", "sale date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Name, "name", "", "sale name")
	cmd.Flags().Float64Var(&in.Value, "value", 0, "sale value")
	cmd.Flags().Float64Var(&in.Tax, "tax", 0, "tax paid")
	_ = cmd.MarkFlagRequired("property")

	return cmd
}

func newTraceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a sale record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			pt, found, err := trace.NewRepository(store).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("sale %s not found", args[0])
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), pt)
			}
			printTrace(cmd.OutOrStdout(), pt)
			return nil
		},
	}
}
