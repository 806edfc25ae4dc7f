package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realstate-api/internal/owner"
)

func newOwnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Manage owners directly in the store",
		Long:  "Owners are not exposed over HTTP. These commands open the configured store directly.",
	}
	cmd.AddCommand(newOwnerAddCmd(), newOwnerShowCmd())
	return cmd
}

func newOwnerAddCmd() *cobra.Command {
	var (
		in    owner.Create
		photo string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if photo != "" {
				in.Photo = &photo
			}

			cfg, err := loadServerConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			o, err := owner.NewRepository(store).Create(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("adding owner: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), o)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Owner added.")
			printOwner(cmd.OutOrStdout(), o)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "owner name")
	cmd.Flags().StringVar(&in.Address, "address", "", "owner address")
	cmd.Flags().StringVar(&in.Birthday, "birthday", "", "birthday (YYYY-MM-DD)")
	cmd.Flags().StringVar(&photo, "photo", "", "photo path (optional)")

	return cmd
}

func newOwnerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an owner",
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

			o, found, err := owner.NewRepository(store).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("owner %s not found", args[0])
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), o)
			}
			printOwner(cmd.OutOrStdout(), o)
			return nil
		},
	}
}
