package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realstate-api/internal/property"
)

func newPropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Manage properties through the API server",
	}
	cmd.AddCommand(
		newPropertyCreateCmd(),
		newPropertyShowCmd(),
		newPropertyChangePriceCmd(),
		newPropertyUploadImageCmd(),
	)
	return cmd
}

func newPropertyCreateCmd() *cobra.Command {
	var in property.Create

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newAPIClient().CreateProperty(in)
			if err != nil {
				return fmt.Errorf("creating property: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Property created.")
			printProperty(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "property name")
	cmd.Flags().StringVar(&in.Address, "address", "", "street address")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "price")
	cmd.Flags().StringVar(&in.CodeInternal, "code", "", "internal code")
	cmd.Flags().IntVar(&in.Year, "year", 0, "year built")
	cmd.Flags().StringVar(&in.IDOwner, "owner", "", "owner reference")
	for _, name := range []string{"name", "address", "price", "code", "year", "owner"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newPropertyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newAPIClient().GetProperty(args[0])
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printProperty(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newPropertyChangePriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change-price <id> <price>",
		Short: "Set a new price on a property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid price: %s", args[1])
			}

			p, err := newAPIClient().ChangePrice(args[0], price)
			if err != nil {
				return fmt.Errorf("changing price: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Price updated to $%s.\n", formatPrice(p.Price))
			return nil
		},
	}
}

func newPropertyUploadImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image <id> <file>",
		Short: "Upload an image for a property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening image: %w", err)
			}
			defer func() { _ = f.Close() }()

			img, err := newAPIClient().UploadImage(args[0], args[1], f)
			if err != nil {
				return fmt.Errorf("uploading image: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), img)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Image uploaded.")
			printImage(cmd.OutOrStdout(), img)
			return nil
		},
	}
}
