package cmd

import (
	"context"
	"fmt"

	"github.com/ragingtiger/amznbot/internal/app"
	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/ragingtiger/amznbot/internal/repo/amazon"
	"github.com/ragingtiger/amznbot/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Look up the configured item ids once and print them",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load(rootOpts)
		if err != nil {
			return err
		}
		if err := conf.ValidateItems(); err != nil {
			return err
		}

		var client amazon.Client
		if err := app.New(conf, fx.Populate(&client)).Err(); err != nil {
			return err
		}

		products, err := usecase.NewItemSource(client, conf.Catalog.ItemIDs).Fetch(context.Background())
		if err != nil {
			return err
		}
		for i, p := range products {
			line, err := usecase.FormatProduct(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d - %s\n", i, line)
		}
		return nil
	},
}
