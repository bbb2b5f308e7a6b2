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

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the configured keyword search once and print the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load(rootOpts)
		if err != nil {
			return err
		}
		if err := conf.ValidateSearch(); err != nil {
			return err
		}

		var client amazon.Client
		if err := app.New(conf, fx.Populate(&client)).Err(); err != nil {
			return err
		}

		src := usecase.NewSearchSource(client, conf.Catalog.Keywords, conf.Catalog.SearchIndex)
		products, err := src.Fetch(context.Background())
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: '%s'\n", p.FormattedPrice, p.Title)
		}
		return nil
	},
}
