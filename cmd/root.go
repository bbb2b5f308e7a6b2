package cmd

import (
	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/spf13/cobra"
)

var rootOpts config.Options

var rootCmd = &cobra.Command{
	Use:           "amznbot",
	Short:         "Track Amazon product prices and report changes to Slack",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.ConfigFile, "config", config.DefaultConfigFile, "path to the JSON config file")
	rootCmd.PersistentFlags().StringVar(&rootOpts.TokensFile, "tokens", config.DefaultTokensFile, "path to the credentials file")

	rootCmd.AddCommand(itemsCmd, searchCmd, reportCmd)
}

// Execute runs the command line and returns the first fatal error.
func Execute() error {
	return rootCmd.Execute()
}
