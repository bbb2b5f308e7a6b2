package cmd

import (
	"context"
	"fmt"

	"github.com/ragingtiger/amznbot/internal/app"
	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/ragingtiger/amznbot/internal/server"
	"github.com/ragingtiger/amznbot/internal/worker"
	"github.com/ragingtiger/amznbot/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var reportOpts struct {
	items    bool
	search   bool
	period   int
	debug    bool
	httpAddr string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Poll the selected sources and post price changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportOpts.debug {
			logger.SetLevel(logger.DebugLevel)
		}

		conf, err := config.Load(rootOpts)
		if err != nil {
			return err
		}
		conf.Report.Items = reportOpts.items
		conf.Report.Search = reportOpts.search
		conf.Report.Debug = reportOpts.debug
		if cmd.Flags().Changed("period") {
			conf.Report.Period = reportOpts.period
		}
		if reportOpts.httpAddr != "" {
			conf.Server.Addr = reportOpts.httpAddr
		}
		if err := conf.ValidateReport(); err != nil {
			return err
		}

		return runApp(app.New(conf, fx.Invoke(server.StartServer, worker.StartReporter)))
	},
}

// runApp starts the app, blocks until a signal or a Shutdowner call, then
// stops it. A non-zero exit code is returned as an error so the caller
// still gets to flush and purge before exiting.
func runApp(a *fx.App) error {
	if err := a.Err(); err != nil {
		return err
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), a.StartTimeout())
	defer cancelStart()
	if err := a.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	sig := <-a.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), a.StopTimeout())
	defer cancelStop()
	if err := a.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop: %w", err)
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("stopped with exit code %d", sig.ExitCode)
	}
	return nil
}

func init() {
	flags := reportCmd.Flags()
	flags.BoolVar(&reportOpts.items, "items", false, "report on the configured item ids")
	flags.BoolVar(&reportOpts.search, "search", false, "report on the configured keyword search")
	flags.IntVar(&reportOpts.period, "period", config.DefaultPeriod, "seconds between polls")
	flags.BoolVar(&reportOpts.debug, "debug", false, "print messages instead of posting them")
	flags.StringVar(&reportOpts.httpAddr, "http-addr", "", "serve /health and /metrics on this address")
}
