package app

import (
	"os"

	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/ragingtiger/amznbot/internal/repo/amazon"
	"github.com/ragingtiger/amznbot/internal/repo/console"
	"github.com/ragingtiger/amznbot/internal/repo/slack"
	"github.com/ragingtiger/amznbot/internal/server"
	"github.com/ragingtiger/amznbot/internal/usecase"
	"github.com/ragingtiger/amznbot/internal/worker"
)

func newAmazonClient(conf *config.Config) (amazon.Client, error) {
	return amazon.NewClient(conf)
}

// newNotifier prints to stdout in debug mode instead of posting to Slack.
func newNotifier(conf *config.Config) usecase.Notifier {
	if conf.Report.Debug {
		return console.NewNotifier(os.Stdout)
	}
	return slack.NewClient(conf)
}

func newSources(conf *config.Config, client amazon.Client) []usecase.Source {
	var sources []usecase.Source
	if conf.Report.Items {
		sources = append(sources, usecase.NewItemSource(client, conf.Catalog.ItemIDs))
	}
	if conf.Report.Search {
		sources = append(sources, usecase.NewSearchSource(client, conf.Catalog.Keywords, conf.Catalog.SearchIndex))
	}
	return sources
}

func newReporter(conf *config.Config, sources []usecase.Source, notifier usecase.Notifier) (*usecase.Reporter, error) {
	return usecase.NewReporter(conf.Report.Channel, conf.Report.PeriodDuration(), sources, notifier)
}

func newStatusProvider(r *usecase.Reporter) server.StatusProvider { return r }

func newRunner(r *usecase.Reporter) worker.Runner { return r }
