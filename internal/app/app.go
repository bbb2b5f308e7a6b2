package app

import (
	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/ragingtiger/amznbot/internal/server"
	"github.com/ragingtiger/amznbot/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

// New builds the application graph around an already validated config.
func New(conf *config.Config, opts ...fx.Option) *fx.App {
	log := logger.MustNamed("app")
	log.Debugw("config loaded",
		"catalog", conf.Catalog,
		"report", conf.Report,
		"server", conf.Server,
	)
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newAmazonClient,
			newNotifier,
			newSources,
			newReporter,
			newStatusProvider,
			newRunner,

			server.NewHandler,
		),
		fx.Supply(conf),
		fx.Options(opts...),
	)
}
