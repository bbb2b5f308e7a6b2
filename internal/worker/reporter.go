package worker

import (
	"context"

	"github.com/ragingtiger/amznbot/pkg/logger"
	"go.uber.org/fx"
)

// Runner is a blocking loop that returns once ctx is done or it fails.
type Runner interface {
	Run(ctx context.Context) error
}

// StartReporter runs the reporter loop for the lifetime of the app. A loop
// error shuts the app down with exit code 1.
func StartReporter(lc fx.Lifecycle, sd fx.Shutdowner, runner Runner) {
	log := logger.MustNamed("worker")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				log.Infow("starting reporter")
				if err := runner.Run(ctx); err != nil {
					log.Errorw("reporter failed", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
					return
				}
				log.Infow("reporter finished")
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
