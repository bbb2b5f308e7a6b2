package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func shutdownOnStart(opts ...fx.ShutdownOption) fx.Option {
	return fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() { _ = sd.Shutdown(opts...) }()
				return nil
			},
		})
	})
}

func TestRunApp(t *testing.T) {
	t.Run("clean shutdown", func(t *testing.T) {
		err := runApp(fx.New(fx.NopLogger, shutdownOnStart()))
		assert.NoError(t, err)
	})

	t.Run("exit code is returned", func(t *testing.T) {
		stopped := false
		err := runApp(fx.New(fx.NopLogger,
			shutdownOnStart(fx.ExitCode(1)),
			fx.Invoke(func(lc fx.Lifecycle) {
				lc.Append(fx.Hook{OnStop: func(context.Context) error {
					stopped = true
					return nil
				}})
			}),
		))
		assert.ErrorContains(t, err, "exit code 1")
		assert.True(t, stopped, "app must be stopped before returning")
	})

	t.Run("start failure", func(t *testing.T) {
		boom := errors.New("boom")
		err := runApp(fx.New(fx.NopLogger, fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{OnStart: func(context.Context) error { return boom }})
		})))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("graph error", func(t *testing.T) {
		err := runApp(fx.New(fx.NopLogger, fx.Invoke(func(string) {})))
		assert.Error(t, err)
	})
}
