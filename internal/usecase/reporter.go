package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/ragingtiger/amznbot/internal/models"
	"github.com/ragingtiger/amznbot/pkg/logger"
)

var (
	ErrNoSources      = fmt.Errorf("%w: no source configured, use --items and/or --search", config.ErrInvalidConfig)
	ErrNotInitialized = errors.New("reporter is not initialized")
)

type State int32

const (
	StateUninitialized State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

type ReporterOption func(*Reporter)

func WithClock(now func() time.Time) ReporterOption {
	return func(r *Reporter) {
		r.nowFunc = now
	}
}

func WithLogger(log *logger.Logger) ReporterOption {
	return func(r *Reporter) {
		r.log = log
	}
}

// Reporter runs the fetch, diff and notify cycle. The baseline is owned by the
// goroutine calling Initialize, Poll and Run.
type Reporter struct {
	sources  []Source
	notifier Notifier
	channel  string
	period   time.Duration
	baseline Baseline
	state    atomic.Int32
	nowFunc  func() time.Time
	log      *logger.Logger
	metrics  *reporterMetrics
}

func NewReporter(channel string, period time.Duration, sources []Source, notifier Notifier, opts ...ReporterOption) (*Reporter, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: 'period' must be greater than 0", config.ErrInvalidConfig)
	}
	metrics, err := newReporterMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to register reporter metrics: %w", err)
	}
	r := &Reporter{
		sources:  sources,
		notifier: notifier,
		channel:  channel,
		period:   period,
		baseline: Baseline{},
		nowFunc:  time.Now,
		log:      logger.MustNamed("reporter"),
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Reporter) State() State {
	return State(r.state.Load())
}

// Baseline returns a copy of the last known prices.
func (r *Reporter) Baseline() Baseline {
	return r.baseline.Clone()
}

// Initialize seeds the baseline from every source and posts the startup
// summary. Sources failing here are seeded silently on their next good cycle.
func (r *Reporter) Initialize(ctx context.Context) error {
	if len(r.sources) == 0 {
		return ErrNoSources
	}
	ctx = context.WithoutCancel(ctx)

	var initial []models.Product
	for _, src := range r.sources {
		products, err := r.fetch(ctx, src)
		if err != nil {
			continue
		}
		for _, p := range products {
			if _, ok := r.baseline[p.ID]; ok {
				continue
			}
			r.baseline[p.ID] = p.FormattedPrice
			initial = append(initial, p)
		}
	}

	text, err := FormatStartup(r.nowFunc(), initial)
	if err != nil {
		return fmt.Errorf("failed to format startup message: %w", err)
	}
	r.dispatch(ctx, text)

	r.state.Store(int32(StateRunning))
	r.log.Infow("reporter initialized", "sources", len(r.sources), "products", len(r.baseline))
	return nil
}

// Poll runs one cycle over all sources. Every source is fetched and diffed
// before any update is dispatched, one message per source batch. Failures are
// logged and never stop the cycle.
func (r *Reporter) Poll(ctx context.Context) error {
	if r.State() != StateRunning {
		return ErrNotInitialized
	}
	ctx = context.WithoutCancel(ctx)

	type batch struct {
		source  string
		notices []ChangeNotice
	}
	var batches []batch
	for _, src := range r.sources {
		products, err := r.fetch(ctx, src)
		if err != nil {
			continue
		}

		next, notices, added := Diff(r.baseline, products)
		r.baseline = next
		for _, id := range added {
			r.log.Infow("new product recorded", "source", src.Name(), "id", id, "price", next[id])
		}
		if len(notices) == 0 {
			continue
		}
		r.metrics.priceChanges.WithLabelValues(src.Name()).Add(float64(len(notices)))
		batches = append(batches, batch{source: src.Name(), notices: notices})
	}

	for _, b := range batches {
		text, err := FormatUpdate(r.nowFunc(), b.notices)
		if err != nil {
			r.log.Errorw("failed to format update message", "source", b.source, "error", err)
			continue
		}
		r.dispatch(ctx, text)
	}
	return nil
}

// Run initializes the reporter and polls every period until ctx is done.
func (r *Reporter) Run(ctx context.Context) error {
	if err := r.Initialize(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(r.period)
	defer timer.Stop()
	for {
		r.log.Debugf("Sleeping %d seconds", int(r.period.Seconds()))
		select {
		case <-ctx.Done():
			r.log.Infow("reporter stopped")
			return nil
		case <-timer.C:
		}

		if err := r.Poll(ctx); err != nil {
			return err
		}
		timer.Reset(r.period)
	}
}

func (r *Reporter) fetch(ctx context.Context, src Source) ([]models.Product, error) {
	start := time.Now()
	products, err := src.Fetch(ctx)
	r.metrics.fetchDuration.WithLabelValues(src.Name(), statusLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		r.log.Errorw("failed to fetch source", "source", src.Name(), "error", err)
		return nil, err
	}
	return products, nil
}

func (r *Reporter) dispatch(ctx context.Context, text string) {
	err := r.notifier.PostMessage(ctx, r.channel, text)
	r.metrics.dispatches.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		r.log.Errorw("failed to dispatch message", "channel", r.channel, "error", err)
	}
}
