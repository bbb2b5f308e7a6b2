package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ragingtiger/amznbot/pkg/util"
)

type reporterMetrics struct {
	fetchDuration *prometheus.HistogramVec
	priceChanges  *prometheus.CounterVec
	dispatches    *prometheus.CounterVec
}

func newReporterMetrics() (*reporterMetrics, error) {
	fetchDuration, err := util.GetHistogramVec("amznbot_source_fetch_duration_seconds", "Time spent fetching one source", "source", "status")
	if err != nil {
		return nil, err
	}
	priceChanges, err := util.GetCounterVec("amznbot_price_changes_total", "Price changes detected", "source")
	if err != nil {
		return nil, err
	}
	dispatches, err := util.GetCounterVec("amznbot_dispatch_total", "Chat messages dispatched", "status")
	if err != nil {
		return nil, err
	}
	return &reporterMetrics{
		fetchDuration: fetchDuration,
		priceChanges:  priceChanges,
		dispatches:    dispatches,
	}, nil
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
