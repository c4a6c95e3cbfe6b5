package overlay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mining_hub_live_refreshes_total",
		Help: "Live price refresh attempts by category and outcome.",
	}, []string{"category", "outcome"})

	lastSuccessTimestamp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mining_hub_live_last_success_timestamp_seconds",
		Help: "Unix time of the last successful live refresh per category.",
	}, []string{"category"})
)
