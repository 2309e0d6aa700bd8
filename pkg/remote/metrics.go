package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voctozoom"

var (
	cropRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "crop_requests_total",
		Help:      "Crop change requests by channel and result (ok, rejected, error).",
	}, []string{"channel", "result"})

	frameFetch = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "frame_fetch_seconds",
		Help:      "Round trip time of get_image.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .2, .5, 1, 2},
	}, []string{"channel"})

	connected = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "channel_connected",
		Help:      "1 while the channel connection is usable.",
	}, []string{"channel"})
)
