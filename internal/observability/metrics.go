package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DivesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backfill_dives_scanned_total",
		Help: "Candidate dives read from the MacDive database",
	})
	DivesUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backfill_dives_updated_total",
		Help: "Dives whose site was created or would be created (dry-run)",
	})
	DiveOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backfill_dive_outcomes_total",
		Help: "Decode outcomes per dive, by reason",
	}, []string{"outcome"})
	TruncatedLogs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backfill_truncated_logs_total",
		Help: "Decoded logs with a trailing partial record",
	})
	GeocodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backfill_geocode_errors_total",
		Help: "Reverse geocoding requests that failed",
	})
	GeocodeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "backfill_geocode_cache_hits_total",
		Help: "Reverse geocoding results served from Redis",
	})
	DecodeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "backfill_decode_latency_seconds",
		Help:    "Latency of the decompress+extract pipeline per dive",
		Buckets: prometheus.DefBuckets,
	})
)

func ObserveDecodeLatency(start time.Time) {
	DecodeLatency.Observe(time.Since(start).Seconds())
}

func StartMetricsServer(port string) {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	_ = http.ListenAndServe(":"+port, nil)
}
