// Package metrics exposes the service's Prometheus instrumentation
// behind a private registry, so default-registry collectors from other
// libraries never leak into the scrape output.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	DepartureQueries *prometheus.CounterVec // result label: ok|empty|error
	QueryDuration    prometheus.Histogram

	FeedRefreshes   prometheus.Counter
	FeedRefreshErrs prometheus.Counter
	TrainsTracked   prometheus.Gauge

	FeedRows *prometheus.GaugeVec // table label: stops|routes|trips|stop_times|calendar_dates

	CommentsPosted prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		DepartureQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departures_queries_total",
			Help: "Total departure queries served.",
		}, []string{"result"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "departures_query_duration_seconds",
			Help:    "Duration of departure query evaluation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
		}),
		FeedRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "departures_realtime_refreshes_total",
			Help: "Total realtime feed refreshes.",
		}),
		FeedRefreshErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "departures_realtime_refresh_errors_total",
			Help: "Total failed realtime feed refreshes.",
		}),
		TrainsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "departures_realtime_trains",
			Help: "Trains present in the latest realtime snapshot.",
		}),
		FeedRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "departures_schedule_rows",
			Help: "Rows loaded per schedule table.",
		}, []string{"table"}),
		CommentsPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "departures_comments_posted_total",
			Help: "Total station comments accepted.",
		}),
	}

	reg.MustRegister(
		c.DepartureQueries, c.QueryDuration,
		c.FeedRefreshes, c.FeedRefreshErrs, c.TrainsTracked,
		c.FeedRows, c.CommentsPosted,
	)

	return c
}

// Handler returns the scrape endpoint for the private registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
