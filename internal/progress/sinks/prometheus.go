package sinks

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Mario263/OG-Tool/internal/progress"
)

// PrometheusSink exports crawl progress metrics. It owns all collectors for
// crawls started/completed and per-site page counters.
type PrometheusSink struct {
	crawlsStarted   prometheus.Counter
	crawlsCompleted *prometheus.CounterVec
	crawlRuntime    *prometheus.HistogramVec

	pagesFetched  *prometheus.CounterVec
	pagesSkipped  *prometheus.CounterVec
	itemsTotal    *prometheus.CounterVec
	fetchBytes    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// NewPrometheusSink registers the collectors against the provided registry.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		crawlsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crawler_crawls_started_total",
			Help: "Total crawls that have started.",
		}),
		crawlsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crawler_crawls_completed_total",
			Help: "Total crawls completed partitioned by result.",
		}, []string{"result"}),
		crawlRuntime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crawler_crawl_runtime_seconds",
			Help:    "Wall time per completed crawl.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"result"}),
		pagesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crawler_pages_fetched_total",
			Help: "Fetch completions partitioned by site and status.",
		}, []string{"site", "status"}),
		pagesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crawler_pages_skipped_total",
			Help: "Pages skipped during extraction, partitioned by site.",
		}, []string{"site"}),
		itemsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crawler_items_extracted_total",
			Help: "Items extracted per site.",
		}, []string{"site"}),
		fetchBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crawler_fetch_bytes_total",
			Help: "Bytes downloaded per site.",
		}, []string{"site"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crawler_fetch_duration_seconds",
			Help:    "Fetch duration partitioned by site and status.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}, []string{"site", "status"}),
	}
	for _, collector := range []prometheus.Collector{
		s.crawlsStarted,
		s.crawlsCompleted,
		s.crawlRuntime,
		s.pagesFetched,
		s.pagesSkipped,
		s.itemsTotal,
		s.fetchBytes,
		s.fetchDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the collectors using the provided batch. It is safe for
// concurrent use.
func (s *PrometheusSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		s.consumeEvent(evt)
	}
	return nil
}

func (s *PrometheusSink) consumeEvent(evt progress.Event) {
	switch evt.Stage {
	case progress.StageCrawlStart:
		s.crawlsStarted.Inc()
	case progress.StageCrawlDone:
		s.crawlsCompleted.WithLabelValues("success").Inc()
		s.crawlRuntime.WithLabelValues("success").Observe(evt.Dur.Seconds())
	case progress.StageCrawlError:
		s.crawlsCompleted.WithLabelValues("error").Inc()
		s.crawlRuntime.WithLabelValues("error").Observe(evt.Dur.Seconds())
	case progress.StageFetchDone:
		s.pagesFetched.WithLabelValues(evt.Site, string(evt.Status)).Inc()
		if evt.Bytes > 0 {
			s.fetchBytes.WithLabelValues(evt.Site).Add(float64(evt.Bytes))
		}
		s.fetchDuration.WithLabelValues(evt.Site, string(evt.Status)).Observe(evt.Dur.Seconds())
	case progress.StagePageExtracted:
		s.itemsTotal.WithLabelValues(evt.Site).Add(float64(evt.Items))
	case progress.StagePageSkipped:
		s.pagesSkipped.WithLabelValues(evt.Site).Inc()
	}
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
