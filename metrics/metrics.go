// Package metrics exposes prometheus counters for submissions, deletions and exports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	KindPhoto = "photo"
	KindWish  = "wish"

	OutcomeStored   = "stored"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"

	OutcomeDeleted  = "deleted"
	OutcomeIncluded = "included"
	OutcomeSkipped  = "skipped"
)

var (
	Registry = prometheus.NewRegistry()

	Submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gallery",
		Name:      "submissions_total",
		Help:      "Guest submissions by kind and outcome.",
	}, []string{"kind", "outcome"})

	Deletions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gallery",
		Name:      "deletions_total",
		Help:      "Admin deletions by kind and outcome.",
	}, []string{"kind", "outcome"})

	ExportItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gallery",
		Name:      "export_items_total",
		Help:      "Photos fetched for archive exports, included or skipped.",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(
		Submissions,
		Deletions,
		ExportItems,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func Submission(kind, outcome string) {
	Submissions.WithLabelValues(kind, outcome).Inc()
}

func Deletion(kind, outcome string) {
	Deletions.WithLabelValues(kind, outcome).Inc()
}

func ExportItem(outcome string) {
	ExportItems.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
