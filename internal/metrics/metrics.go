// Package metrics exposes training runs as Prometheus collectors fed by lifecycle hooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors holds the trainer metrics.
type Collectors struct {
	Records      *prometheus.CounterVec
	Skipped      *prometheus.CounterVec
	Truncated    prometheus.Counter
	SlotsIgnored *prometheus.CounterVec
	TrainSeconds *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on a fresh registry.
func New() *Collectors {
	return NewWith(prometheus.NewRegistry())
}

// NewWith creates the collectors and registers them on reg.
// Handler serves reg when it is also a Gatherer, the default registry otherwise.
func NewWith(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glossa_records_total",
				Help: "Training records forwarded to a sink",
			},
			[]string{"model", "lang", "kind"},
		),
		Skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glossa_skills_skipped_total",
				Help: "Skills without NLU data for a language",
			},
			[]string{"lang"},
		),
		Truncated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "glossa_expansion_truncated_total",
				Help: "Utterance templates truncated at the expansion limit",
			},
		),
		SlotsIgnored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glossa_slots_ignored_total",
				Help: "Slots whose item type is not bound",
			},
			[]string{"item_type"},
		),
		TrainSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "glossa_model_train_seconds",
				Help: "Duration of model training and persistence",
			},
			[]string{"model", "outcome"},
		),
	}
	reg.MustRegister(c.Records, c.Skipped, c.Truncated, c.SlotsIgnored, c.TrainSeconds)
	if g, ok := reg.(prometheus.Gatherer); ok {
		c.gatherer = g
	}
	return c
}

// Hooks returns lifecycle hooks that record into the collectors.
func (c *Collectors) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRecord: func(_ context.Context, e *domain.RecordEvent) {
			c.Records.WithLabelValues(e.Model, e.Record.Lang, string(e.Record.Kind)).Inc()
		},
		OnSkillSkipped: func(_ context.Context, e *domain.SkillEvent) {
			c.Skipped.WithLabelValues(e.Lang).Inc()
		},
		OnExpansionLimit: func(context.Context, *domain.ExpansionEvent) {
			c.Truncated.Inc()
		},
		OnSlotIgnored: func(_ context.Context, e *domain.SlotEvent) {
			c.SlotsIgnored.WithLabelValues(e.ItemType).Inc()
		},
		OnModelTrained: func(_ context.Context, e *domain.ModelEvent) {
			outcome := "success"
			if e.Err != nil {
				outcome = "failure"
			}
			c.TrainSeconds.WithLabelValues(e.Model, outcome).Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the registry the collectors live in.
func (c *Collectors) Handler() http.Handler {
	if c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
