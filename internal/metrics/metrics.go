// Package metrics holds the Prometheus instrumentation for PeopleDesk.
// The CLI has no scrape endpoint; counters live on a private registry and
// are rendered in text exposition form by `peopledesk stats --metrics`.
package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for PeopleDesk.
// Pass to components that need to record metrics.
type Metrics struct {
	registry *prometheus.Registry

	LoginsTotal          *prometheus.CounterVec
	SessionExpiriesTotal prometheus.Counter
	AuthzDenialsTotal    *prometheus.CounterVec
}

// New creates a private registry and registers all metrics on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		registry: reg,
		LoginsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "peopledesk",
				Name:      "logins_total",
				Help:      "Total login attempts",
			},
			[]string{"result"}, // result=success/failure
		),
		SessionExpiriesTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "peopledesk",
				Name:      "session_expiries_total",
				Help:      "Total sessions ended by the expiry timer",
			},
		),
		AuthzDenialsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "peopledesk",
				Name:      "authz_denials_total",
				Help:      "Total authorization denials",
			},
			[]string{"kind"}, // kind=role/permission
		),
	}
}

// WriteText renders every metric family on the registry in the Prometheus
// text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, fam := range families {
		if _, err := fmt.Fprintf(w, "# HELP %s %s\n", fam.GetName(), fam.GetHelp()); err != nil {
			return err
		}
		for _, metric := range fam.GetMetric() {
			if err := writeMetricLine(w, fam, metric); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeMetricLine writes one sample line, including labels when present.
func writeMetricLine(w io.Writer, fam *dto.MetricFamily, metric *dto.Metric) error {
	name := fam.GetName()
	labels := ""
	for i, lp := range metric.GetLabel() {
		if i == 0 {
			labels = "{"
		} else {
			labels += ","
		}
		labels += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
	}
	if labels != "" {
		labels += "}"
	}

	var value float64
	switch fam.GetType() {
	case dto.MetricType_COUNTER:
		value = metric.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		value = metric.GetGauge().GetValue()
	default:
		return nil
	}
	_, err := fmt.Fprintf(w, "%s%s %g\n", name, labels, value)
	return err
}
