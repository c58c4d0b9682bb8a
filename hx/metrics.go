package hx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Edit outcomes recorded by Metrics.
const (
	OutcomeAdmitted = "admitted"
	OutcomeRejected = "rejected"
)

// Metrics counts what users do to verified inputs. A nil *Metrics records
// nothing.
type Metrics struct {
	// edits counts proposed edits by field and outcome. The rejected share
	// shows how often a filter is fighting its users.
	//
	//   sum(rate(verifiedinput_edits_total{outcome="rejected"}[5m])) by (field)
	edits *prometheus.CounterVec

	// events counts blur, reveal and submitted events by field.
	events *prometheus.CounterVec

	// submits counts form submissions by whether every field was valid.
	submits *prometheus.CounterVec
}

// NewMetrics registers the verified input collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		edits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifiedinput_edits_total",
			Help: "The total number of proposed edits, by field and outcome",
		}, []string{"field", "outcome"}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifiedinput_events_total",
			Help: "The total number of blur, reveal and submitted events, by field",
		}, []string{"field", "event"}),
		submits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifiedinput_submits_total",
			Help: "The total number of form submissions, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) edit(field string, admitted bool) {
	if m == nil {
		return
	}
	outcome := OutcomeRejected
	if admitted {
		outcome = OutcomeAdmitted
	}
	m.edits.WithLabelValues(fieldLabel(field), outcome).Inc()
}

func (m *Metrics) event(field, event string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(fieldLabel(field), event).Inc()
}

func (m *Metrics) submit(valid bool) {
	if m == nil {
		return
	}
	outcome := OutcomeRejected
	if valid {
		outcome = OutcomeAdmitted
	}
	m.submits.WithLabelValues(outcome).Inc()
}

// fieldLabel keeps unnamed inputs, whose ids are random, from creating a
// series each.
func fieldLabel(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}
