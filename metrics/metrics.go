package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Recorder collects counters for scoring and ticket sales.
type Recorder interface {
	SetSubmitted(mode string, outcome string)
	MatchFinished(mode string)
	ResultRecorded(outcome string)
	TicketPurchase(outcome string, quantity int)
}

type prometheusRecorder struct {
	setsSubmitted   *prometheus.CounterVec
	matchesFinished *prometheus.CounterVec
	resultsRecorded *prometheus.CounterVec
	purchases       *prometheus.CounterVec
	ticketsSold     prometheus.Counter
}

// NewPrometheus registers the collectors on reg.
func NewPrometheus(reg prometheus.Registerer) Recorder {
	r := &prometheusRecorder{
		setsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sporter",
			Subsystem: "scoring",
			Name:      "sets_submitted_total",
			Help:      "Set score submissions by match mode and outcome.",
		}, []string{"mode", "outcome"}),
		matchesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sporter",
			Subsystem: "scoring",
			Name:      "matches_finished_total",
			Help:      "Matches that reached two set wins.",
		}, []string{"mode"}),
		resultsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sporter",
			Subsystem: "scoring",
			Name:      "classic_results_total",
			Help:      "Final results recorded for classic sports.",
		}, []string{"outcome"}),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sporter",
			Subsystem: "tickets",
			Name:      "purchases_total",
			Help:      "Ticket purchase attempts by outcome.",
		}, []string{"outcome"}),
		ticketsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sporter",
			Subsystem: "tickets",
			Name:      "sold_total",
			Help:      "Tickets issued by committed purchases.",
		}),
	}
	reg.MustRegister(r.setsSubmitted, r.matchesFinished, r.resultsRecorded, r.purchases, r.ticketsSold)
	return r
}

func (r *prometheusRecorder) SetSubmitted(mode, outcome string) {
	r.setsSubmitted.WithLabelValues(mode, outcome).Inc()
}

func (r *prometheusRecorder) MatchFinished(mode string) {
	r.matchesFinished.WithLabelValues(mode).Inc()
}

func (r *prometheusRecorder) ResultRecorded(outcome string) {
	r.resultsRecorded.WithLabelValues(outcome).Inc()
}

func (r *prometheusRecorder) TicketPurchase(outcome string, quantity int) {
	r.purchases.WithLabelValues(outcome).Inc()
	if outcome == OutcomeAccepted && quantity > 0 {
		r.ticketsSold.Add(float64(quantity))
	}
}

type noopRecorder struct{}

// NewNoop returns a Recorder that discards everything.
func NewNoop() Recorder { return noopRecorder{} }

func (noopRecorder) SetSubmitted(string, string) {}
func (noopRecorder) MatchFinished(string) {}
func (noopRecorder) ResultRecorded(string) {}
func (noopRecorder) TicketPurchase(string, int) {}
