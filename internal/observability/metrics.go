package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	responsesAccepted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engage",
		Subsystem: "ledger",
		Name:      "responses_accepted_total",
		Help:      "Participant submissions stored, by activity type.",
	}, []string{"type"})
	responsesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engage",
		Subsystem: "ledger",
		Name:      "responses_rejected_total",
		Help:      "Participant submissions rejected, by activity type and reason.",
	}, []string{"type", "reason"})
	activitiesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "engage",
		Subsystem: "lifecycle",
		Name:      "activities_started_total",
		Help:      "Activities transitioned to live.",
	})
	activitiesEnded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "engage",
		Subsystem: "lifecycle",
		Name:      "activities_ended_total",
		Help:      "Activities transitioned to ended.",
	})
	roundsAdvanced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "engage",
		Subsystem: "lifecycle",
		Name:      "rounds_advanced_total",
		Help:      "Guess-logo rounds advanced by an organizer.",
	})
)

func init() {
	prometheus.MustRegister(
		responsesAccepted,
		responsesRejected,
		activitiesStarted,
		activitiesEnded,
		roundsAdvanced,
	)
}

func RecordResponseAccepted(activityType string) {
	responsesAccepted.WithLabelValues(activityType).Inc()
}

func RecordResponseRejected(activityType, reason string) {
	responsesRejected.WithLabelValues(activityType, reason).Inc()
}

func RecordActivityStarted() { activitiesStarted.Inc() }
func RecordActivityEnded()   { activitiesEnded.Inc() }
func RecordRoundAdvanced()   { roundsAdvanced.Inc() }
