package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business-level collectors. Incremented from the services so operators can
// watch verification throughput without tailing logs.
var (
	ReviewVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "backoffice",
		Name:      "payment_reviews_total",
		Help:      "Payment claim reviews applied, partitioned by resulting status.",
	}, []string{"status"})

	TicketNumberCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "backoffice",
		Name:      "ticket_number_collisions_total",
		Help:      "Ticket number inserts retried because the number was taken.",
	})

	TicketAllocationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "backoffice",
		Name:      "ticket_allocation_failures_total",
		Help:      "Paid claims left without a ticket after the retry budget ran out.",
	})

	EmailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "backoffice",
		Name:      "notification_email_failures_total",
		Help:      "Review outcome emails that could not be delivered.",
	})
)
