package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atelier_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MailDeliveries counts notification email attempts by outcome
	// (delivered, failed, dropped).
	MailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atelier_mail_deliveries_total",
		Help: "Total number of notification email attempts by outcome",
	}, []string{"outcome"})

	// AssistantReplies counts smart-connect replies by source
	// (generated, canned).
	AssistantReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atelier_assistant_replies_total",
		Help: "Total number of assistant replies by source",
	}, []string{"source"})
)
