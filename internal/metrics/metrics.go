// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Consent lifecycle counters, labelled by the transition performed.
var (
	ConsentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "consent",
		Name:      "transitions_total",
		Help:      "Consent lifecycle transitions by action.",
	}, []string{"action"})

	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "consent",
		Name:      "tokens_issued_total",
		Help:      "Access tokens synthesized on consent approval.",
	})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	ExportsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "export",
		Name:      "completed_total",
		Help:      "Completed data exports by destination.",
	}, []string{"destination"})
)

// Handler adapts the prometheus scrape endpoint for gin.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
