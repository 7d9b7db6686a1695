package node

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the session/handler counters SPEC_FULL.md's DOMAIN STACK
// table assigns to prometheus/client_golang: "session/handler counters
// (accepted connections, auth failures, adoption attempts) exposed on an
// internal registry." spec.md itself names no metrics surface (it is one
// of the ambient ones Non-goals never excludes), so the counter set here
// is sized to the handful of events C5's own prose discusses.
type metrics struct {
	registry          *prometheus.Registry
	acceptedSessions  prometheus.Counter
	authFailures      prometheus.Counter
	adoptionAttempts  prometheus.Counter
	adoptionSuccesses prometheus.Counter
	verifyFailures    prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()

	m := &metrics{
		registry: reg,
		acceptedSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lichtenstein_node_accepted_sessions_total",
			Help: "Total TLS sessions accepted on the control-plane listener.",
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lichtenstein_node_auth_failures_total",
			Help: "Total HMAC authentication failures, either role.",
		}),
		adoptionAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lichtenstein_node_adoption_attempts_total",
			Help: "Total inbound AdoptRequest messages handled.",
		}),
		adoptionSuccesses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lichtenstein_node_adoption_successes_total",
			Help: "Total adoptions that completed verification successfully.",
		}),
		verifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lichtenstein_node_verify_failures_total",
			Help: "Total VERIFY_ADOPT state failures.",
		}),
	}

	reg.MustRegister(
		m.acceptedSessions,
		m.authFailures,
		m.adoptionAttempts,
		m.adoptionSuccesses,
		m.verifyFailures,
	)

	return m
}

// Registry exposes the internal prometheus registry for a caller (e.g.
// cmd/lichtensteind) to serve on a metrics endpoint.
func (m *metrics) Registry() *prometheus.Registry { return m.registry }
