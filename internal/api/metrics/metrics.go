// Package metrics defines and registers all custom Prometheus metrics for
// the sales API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sales_api"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login outcomes.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts access-token verifications performed by the
// auth middleware.
// Label:
//   - result: "ok", "expired", "invalid" or "missing"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of access token verifications, labelled by outcome.",
	},
	[]string{"result"},
)

// RefreshRotationsTotal counts refresh-token rotation outcomes.
// Label:
//   - result: "success", "denied" or "error"
var RefreshRotationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_rotations_total",
		Help:      "Total number of refresh token rotations, labelled by outcome.",
	},
	[]string{"result"},
)

// AuthorizationDeniedTotal counts requests rejected by the role guard.
// Label:
//   - reason: "no_roles_declared", "no_caller_roles" or "role_mismatch"
var AuthorizationDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denied_total",
		Help:      "Total number of requests denied by role-based access control.",
	},
	[]string{"reason"},
)
