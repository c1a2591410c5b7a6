// Package metrics defines all custom Prometheus metrics for the supplier
// registry. It is the single source of truth for metric names, labels, and
// help strings; registration happens at package init through promauto, so
// importing any metric is enough to expose it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "supplier_registry"

// SuppliersCreatedTotal counts suppliers that passed both uniqueness checks
// and were persisted.
var SuppliersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suppliers_created_total",
		Help:      "Total number of suppliers created.",
	},
)

// DuplicateRejectionsTotal counts create/update attempts rejected by a
// uniqueness rule.
// Label:
//   - field: "matricule" or "email"
var DuplicateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_rejections_total",
		Help:      "Total number of writes rejected for violating a uniqueness rule.",
	},
	[]string{"field"},
)

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts accounts created.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of user accounts created.",
	},
)

// TokensRevokedTotal counts tokens placed on the revocation list by logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of tokens revoked before their natural expiry.",
	},
)
