// Package metrics defines and registers all custom Prometheus metrics for the
// complaint portal API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "complaints"

// RegistrationsTotal counts successful account registrations.
// Label:
//   - role: "resident", "service" or "admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "pending", "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// LoginsThrottledTotal counts logins refused by the attempt limiter.
var LoginsThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_throttled_total",
		Help:      "Total number of logins refused by the attempt limiter.",
	},
)

// IssuesCreatedTotal counts newly filed issues.
// Label:
//   - type: the reporter-supplied issue type
var IssuesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issues_created_total",
		Help:      "Total number of issues created, by issue type.",
	},
	[]string{"type"},
)

// IssueUpdatesTotal counts triage field updates (status/assignment).
var IssueUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issue_updates_total",
		Help:      "Total number of issue field updates applied.",
	},
)

// CommentsAppendedTotal counts comments appended to issues.
var CommentsAppendedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_appended_total",
		Help:      "Total number of comments appended to issues.",
	},
)
