// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto; request-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success", "failure", "banned" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ModerationActionsTotal counts successful admin moderation actions.
// Labels:
//   - action: "ban", "unban" or "delete"
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Total number of completed moderation actions, by action.",
	},
	[]string{"action"},
)

// ProfilePhotoUploadsTotal counts stored profile photos.
var ProfilePhotoUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_photo_uploads_total",
		Help:      "Total number of profile photos stored.",
	},
)
