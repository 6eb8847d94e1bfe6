// Package metrics defines the custom Prometheus metrics for the poll API.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "poll"

// PollsCreatedTotal counts successfully created polls.
var PollsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polls_created_total",
		Help:      "Total number of polls created.",
	},
)

// PollsDeletedTotal counts polls removed by their creator.
var PollsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polls_deleted_total",
		Help:      "Total number of polls deleted.",
	},
)

// VotesCastTotal counts accepted vote submissions. A revote counts again:
// the metric tracks submissions, not distinct ballots.
// Labels:
//   - mode: "single" or "multiple", the voted poll's choice mode
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of accepted vote submissions, by poll mode.",
	},
	[]string{"mode"},
)

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - endpoint: "register" or "login"
//   - result:   "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of auth attempts, by endpoint and result.",
	},
	[]string{"endpoint", "result"},
)
