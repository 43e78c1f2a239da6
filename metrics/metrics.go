// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProposalsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oneballot_proposals_created_total",
		Help: "Number of proposals successfully created",
	})
	ProposalsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oneballot_proposals_deleted_total",
		Help: "Number of proposals deleted after their grace period",
	})
	VotesCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oneballot_votes_cast_total",
		Help: "Number of votes successfully cast",
	})
	VotesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oneballot_votes_rejected_total",
		Help: "Number of rejected vote attempts by reason",
	}, []string{"reason"})
	StorageReclaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oneballot_storage_reclaimed_bytes_total",
		Help: "Bytes of proposal storage reclaimed by deletions",
	})
)

// Rejection reason labels for VotesRejected.
const (
	ReasonNotOpen       = "not_open"
	ReasonClosed        = "closed"
	ReasonDuplicate     = "duplicate"
	ReasonInvalidChoice = "invalid_choice"
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
