// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/one-ballot/cliparse"
	"github.com/danielhkuo/one-ballot/handlers"
	"github.com/danielhkuo/one-ballot/metrics"
	"github.com/danielhkuo/one-ballot/middleware"
	"github.com/danielhkuo/one-ballot/voting"
)

func NewRouter(engine *voting.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	identityHandler := handlers.NewIdentityHandler(cfg)
	proposalHandler := handlers.NewProposalHandler(engine, cfg)
	voteHandler := handlers.NewVoteHandler(engine, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Identity issuance
	mux.HandleFunc("POST /identities", middleware.WithLogging(identityHandler.Issue))

	// Proposal lifecycle
	mux.HandleFunc("POST /proposals", middleware.WithLogging(proposalHandler.CreateProposal))
	mux.HandleFunc("GET /proposals", middleware.WithLogging(proposalHandler.ListProposals))
	mux.HandleFunc("GET /proposals/{address}", middleware.WithLogging(proposalHandler.GetProposal))
	mux.HandleFunc("DELETE /proposals/{address}", middleware.WithLogging(proposalHandler.DeleteProposal))

	// Voting
	mux.HandleFunc("POST /proposals/{address}/votes", middleware.WithLogging(voteHandler.CastVote))
	mux.HandleFunc("GET /proposals/{address}/votes/me", middleware.WithLogging(voteHandler.GetMyVote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("one-ballot API v1"))
	})

	return mux
}
