// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/one-ballot/addr"
	"github.com/danielhkuo/one-ballot/cliparse"
	"github.com/danielhkuo/one-ballot/metrics"
	"github.com/danielhkuo/one-ballot/middleware"
	"github.com/danielhkuo/one-ballot/models"
	"github.com/danielhkuo/one-ballot/voting"
)

type VoteHandler struct {
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewVoteHandler(engine *voting.Engine, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{engine: engine, cfg: cfg}
}

// CastVote handles POST /proposals/{address}/votes
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voter, err := callerIdentity(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid X-Identity-Token header required")
		return
	}

	a, err := addr.Parse(r.PathValue("address"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid proposal address")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Choice == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice is required")
		return
	}

	voteAddr, err := h.engine.CastVote(voter, a, req.Choice)
	if err != nil {
		countVoteRejection(err)
		respondEngineError(w, err)
		return
	}

	metrics.VotesCast.Inc()
	slog.Info("vote cast",
		"proposal", a,
		"vote_address", voteAddr,
		"voter", voter,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteAddress: voteAddr.String(),
		Message:     "Vote recorded",
	})
}

// GetMyVote handles GET /proposals/{address}/votes/me
func (h *VoteHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	voter, err := callerIdentity(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid X-Identity-Token header required")
		return
	}

	a, err := addr.Parse(r.PathValue("address"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid proposal address")
		return
	}

	v, err := h.engine.Vote(a, voter)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, v)
}

func countVoteRejection(err error) {
	switch {
	case errors.Is(err, voting.ErrVoteNotOpen):
		metrics.VotesRejected.WithLabelValues(metrics.ReasonNotOpen).Inc()
	case errors.Is(err, voting.ErrVoteClosed):
		metrics.VotesRejected.WithLabelValues(metrics.ReasonClosed).Inc()
	case errors.Is(err, voting.ErrDuplicateVote):
		metrics.VotesRejected.WithLabelValues(metrics.ReasonDuplicate).Inc()
	case errors.Is(err, voting.ErrInvalidChoice):
		metrics.VotesRejected.WithLabelValues(metrics.ReasonInvalidChoice).Inc()
	}
}
