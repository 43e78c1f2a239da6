// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/one-ballot/auth"
	"github.com/danielhkuo/one-ballot/cliparse"
	"github.com/danielhkuo/one-ballot/middleware"
	"github.com/danielhkuo/one-ballot/models"
	"github.com/danielhkuo/one-ballot/voting"
)

type IdentityHandler struct {
	cfg cliparse.Config
}

func NewIdentityHandler(cfg cliparse.Config) *IdentityHandler {
	return &IdentityHandler{cfg: cfg}
}

// Issue handles POST /identities
func (h *IdentityHandler) Issue(w http.ResponseWriter, r *http.Request) {
	id, token, err := auth.IssueIdentity(h.cfg.IdentitySalt)
	if err != nil {
		slog.Error("failed to issue identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue identity")
		return
	}

	slog.Info("identity issued", "identity", id)

	middleware.JSONResponse(w, http.StatusCreated, models.IssueIdentityResponse{
		Identity: string(id),
		Token:    token,
	})
}

// callerIdentity authenticates the request's X-Identity-Token header and
// returns the identity it was issued for.
func callerIdentity(r *http.Request, salt string) (models.Identity, error) {
	token := r.Header.Get("X-Identity-Token")
	if token == "" {
		return "", auth.ErrInvalidIdentityToken
	}
	return auth.VerifyIdentityToken(token, salt)
}

// engineErrorStatus maps engine errors to HTTP status codes: input
// validation to 400, missing records to 404, authorization to 403, and
// uniqueness/window/lifecycle conflicts to 409.
func engineErrorStatus(err error) int {
	switch {
	case errors.Is(err, voting.ErrInvalidNumberOfChoices),
		errors.Is(err, voting.ErrDateNotConform),
		errors.Is(err, voting.ErrValueTooLong),
		errors.Is(err, voting.ErrDuplicateChoice):
		return http.StatusBadRequest
	case errors.Is(err, voting.ErrProposalNotFound),
		errors.Is(err, voting.ErrVoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, voting.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, voting.ErrDuplicateProposal),
		errors.Is(err, voting.ErrDuplicateVote),
		errors.Is(err, voting.ErrVoteNotOpen),
		errors.Is(err, voting.ErrVoteClosed),
		errors.Is(err, voting.ErrInvalidChoice),
		errors.Is(err, voting.ErrVoteNotEnded),
		errors.Is(err, voting.ErrTooRecentToDelete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondEngineError writes the HTTP mapping of an engine error.
func respondEngineError(w http.ResponseWriter, err error) {
	status := engineErrorStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("engine operation failed", "error", err)
		middleware.ErrorResponse(w, status, "Internal error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}
