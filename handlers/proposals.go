// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/one-ballot/addr"
	"github.com/danielhkuo/one-ballot/cliparse"
	"github.com/danielhkuo/one-ballot/metrics"
	"github.com/danielhkuo/one-ballot/middleware"
	"github.com/danielhkuo/one-ballot/models"
	"github.com/danielhkuo/one-ballot/voting"
)

type ProposalHandler struct {
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewProposalHandler(engine *voting.Engine, cfg cliparse.Config) *ProposalHandler {
	return &ProposalHandler{engine: engine, cfg: cfg}
}

// CreateProposal handles POST /proposals
func (h *ProposalHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	creator, err := callerIdentity(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid X-Identity-Token header required")
		return
	}

	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	a, err := h.engine.CreateProposal(creator, req.Title, req.Description, req.Choices, req.DateStart, req.DateEnd)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	metrics.ProposalsCreated.Inc()
	slog.Info("proposal created",
		"address", a,
		"title", req.Title,
		"creator", creator,
		"choices", len(req.Choices),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProposalResponse{
		Address: a.String(),
	})
}

// ListProposals handles GET /proposals
func (h *ProposalHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.engine.Proposals()
	if err != nil {
		slog.Error("failed to list proposals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list proposals")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetProposal handles GET /proposals/{address}
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	a, err := addr.Parse(r.PathValue("address"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid proposal address")
		return
	}

	p, err := h.engine.Proposal(a)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalDetail{
		Address:  a.String(),
		Status:   p.Status(h.engine.Now()),
		Proposal: *p,
	})
}

// DeleteProposal handles DELETE /proposals/{address}
func (h *ProposalHandler) DeleteProposal(w http.ResponseWriter, r *http.Request) {
	signer, err := callerIdentity(r, h.cfg.IdentitySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Valid X-Identity-Token header required")
		return
	}

	a, err := addr.Parse(r.PathValue("address"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid proposal address")
		return
	}

	refund, err := h.engine.DeleteProposal(signer, a)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	metrics.ProposalsDeleted.Inc()
	metrics.StorageReclaimed.Add(float64(refund.Bytes))
	slog.Info("proposal deleted",
		"address", a,
		"signer", signer,
		"reclaimed", humanize.Bytes(uint64(refund.Bytes)),
	)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteProposalResponse{
		RefundTo:    string(refund.Recipient),
		RefundBytes: refund.Bytes,
		Message:     "Proposal deleted, storage refunded",
	})
}
