// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Request Logging

WithLogging wraps handlers with structured slog output, tagging the
start and completion lines of each request with a generated request ID:

	mux.HandleFunc("POST /proposals", middleware.WithLogging(handler.CreateProposal))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
	err := middleware.ParseJSONBody(r, &req)

# CORS

CORS allows cross-origin requests and answers OPTIONS preflights. The
X-Identity-Token header is allowed so browser clients can authenticate.
*/
package middleware
