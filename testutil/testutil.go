// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/one-ballot/addr"
	"github.com/danielhkuo/one-ballot/auth"
	"github.com/danielhkuo/one-ballot/cliparse"
	"github.com/danielhkuo/one-ballot/clock"
	"github.com/danielhkuo/one-ballot/models"
	"github.com/danielhkuo/one-ballot/store"
	"github.com/danielhkuo/one-ballot/voting"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		StoreBackend: "memory",
		IdentitySalt: "test-identity-salt",
	}
}

// NewTestEngine creates an engine over a fresh in-memory store and a
// fixed clock pinned to startTime.
func NewTestEngine(t *testing.T, startTime uint64) (*voting.Engine, *clock.Fixed) {
	t.Helper()

	clk := clock.NewFixed(startTime)
	return voting.NewEngine(store.NewMemory(), clk), clk
}

// IssueTestIdentity creates an identity and its token under the test salt
func IssueTestIdentity(t *testing.T, cfg cliparse.Config) (models.Identity, string) {
	t.Helper()

	id, token, err := auth.IssueIdentity(cfg.IdentitySalt)
	if err != nil {
		t.Fatalf("Failed to issue test identity: %v", err)
	}
	return id, token
}

// CreateTestProposal creates a proposal through the engine and returns
// its address
func CreateTestProposal(
	t *testing.T,
	engine *voting.Engine,
	creator models.Identity,
	title string,
	choices []string,
	dateStart, dateEnd uint64,
) addr.Address {
	t.Helper()

	a, err := engine.CreateProposal(creator, title, "A test proposal", choices, dateStart, dateEnd)
	if err != nil {
		t.Fatalf("Failed to create test proposal: %v", err)
	}
	return a
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
