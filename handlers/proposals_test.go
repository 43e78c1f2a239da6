// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/one-ballot/models"
	"github.com/danielhkuo/one-ballot/testutil"
	"github.com/danielhkuo/one-ballot/voting"
)

func TestCreateProposalHandler(t *testing.T) {
	cfg := testutil.GetTestConfig()

	testCases := []struct {
		name           string
		body           interface{}
		withToken      bool
		expectedStatus int
	}{
		{
			name: "valid proposal",
			body: models.CreateProposalRequest{
				Title:     "Budget 2026",
				Choices:   []string{"Approve", "Reject"},
				DateStart: 100,
				DateEnd:   200,
			},
			withToken:      true,
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing token",
			body: models.CreateProposalRequest{
				Title:   "Budget 2026",
				Choices: []string{"Approve", "Reject"},
				DateEnd: 200,
			},
			withToken:      false,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing title",
			body:           models.CreateProposalRequest{Choices: []string{"A", "B"}, DateEnd: 200},
			withToken:      true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "too few choices",
			body: models.CreateProposalRequest{
				Title:   "Solo",
				Choices: []string{"Only"},
				DateEnd: 200,
			},
			withToken:      true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "too many choices",
			body: models.CreateProposalRequest{
				Title:   "Crowded",
				Choices: []string{"A", "B", "C", "D", "E", "F"},
				DateEnd: 200,
			},
			withToken:      true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "start after end",
			body: models.CreateProposalRequest{
				Title:     "Backwards",
				Choices:   []string{"A", "B"},
				DateStart: 300,
				DateEnd:   200,
			},
			withToken:      true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "title too long",
			body: models.CreateProposalRequest{
				Title:   strings.Repeat("x", models.MaxStringBytes+1),
				Choices: []string{"A", "B"},
				DateEnd: 200,
			},
			withToken:      true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate choice names",
			body: models.CreateProposalRequest{
				Title:   "Twins",
				Choices: []string{"A", "A"},
				DateEnd: 200,
			},
			withToken:      true,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine, _ := testutil.NewTestEngine(t, 0)
			handler := NewProposalHandler(engine, cfg)

			headers := map[string]string{}
			if tc.withToken {
				_, token := testutil.IssueTestIdentity(t, cfg)
				headers["X-Identity-Token"] = token
			}

			req := testutil.MakeRequest("POST", "/proposals", tc.body, headers)
			w := httptest.NewRecorder()

			handler.CreateProposal(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedStatus == http.StatusCreated {
				var resp models.CreateProposalResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Address == "" {
					t.Error("Expected a derived address in the response")
				}
			}
		})
	}
}

func TestCreateProposalDuplicateTitleHandler(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, _ := testutil.NewTestEngine(t, 0)
	handler := NewProposalHandler(engine, cfg)

	_, token := testutil.IssueTestIdentity(t, cfg)
	headers := map[string]string{"X-Identity-Token": token}
	body := models.CreateProposalRequest{
		Title:   "Unique title",
		Choices: []string{"A", "B"},
		DateEnd: 200,
	}

	w := httptest.NewRecorder()
	handler.CreateProposal(w, testutil.MakeRequest("POST", "/proposals", body, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Same title again, even from a different identity: the derived
	// address is occupied.
	_, otherToken := testutil.IssueTestIdentity(t, cfg)
	w = httptest.NewRecorder()
	handler.CreateProposal(w, testutil.MakeRequest("POST", "/proposals", body,
		map[string]string{"X-Identity-Token": otherToken}))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestListProposalsHandler(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, _ := testutil.NewTestEngine(t, 150)
	handler := NewProposalHandler(engine, cfg)

	id, _ := testutil.IssueTestIdentity(t, cfg)
	testutil.CreateTestProposal(t, engine, id, "Open one", []string{"A", "B"}, 100, 200)
	testutil.CreateTestProposal(t, engine, id, "Pending one", []string{"A", "B"}, 300, 400)

	req := testutil.MakeRequest("GET", "/proposals", nil, nil)
	w := httptest.NewRecorder()

	handler.ListProposals(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var summaries []models.ProposalSummary
	testutil.AssertJSON(t, w, &summaries)

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}
	statuses := map[string]string{}
	for _, s := range summaries {
		statuses[s.Title] = s.Status
		if s.Address == "" {
			t.Errorf("Summary for %q missing address", s.Title)
		}
	}
	if statuses["Open one"] != models.StatusOpen {
		t.Errorf("Expected open, got %q", statuses["Open one"])
	}
	if statuses["Pending one"] != models.StatusPending {
		t.Errorf("Expected pending, got %q", statuses["Pending one"])
	}
}

func TestGetProposalHandler(t *testing.T) {
	cfg := testutil.GetTestConfig()
	engine, _ := testutil.NewTestEngine(t, 150)
	handler := NewProposalHandler(engine, cfg)

	id, _ := testutil.IssueTestIdentity(t, cfg)
	a := testutil.CreateTestProposal(t, engine, id, "Budget 2026", []string{"A", "B"}, 100, 200)

	t.Run("existing proposal", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/proposals/"+a.String(), nil, nil)
		req.SetPathValue("address", a.String())
		w := httptest.NewRecorder()

		handler.GetProposal(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var detail models.ProposalDetail
		testutil.AssertJSON(t, w, &detail)
		if detail.Title != "Budget 2026" {
			t.Errorf("Expected title 'Budget 2026', got %q", detail.Title)
		}
		if detail.Status != models.StatusOpen {
			t.Errorf("Expected open status, got %q", detail.Status)
		}
		if detail.Address != a.String() {
			t.Errorf("Expected address %s, got %s", a, detail.Address)
		}
	})

	t.Run("invalid address", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/proposals/not-hex", nil, nil)
		req.SetPathValue("address", "not-hex")
		w := httptest.NewRecorder()

		handler.GetProposal(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown address", func(t *testing.T) {
		missing := strings.Repeat("ab", 32)
		req := testutil.MakeRequest("GET", "/proposals/"+missing, nil, nil)
		req.SetPathValue("address", missing)
		w := httptest.NewRecorder()

		handler.GetProposal(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteProposalHandler(t *testing.T) {
	cfg := testutil.GetTestConfig()

	setup := func(t *testing.T, now uint64) (*ProposalHandler, string, string) {
		engine, clk := testutil.NewTestEngine(t, 0)
		handler := NewProposalHandler(engine, cfg)
		id, token := testutil.IssueTestIdentity(t, cfg)
		a := testutil.CreateTestProposal(t, engine, id, "Doomed", []string{"A", "B"}, 100, 200)
		clk.Set(now)
		return handler, a.String(), token
	}

	deleteReq := func(handler *ProposalHandler, address, token string) *httptest.ResponseRecorder {
		headers := map[string]string{}
		if token != "" {
			headers["X-Identity-Token"] = token
		}
		req := testutil.MakeRequest("DELETE", "/proposals/"+address, nil, headers)
		req.SetPathValue("address", address)
		w := httptest.NewRecorder()
		handler.DeleteProposal(w, req)
		return w
	}

	t.Run("missing token", func(t *testing.T) {
		handler, address, _ := setup(t, 200+voting.ThirtyDays)
		w := deleteReq(handler, address, "")
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("non-creator", func(t *testing.T) {
		handler, address, _ := setup(t, 200+voting.ThirtyDays)
		_, otherToken := testutil.IssueTestIdentity(t, cfg)
		w := deleteReq(handler, address, otherToken)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("vote still running", func(t *testing.T) {
		handler, address, token := setup(t, 150)
		w := deleteReq(handler, address, token)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("grace period not over", func(t *testing.T) {
		handler, address, token := setup(t, 200+voting.ThirtyDays-1)
		w := deleteReq(handler, address, token)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("creator after grace period", func(t *testing.T) {
		handler, address, token := setup(t, 200+voting.ThirtyDays)
		w := deleteReq(handler, address, token)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.DeleteProposalResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.RefundBytes <= 0 {
			t.Errorf("Expected a positive refund, got %+v", resp)
		}

		// Deleting again: the record is gone
		w = deleteReq(handler, address, token)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
