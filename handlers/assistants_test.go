// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/canvass/models"
	"github.com/danielhkuo/canvass/testutil"
)

func TestCreateAssistant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAssistantHandler(db, cfg)

	candidateID := testutil.CreateTestCandidate(t, db, "Layla Hasan", 100, "")

	req := testutil.MakeRequest("POST", "/assistants", models.CreateAssistantRequest{
		CandidateID: candidateID,
		Name:        "Huda Salim",
		Phone:       "07700000000",
		AreaTags:    "north,market",
	}, nil)
	w := httptest.NewRecorder()

	handler.CreateAssistant(w, req)

	testutil.AssertStatus(t, w, 201)

	var resp models.CreateAssistantResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK {
		t.Error("Expected ok=true")
	}
	if resp.ID == "" {
		t.Error("Expected an assistant id")
	}
	if !strings.HasPrefix(resp.Link, cfg.BaseURL+"/?aid=") {
		t.Errorf("Expected join link under %s, got %q", cfg.BaseURL, resp.Link)
	}

	// The link token resolves back to the assistant
	token := strings.TrimPrefix(resp.Link, cfg.BaseURL+"/?aid=")
	var gotID string
	if err := db.QueryRow(`SELECT id FROM assistant WHERE link_token = $1`, token).Scan(&gotID); err != nil {
		t.Fatalf("Failed to resolve link token: %v", err)
	}
	if gotID != resp.ID {
		t.Errorf("Link token resolves to %s, expected %s", gotID, resp.ID)
	}
}

func TestCreateAssistantNoBaseURL(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.BaseURL = ""
	handler := NewAssistantHandler(db, cfg)

	candidateID := testutil.CreateTestCandidate(t, db, "Layla Hasan", 100, "")

	req := testutil.MakeRequest("POST", "/assistants", models.CreateAssistantRequest{
		CandidateID: candidateID,
		Name:        "Huda Salim",
	}, nil)
	w := httptest.NewRecorder()

	handler.CreateAssistant(w, req)

	testutil.AssertStatus(t, w, 201)

	var resp models.CreateAssistantResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Link != "" {
		t.Errorf("Expected empty link without a base URL, got %q", resp.Link)
	}
}

func TestCreateAssistantValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAssistantHandler(db, cfg)

	candidateID := testutil.CreateTestCandidate(t, db, "Layla Hasan", 100, "")

	testCases := []struct {
		name           string
		body           models.CreateAssistantRequest
		expectedStatus int
	}{
		{"missing candidate_id", models.CreateAssistantRequest{Name: "Huda Salim"}, 400},
		{"missing name", models.CreateAssistantRequest{CandidateID: candidateID}, 400},
		{"unknown candidate", models.CreateAssistantRequest{CandidateID: "no-such-id", Name: "Huda Salim"}, 404},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/assistants", tc.body, nil)
			w := httptest.NewRecorder()

			handler.CreateAssistant(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}
