// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/middleware"
	"github.com/danielhkuo/canvass/models"
)

// recentVotersLimit caps the voter list in the candidate view.
const recentVotersLimit = 50

type ProgressHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewProgressHandler(db *sql.DB, cfg cliparse.Config) *ProgressHandler {
	return &ProgressHandler{db: db, cfg: cfg}
}

// GetPartyProgress handles GET /party-progress
func (h *ProgressHandler) GetPartyProgress(w http.ResponseWriter, r *http.Request) {
	threshold, supporters, err := getPartyProgress(h.db)
	if err != nil {
		slog.Error("failed to compute party progress", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PartyProgressResponse{
		OK:         true,
		Threshold:  threshold,
		Supporters: supporters,
	})
}

// ListCandidates handles GET /candidates
func (h *ProgressHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	list, err := listCandidateProgress(h.db)
	if err != nil {
		slog.Error("failed to list candidate progress", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		OK:         true,
		Candidates: list,
	})
}

// GetCandidate handles GET /candidate/{id}
// Assembles the full candidate view: profile, assistants, district
// split, weekly growth, and recent voters. The sub-queries run without
// a shared snapshot; under concurrent writes the parts may reflect
// slightly different instants, which is acceptable for a dashboard.
func (h *ProgressHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	candidate, err := getCandidateProgress(h.db, candidateID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	assistants, err := listAssistants(h.db, candidateID)
	if err != nil {
		slog.Error("failed to list assistants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	byDistrict, err := districtDistribution(h.db, candidateID)
	if err != nil {
		slog.Error("failed to compute district distribution", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	weekly, err := weeklyGrowth(h.db, h.cfg.DatabaseType, candidateID)
	if err != nil {
		slog.Error("failed to compute weekly growth", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voters, err := listRecentVoters(h.db, candidateID, recentVotersLimit)
	if err != nil {
		slog.Error("failed to list recent voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateViewResponse{
		OK:         true,
		Candidate:  candidate,
		Assistants: assistants,
		ByDistrict: byDistrict,
		Weekly:     weekly,
		Voters:     voters,
	})
}

// GetDistrictDistribution handles GET /district-distribution
// Optional ?candidate_id= scopes counts to one candidate.
func (h *ProgressHandler) GetDistrictDistribution(w http.ResponseWriter, r *http.Request) {
	rows, err := districtDistribution(h.db, r.URL.Query().Get("candidate_id"))
	if err != nil {
		slog.Error("failed to compute district distribution", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DistrictDistributionResponse{
		OK:   true,
		Rows: rows,
	})
}

// GetWeeklyGrowth handles GET /weekly-growth
// Optional ?candidate_id= scopes counts to one candidate.
func (h *ProgressHandler) GetWeeklyGrowth(w http.ResponseWriter, r *http.Request) {
	rows, err := weeklyGrowth(h.db, h.cfg.DatabaseType, r.URL.Query().Get("candidate_id"))
	if err != nil {
		slog.Error("failed to compute weekly growth", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WeeklyGrowthResponse{
		OK:   true,
		Rows: rows,
	})
}

// listRecentVoters returns a candidate's voters, newest first.
func listRecentVoters(db *sql.DB, candidateID string, limit int) ([]models.Voter, error) {
	rows, err := db.Query(`
		SELECT id, candidate_id, assistant_id, full_name, dob, district_id, polling_center, electoral_card, created_at
		FROM voter
		WHERE candidate_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, candidateID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		var assistantID, dob, districtID sql.NullString
		if err := rows.Scan(&v.ID, &v.CandidateID, &assistantID, &v.FullName,
			&dob, &districtID, &v.PollingCenter, &v.ElectoralCard, &v.CreatedAt); err != nil {
			return nil, err
		}
		if assistantID.Valid {
			v.AssistantID = &assistantID.String
		}
		if dob.Valid {
			v.DOB = &dob.String
		}
		if districtID.Valid {
			v.DistrictID = &districtID.String
		}
		list = append(list, v)
	}

	return list, rows.Err()
}
