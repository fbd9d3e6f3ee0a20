// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/ident"
	"github.com/danielhkuo/canvass/middleware"
	"github.com/danielhkuo/canvass/models"
)

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// SubmitVoter handles POST /voters
// A resubmitted electoral card is not an error: two assistants
// canvassing the same person is an expected event, so the response is
// {ok:true, duplicate:true} and no row is written.
func (h *VoterHandler) SubmitVoter(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}
	if req.FullName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "full_name is required")
		return
	}

	// Check candidate exists
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidate WHERE id = $1)
	`, req.CandidateID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	// The aid short-link parameter may arrive in the body or the query
	// string. An explicit assistant_id always wins over it.
	aid := req.Aid
	if aid == "" {
		aid = r.URL.Query().Get("aid")
	}
	assistantID := req.AssistantID
	if assistantID == "" && aid != "" {
		// Resolve link token to its assistant. An unknown token is
		// non-fatal: the voter is recorded without an assistant link.
		err := h.db.QueryRow(`
			SELECT id FROM assistant WHERE link_token = $1
		`, aid).Scan(&assistantID)
		if err == sql.ErrNoRows {
			slog.Warn("unknown assistant link token", "aid", aid)
			assistantID = ""
		} else if err != nil {
			slog.Error("failed to resolve assistant link", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	// Duplicate policy: a non-empty electoral card that already exists
	// is a soft duplicate, not an error.
	card := strings.TrimSpace(req.ElectoralCard)
	if card != "" {
		var dup bool
		err := h.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM voter WHERE electoral_card = $1)
		`, card).Scan(&dup)
		if err != nil {
			slog.Error("failed to check electoral card", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if dup {
			slog.Info("duplicate electoral card", "candidate_id", req.CandidateID)
			middleware.JSONResponse(w, http.StatusOK, models.SubmitVoterResponse{
				OK:        true,
				Duplicate: true,
			})
			return
		}
	}

	voterID, err := ident.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate voter ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record voter")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO voter (id, candidate_id, assistant_id, full_name, dob, district_id, polling_center, electoral_card, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, voterID, req.CandidateID, nullable(assistantID), req.FullName,
		nullable(req.DOB), nullable(req.DistrictID), req.PollingCenter, card, time.Now())

	if err != nil {
		// The existence check above races with concurrent submissions of
		// the same card; the partial unique index closes the gap and the
		// violation is reported as the same duplicate outcome.
		if isUniqueViolation(err) {
			slog.Info("duplicate electoral card (insert race)", "candidate_id", req.CandidateID)
			middleware.JSONResponse(w, http.StatusOK, models.SubmitVoterResponse{
				OK:        true,
				Duplicate: true,
			})
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record voter")
		return
	}

	slog.Info("voter recorded", "voter_id", voterID, "candidate_id", req.CandidateID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoterResponse{
		OK: true,
		ID: voterID,
	})
}

// UpdateVoter handles PUT /admin/voters/{id}
// Absent fields (JSON null / missing) are left unchanged.
func (h *VoterHandler) UpdateVoter(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter id is required")
		return
	}

	var req models.UpdateVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = "+placeholder(len(args)))
	}

	if req.CandidateID != nil {
		add("candidate_id", *req.CandidateID)
	}
	if req.AssistantID != nil {
		add("assistant_id", nullable(*req.AssistantID))
	}
	if req.FullName != nil {
		if *req.FullName == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "full_name cannot be empty")
			return
		}
		add("full_name", *req.FullName)
	}
	if req.DOB != nil {
		add("dob", nullable(*req.DOB))
	}
	if req.DistrictID != nil {
		add("district_id", nullable(*req.DistrictID))
	}
	if req.PollingCenter != nil {
		add("polling_center", *req.PollingCenter)
	}
	if req.ElectoralCard != nil {
		add("electoral_card", strings.TrimSpace(*req.ElectoralCard))
	}

	if len(sets) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no fields to update")
		return
	}

	args = append(args, voterID)
	query := "UPDATE voter SET " + strings.Join(sets, ", ") + " WHERE id = " + placeholder(len(args))

	res, err := h.db.Exec(query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "electoral card already exists")
			return
		}
		slog.Error("failed to update voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update voter")
		return
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}

	slog.Info("voter updated", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, models.UpdatedResponse{OK: true, Updated: true})
}

// DeleteVoter handles DELETE /admin/voters/{id}
func (h *VoterHandler) DeleteVoter(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM voter WHERE id = $1`, voterID)
	if err != nil {
		slog.Error("failed to delete voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete voter")
		return
	}

	n, _ := res.RowsAffected()

	slog.Info("voter deleted", "voter_id", voterID, "existed", n > 0)

	middleware.JSONResponse(w, http.StatusOK, models.DeletedResponse{OK: true, Deleted: n > 0})
}

// nullable maps an empty string to SQL NULL
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isUniqueViolation reports whether err is a uniqueness-constraint
// error from either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // modernc.org/sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // lib/pq
}
