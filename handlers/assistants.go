// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/ident"
	"github.com/danielhkuo/canvass/middleware"
	"github.com/danielhkuo/canvass/models"
)

type AssistantHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAssistantHandler(db *sql.DB, cfg cliparse.Config) *AssistantHandler {
	return &AssistantHandler{db: db, cfg: cfg}
}

// CreateAssistant handles POST /assistants
// Returns the assistant id and, when a base URL is configured, a join
// link carrying the aid short-link token for voter submissions.
func (h *AssistantHandler) CreateAssistant(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssistantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
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

	assistantID, err := ident.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate assistant ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create assistant")
		return
	}
	linkToken := ident.GenerateLinkToken()

	_, err = h.db.Exec(`
		INSERT INTO assistant (id, candidate_id, name, phone, area_tags, link_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, assistantID, req.CandidateID, req.Name, req.Phone, req.AreaTags, linkToken, time.Now())

	if err != nil {
		slog.Error("failed to insert assistant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create assistant")
		return
	}

	slog.Info("assistant created", "assistant_id", assistantID, "candidate_id", req.CandidateID)

	link := ""
	if h.cfg.BaseURL != "" {
		link = h.cfg.BaseURL + "/?aid=" + linkToken
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAssistantResponse{
		OK:   true,
		ID:   assistantID,
		Link: link,
	})
}

// listAssistants returns all assistants of a candidate, newest first.
func listAssistants(db *sql.DB, candidateID string) ([]models.Assistant, error) {
	rows, err := db.Query(`
		SELECT id, candidate_id, name, phone, area_tags, created_at
		FROM assistant
		WHERE candidate_id = $1
		ORDER BY created_at DESC, id
	`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Assistant{}
	for rows.Next() {
		var a models.Assistant
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.Name, &a.Phone, &a.AreaTags, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}

	return list, rows.Err()
}
