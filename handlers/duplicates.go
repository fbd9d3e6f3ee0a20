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

type DuplicateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDuplicateHandler(db *sql.DB, cfg cliparse.Config) *DuplicateHandler {
	return &DuplicateHandler{db: db, cfg: cfg}
}

// ListFuzzyDuplicates handles GET /fuzzy-duplicates
// Reports groups of voters sharing an exact (full_name, dob) pair
// across candidates, for manual reconciliation. Nothing is merged or
// deleted here.
func (h *DuplicateHandler) ListFuzzyDuplicates(w http.ResponseWriter, r *http.Request) {
	rows, err := listFuzzyDuplicates(h.db)
	if err != nil {
		slog.Error("failed to scan for near-duplicates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FuzzyDuplicatesResponse{
		OK:   true,
		Rows: rows,
	})
}
