// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/ident"
	"github.com/danielhkuo/canvass/middleware"
	"github.com/danielhkuo/canvass/models"
)

// AdminHandler covers CRUD on the reference entities the aggregation
// queries group by: party config, governorates, districts, candidates.
// The authentication layer in front of these routes is an external
// precondition; handlers assume the caller is authorized.
type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// Party

// GetParty handles GET /admin/party
func (h *AdminHandler) GetParty(w http.ResponseWriter, r *http.Request) {
	var p models.Party
	var startDate, endDate sql.NullString
	err := h.db.QueryRow(`
		SELECT id, name, threshold, start_date, end_date FROM party WHERE id = $1
	`, models.PartyID).Scan(&p.ID, &p.Name, &p.Threshold, &startDate, &endDate)

	if err == sql.ErrNoRows {
		// Seeded at boot; missing row means the store is broken.
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Party row missing")
		return
	}
	if err != nil {
		slog.Error("failed to query party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if startDate.Valid {
		p.StartDate = &startDate.String
	}
	if endDate.Valid {
		p.EndDate = &endDate.String
	}

	middleware.JSONResponse(w, http.StatusOK, models.PartyResponse{OK: true, Party: p})
}

// UpdateParty handles PUT /admin/party
// Single-row upsert keyed by the fixed id. Absent fields are left
// unchanged; threshold is coerced to a non-negative integer.
func (h *AdminHandler) UpdateParty(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePartyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Load current values so the upsert can carry unchanged fields.
	name := ""
	threshold := 0
	var startDate, endDate sql.NullString
	err := h.db.QueryRow(`
		SELECT name, threshold, start_date, end_date FROM party WHERE id = $1
	`, models.PartyID).Scan(&name, &threshold, &startDate, &endDate)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Name != nil {
		name = *req.Name
	}
	if req.Threshold != nil {
		threshold = clampNonNegative(*req.Threshold)
	}
	if req.StartDate != nil {
		startDate = nullable(*req.StartDate)
	}
	if req.EndDate != nil {
		endDate = nullable(*req.EndDate)
	}

	_, err = h.db.Exec(`
		INSERT INTO party (id, name, threshold, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			threshold = EXCLUDED.threshold,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date
	`, models.PartyID, name, threshold, startDate, endDate)

	if err != nil {
		slog.Error("failed to upsert party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update party")
		return
	}

	slog.Info("party updated", "threshold", threshold)

	middleware.JSONResponse(w, http.StatusOK, models.UpdatedResponse{OK: true, Updated: true})
}

// Governorates

// ListGovernorates handles GET /admin/governorates
func (h *AdminHandler) ListGovernorates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT id, name FROM governorate ORDER BY name, id`)
	if err != nil {
		slog.Error("failed to query governorates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	list := []models.Governorate{}
	for rows.Next() {
		var g models.Governorate
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			slog.Error("failed to scan governorate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		list = append(list, g)
	}

	middleware.JSONResponse(w, http.StatusOK, models.GovernoratesResponse{OK: true, Rows: list})
}

// CreateGovernorate handles POST /admin/governorates
func (h *AdminHandler) CreateGovernorate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGovernorateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := ident.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate governorate ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create governorate")
		return
	}

	_, err = h.db.Exec(`INSERT INTO governorate (id, name) VALUES ($1, $2)`, id, req.Name)
	if err != nil {
		slog.Error("failed to insert governorate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create governorate")
		return
	}

	slog.Info("governorate created", "governorate_id", id)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{OK: true, ID: id})
}

// UpdateGovernorate handles PUT /admin/governorates/{id}
func (h *AdminHandler) UpdateGovernorate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.UpdateGovernorateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == nil || *req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	res, err := h.db.Exec(`UPDATE governorate SET name = $1 WHERE id = $2`, *req.Name, id)
	if err != nil {
		slog.Error("failed to update governorate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update governorate")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Governorate not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UpdatedResponse{OK: true, Updated: true})
}

// DeleteGovernorate handles DELETE /admin/governorates/{id}
// Hard delete; districts referencing it keep their dangling id.
func (h *AdminHandler) DeleteGovernorate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	res, err := h.db.Exec(`DELETE FROM governorate WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete governorate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete governorate")
		return
	}

	n, _ := res.RowsAffected()
	middleware.JSONResponse(w, http.StatusOK, models.DeletedResponse{OK: true, Deleted: n > 0})
}

// Districts

// ListDistricts handles GET /admin/districts
func (h *AdminHandler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT d.id, d.name, d.official_voters, d.governorate_id, COALESCE(g.name, '')
		FROM district d
		LEFT JOIN governorate g ON d.governorate_id = g.id
		ORDER BY d.name, d.id
	`)
	if err != nil {
		slog.Error("failed to query districts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	list := []models.District{}
	for rows.Next() {
		var d models.District
		var govID sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &d.OfficialVoters, &govID, &d.Governorate); err != nil {
			slog.Error("failed to scan district", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if govID.Valid {
			d.GovernorateID = &govID.String
		}
		list = append(list, d)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DistrictsResponse{OK: true, Rows: list})
}

// CreateDistrict handles POST /admin/districts
func (h *AdminHandler) CreateDistrict(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDistrictRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := ident.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate district ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create district")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO district (id, name, official_voters, governorate_id)
		VALUES ($1, $2, $3, $4)
	`, id, req.Name, clampNonNegative(req.OfficialVoters), nullable(req.GovernorateID))
	if err != nil {
		slog.Error("failed to insert district", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create district")
		return
	}

	slog.Info("district created", "district_id", id)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{OK: true, ID: id})
}

// UpdateDistrict handles PUT /admin/districts/{id}
// Absent fields are left unchanged.
func (h *AdminHandler) UpdateDistrict(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.UpdateDistrictRequest
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

	if req.Name != nil {
		if *req.Name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		add("name", *req.Name)
	}
	if req.OfficialVoters != nil {
		add("official_voters", clampNonNegative(*req.OfficialVoters))
	}
	if req.GovernorateID != nil {
		add("governorate_id", nullable(*req.GovernorateID))
	}

	if len(sets) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no fields to update")
		return
	}

	args = append(args, id)
	query := "UPDATE district SET " + strings.Join(sets, ", ") + " WHERE id = " + placeholder(len(args))

	res, err := h.db.Exec(query, args...)
	if err != nil {
		slog.Error("failed to update district", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update district")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "District not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UpdatedResponse{OK: true, Updated: true})
}

// DeleteDistrict handles DELETE /admin/districts/{id}
// Hard delete, no cascade: candidates and voters referencing the
// district keep a dangling id and show an empty district label in
// aggregation output.
func (h *AdminHandler) DeleteDistrict(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	res, err := h.db.Exec(`DELETE FROM district WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete district", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete district")
		return
	}

	n, _ := res.RowsAffected()
	middleware.JSONResponse(w, http.StatusOK, models.DeletedResponse{OK: true, Deleted: n > 0})
}

// Candidates

// ListCandidates handles GET /admin/candidates (raw rows; the public
// /candidates endpoint serves the aggregated progress list)
func (h *AdminHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT id, name, target, district_id FROM candidate ORDER BY name, id`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	list := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var districtID sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Target, &districtID); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if districtID.Valid {
			c.DistrictID = &districtID.String
		}
		list = append(list, c)
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateRowsResponse{OK: true, Rows: list})
}

// CreateCandidate handles POST /admin/candidates
func (h *AdminHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := ident.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate candidate ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO candidate (id, name, target, district_id)
		VALUES ($1, $2, $3, $4)
	`, id, req.Name, clampNonNegative(req.Target), nullable(req.DistrictID))
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", id)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{OK: true, ID: id})
}

// UpdateCandidate handles PUT /admin/candidates/{id}
// Absent fields are left unchanged.
func (h *AdminHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req models.UpdateCandidateRequest
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

	if req.Name != nil {
		if *req.Name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		add("name", *req.Name)
	}
	if req.Target != nil {
		add("target", clampNonNegative(*req.Target))
	}
	if req.DistrictID != nil {
		add("district_id", nullable(*req.DistrictID))
	}

	if len(sets) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no fields to update")
		return
	}

	args = append(args, id)
	query := "UPDATE candidate SET " + strings.Join(sets, ", ") + " WHERE id = " + placeholder(len(args))

	res, err := h.db.Exec(query, args...)
	if err != nil {
		slog.Error("failed to update candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UpdatedResponse{OK: true, Updated: true})
}

// DeleteCandidate handles DELETE /admin/candidates/{id}
// Hard delete, no cascade: the candidate's voters and assistants stay
// behind as orphans.
func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	res, err := h.db.Exec(`DELETE FROM candidate WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	n, _ := res.RowsAffected()
	middleware.JSONResponse(w, http.StatusOK, models.DeletedResponse{OK: true, Deleted: n > 0})
}

// placeholder returns the n-th SQL placeholder ($1, $2, ...)
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// clampNonNegative coerces numeric admin input to a non-negative
// integer; invalid (negative) input defaults to 0.
func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
