// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/handlers"
	"github.com/danielhkuo/canvass/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(db, cfg)
	assistantHandler := handlers.NewAssistantHandler(db, cfg)
	progressHandler := handlers.NewProgressHandler(db, cfg)
	duplicateHandler := handlers.NewDuplicateHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Field operations (public)
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.SubmitVoter))
	mux.HandleFunc("POST /assistants", middleware.WithLogging(assistantHandler.CreateAssistant))

	// Dashboards
	mux.HandleFunc("GET /party-progress", middleware.WithLogging(progressHandler.GetPartyProgress))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(progressHandler.ListCandidates))
	mux.HandleFunc("GET /candidate/{id}", middleware.WithLogging(progressHandler.GetCandidate))
	mux.HandleFunc("GET /district-distribution", middleware.WithLogging(progressHandler.GetDistrictDistribution))
	mux.HandleFunc("GET /weekly-growth", middleware.WithLogging(progressHandler.GetWeeklyGrowth))
	mux.HandleFunc("GET /fuzzy-duplicates", middleware.WithLogging(duplicateHandler.ListFuzzyDuplicates))

	// Admin operations
	mux.HandleFunc("GET /admin/party", middleware.WithLogging(adminHandler.GetParty))
	mux.HandleFunc("PUT /admin/party", middleware.WithLogging(adminHandler.UpdateParty))

	mux.HandleFunc("GET /admin/governorates", middleware.WithLogging(adminHandler.ListGovernorates))
	mux.HandleFunc("POST /admin/governorates", middleware.WithLogging(adminHandler.CreateGovernorate))
	mux.HandleFunc("PUT /admin/governorates/{id}", middleware.WithLogging(adminHandler.UpdateGovernorate))
	mux.HandleFunc("DELETE /admin/governorates/{id}", middleware.WithLogging(adminHandler.DeleteGovernorate))

	mux.HandleFunc("GET /admin/districts", middleware.WithLogging(adminHandler.ListDistricts))
	mux.HandleFunc("POST /admin/districts", middleware.WithLogging(adminHandler.CreateDistrict))
	mux.HandleFunc("PUT /admin/districts/{id}", middleware.WithLogging(adminHandler.UpdateDistrict))
	mux.HandleFunc("DELETE /admin/districts/{id}", middleware.WithLogging(adminHandler.DeleteDistrict))

	mux.HandleFunc("GET /admin/candidates", middleware.WithLogging(adminHandler.ListCandidates))
	mux.HandleFunc("POST /admin/candidates", middleware.WithLogging(adminHandler.CreateCandidate))
	mux.HandleFunc("PUT /admin/candidates/{id}", middleware.WithLogging(adminHandler.UpdateCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{id}", middleware.WithLogging(adminHandler.DeleteCandidate))

	mux.HandleFunc("PUT /admin/voters/{id}", middleware.WithLogging(voterHandler.UpdateVoter))
	mux.HandleFunc("DELETE /admin/voters/{id}", middleware.WithLogging(voterHandler.DeleteVoter))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("canvass API v1"))
	})

	return mux
}
