// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Canvass API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Field operations (public):

	POST /voters     - Record a supporting voter
	POST /assistants - Create an assistant and join link

Dashboards:

	GET /party-progress        - Supporters vs party threshold
	GET /candidates            - Candidate progress list
	GET /candidate/{id}        - Full candidate view
	GET /district-distribution - Supporters per district
	GET /weekly-growth         - Supporters per year-week
	GET /fuzzy-duplicates      - Name+dob duplicate groups

Admin:

	GET/PUT /admin/party
	GET/POST /admin/governorates   PUT/DELETE /admin/governorates/{id}
	GET/POST /admin/districts      PUT/DELETE /admin/districts/{id}
	GET/POST /admin/candidates     PUT/DELETE /admin/candidates/{id}
	PUT/DELETE /admin/voters/{id}

# Handler Initialization

The router creates handler instances with dependency injection:

	voterHandler := handlers.NewVoterHandler(db, cfg)
	assistantHandler := handlers.NewAssistantHandler(db, cfg)
	progressHandler := handlers.NewProgressHandler(db, cfg)
	duplicateHandler := handlers.NewDuplicateHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
