// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Canvass API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - VoterHandler: Voter submission with electoral card dedup, admin edits
  - AssistantHandler: Assistant creation and join links
  - ProgressHandler: Party, candidate, district, and weekly dashboards
  - DuplicateHandler: Fuzzy (name+dob) duplicate review
  - AdminHandler: CRUD on party config, governorates, districts, candidates

Handlers are created via constructor functions that accept *sql.DB and Config:

	voterHandler := handlers.NewVoterHandler(db, cfg)

# Voter Submission

	POST /voters → SubmitVoter

A non-empty electoral card that already exists anywhere in the party is
a soft duplicate: the response is 200 {ok:true, duplicate:true} and no
row is written. The check-then-insert race is closed by a partial
unique index on electoral_card; an insert-time violation reports the
same duplicate outcome. The aid query or body parameter resolves an
assistant join-link token; an explicit assistant_id wins over it.

# Dashboards

	GET /party-progress          → supporters vs the party threshold
	GET /candidates              → candidate progress, most supporters first
	GET /candidate/{id}          → full view: assistants, districts, weekly, voters
	GET /district-distribution   → supporters per district (?candidate_id= scopes)
	GET /weekly-growth           → supporters per year-week (?candidate_id= scopes)
	GET /fuzzy-duplicates        → (full_name, dob) pairs seen more than once

Aggregation queries live in aggregate.go and are shared between the
scoped and unscoped endpoints. pct is computed in Go, rounded to one
decimal, and 0 when the target is unset.

# Admin CRUD

	GET/PUT  /admin/party
	GET/POST /admin/{governorates,districts,candidates}
	PUT/DELETE /admin/{governorates,districts,candidates}/{id}
	PUT/DELETE /admin/voters/{id}

Updates are partial: absent JSON fields keep their stored value.
Deletes are hard and do not cascade; rows referencing a deleted parent
keep the dangling id and surface an empty label in dashboards.
*/
package handlers
