// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
SeedParty inserts the singleton party row (id='1') on first boot.

# Tables

The schema includes:

  - party: Singleton campaign configuration (threshold, dates)
  - governorate: Top-level geographic grouping
  - district: Districts with official voter counts
  - candidate: Candidates with per-candidate supporter targets
  - assistant: Field canvassers collecting voters for a candidate
  - voter: Individual supporter records

# Relationships

	governorate 1──* district
	district 1──* candidate
	candidate 1──* assistant
	candidate 1──* voter
	assistant 1──* voter (optional; null means collected directly)

References are application-level only: there are no FK constraints, so
hard deletes of reference entities leave dangling ids behind. Aggregation
queries use LEFT JOINs and degrade to empty labels for orphans.

# Indexes

  - voter.electoral_card (unique, partial: non-empty values only)
  - voter.(full_name, dob) for the near-duplicate scan
  - voter.candidate_id and assistant.candidate_id for counting

# Drivers

The DDL is portable across the two supported drivers (modernc.org/sqlite
and lib/pq). The one dialect difference - the year-week bucket key - is
isolated in YWeekExpr.
*/
package db
