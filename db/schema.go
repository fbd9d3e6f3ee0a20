// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/canvass/models"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SeedParty inserts the singleton party row (id='1') if it does not
// exist yet. The row is never deleted afterwards.
func SeedParty(db *sql.DB) error {
	_, err := db.Exec(`
		INSERT INTO party (id, name, threshold)
		VALUES ($1, 'Party', 0)
		ON CONFLICT (id) DO NOTHING
	`, models.PartyID)
	if err != nil {
		return fmt.Errorf("failed to seed party: %w", err)
	}

	return nil
}

// YWeekExpr returns the SQL expression producing the year-week bucket
// key for a timestamp column. The two supported drivers spell this
// differently; both yield a string that sorts chronologically.
func YWeekExpr(driver, column string) string {
	if driver == models.DriverPostgres {
		return "to_char(" + column + ", 'IYYY-IW')"
	}
	return "strftime('%Y-%W', " + column + ")"
}

const schema = `
-- Party (singleton, id='1')
CREATE TABLE IF NOT EXISTS party (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    threshold INTEGER NOT NULL DEFAULT 0,
    start_date TEXT,
    end_date TEXT
);

-- Governorates
CREATE TABLE IF NOT EXISTS governorate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

-- Districts
CREATE TABLE IF NOT EXISTS district (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    official_voters INTEGER NOT NULL DEFAULT 0,
    governorate_id TEXT
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    target INTEGER NOT NULL DEFAULT 0,
    district_id TEXT
);

-- Assistants (field canvassers collecting voters for a candidate)
CREATE TABLE IF NOT EXISTS assistant (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL,
    name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    area_tags TEXT NOT NULL DEFAULT '',
    link_token TEXT UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_assistant_candidate ON assistant(candidate_id);

-- Voters
-- No FK constraints: deletes of candidates/districts/assistants are
-- hard and must leave dangling references rather than cascade.
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    candidate_id TEXT NOT NULL,
    assistant_id TEXT,
    full_name TEXT NOT NULL,
    dob TEXT,
    district_id TEXT,
    polling_center TEXT NOT NULL DEFAULT '',
    electoral_card TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_voter_candidate ON voter(candidate_id);
CREATE INDEX IF NOT EXISTS idx_voter_name_dob ON voter(full_name, dob);

-- A non-empty electoral card is unique across all voters. The partial
-- index turns a concurrent duplicate insert into a constraint error,
-- which ingestion reports as a duplicate outcome.
CREATE UNIQUE INDEX IF NOT EXISTS idx_voter_card ON voter(electoral_card) WHERE electoral_card <> '';
`
