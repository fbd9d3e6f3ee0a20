// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/canvass/cliparse"
	canvassdb "github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/ident"
	_ "modernc.org/sqlite"
)

// SetupTestDB opens an in-memory SQLite database with the full schema
// and the seeded party row.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// _time_format=sqlite stores time.Time values in the text format
	// SQLite's date functions understand; strftime bucketing depends on it.
	db, err := sql.Open("sqlite", "file::memory:?_time_format=sqlite")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Each pooled connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)

	if err := canvassdb.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := canvassdb.SeedParty(db); err != nil {
		t.Fatalf("Failed to seed party row: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		BaseURL:      "http://localhost:3419",
	}
}

// CreateTestGovernorate inserts a governorate and returns its ID
func CreateTestGovernorate(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	id, _ := ident.GenerateID(12)
	_, err := db.Exec(`INSERT INTO governorate (id, name) VALUES ($1, $2)`, id, name)
	if err != nil {
		t.Fatalf("Failed to create test governorate: %v", err)
	}

	return id
}

// CreateTestDistrict inserts a district and returns its ID.
// governorateID may be empty.
func CreateTestDistrict(t *testing.T, db *sql.DB, name string, officialVoters int, governorateID string) string {
	t.Helper()

	id, _ := ident.GenerateID(12)
	var gov *string
	if governorateID != "" {
		gov = &governorateID
	}
	_, err := db.Exec(`
		INSERT INTO district (id, name, official_voters, governorate_id)
		VALUES ($1, $2, $3, $4)
	`, id, name, officialVoters, gov)
	if err != nil {
		t.Fatalf("Failed to create test district: %v", err)
	}

	return id
}

// CreateTestCandidate inserts a candidate and returns its ID.
// districtID may be empty.
func CreateTestCandidate(t *testing.T, db *sql.DB, name string, target int, districtID string) string {
	t.Helper()

	id, _ := ident.GenerateID(16)
	var district *string
	if districtID != "" {
		district = &districtID
	}
	_, err := db.Exec(`
		INSERT INTO candidate (id, name, target, district_id)
		VALUES ($1, $2, $3, $4)
	`, id, name, target, district)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// CreateTestAssistant inserts an assistant and returns its ID and link token
func CreateTestAssistant(t *testing.T, db *sql.DB, candidateID, name string) (assistantID, linkToken string) {
	t.Helper()

	assistantID, _ = ident.GenerateID(12)
	linkToken = ident.GenerateLinkToken()
	_, err := db.Exec(`
		INSERT INTO assistant (id, candidate_id, name, phone, area_tags, link_token, created_at)
		VALUES ($1, $2, $3, '', '', $4, $5)
	`, assistantID, candidateID, name, linkToken, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test assistant: %v", err)
	}

	return assistantID, linkToken
}

// InsertTestVoter inserts a voter row directly, bypassing the handler.
// Empty dob, districtID, and electoralCard are stored as NULL / ''.
func InsertTestVoter(t *testing.T, db *sql.DB, candidateID, fullName, dob, districtID, electoralCard string) string {
	t.Helper()

	return InsertTestVoterAt(t, db, candidateID, fullName, dob, districtID, electoralCard, time.Now())
}

// InsertTestVoterAt is InsertTestVoter with an explicit creation time,
// for tests exercising week bucketing.
func InsertTestVoterAt(t *testing.T, db *sql.DB, candidateID, fullName, dob, districtID, electoralCard string, createdAt time.Time) string {
	t.Helper()

	id, _ := ident.GenerateID(16)
	var dobArg, districtArg *string
	if dob != "" {
		dobArg = &dob
	}
	if districtID != "" {
		districtArg = &districtID
	}
	_, err := db.Exec(`
		INSERT INTO voter (id, candidate_id, assistant_id, full_name, dob, district_id, polling_center, electoral_card, created_at)
		VALUES ($1, $2, NULL, $3, $4, $5, '', $6, $7)
	`, id, candidateID, fullName, dobArg, districtArg, electoralCard, createdAt)
	if err != nil {
		t.Fatalf("Failed to insert test voter: %v", err)
	}

	return id
}

// CountVoters returns the number of voter rows for a candidate, or all
// rows when candidateID is empty.
func CountVoters(t *testing.T, db *sql.DB, candidateID string) int {
	t.Helper()

	var n int
	var err error
	if candidateID == "" {
		err = db.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&n)
	} else {
		err = db.QueryRow(`SELECT COUNT(*) FROM voter WHERE candidate_id = $1`, candidateID).Scan(&n)
	}
	if err != nil {
		t.Fatalf("Failed to count voters: %v", err)
	}

	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
