// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/models"
)

// Every function here recomputes from the live voter table; there is no
// materialized cache. Counts are read-consistent per query, but a
// composite response assembled from several of them carries no snapshot
// isolation across queries.

// progressPct computes round(100*supporters/target, 1).
// A zero or negative target yields 0, never a division by zero.
func progressPct(supporters, target int) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(1000*float64(supporters)/float64(target)) / 10
}

// getPartyProgress returns the party threshold and the total voter
// count across all candidates.
func getPartyProgress(db *sql.DB) (threshold, supporters int, err error) {
	err = db.QueryRow(`
		SELECT threshold FROM party WHERE id = $1
	`, models.PartyID).Scan(&threshold)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read party threshold: %w", err)
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&supporters)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count voters: %w", err)
	}

	return threshold, supporters, nil
}

// listCandidateProgress returns one row per candidate with its
// supporter count and progress percentage, ordered by supporters
// descending, candidate id ascending. The district label resolves via
// LEFT JOIN, so a dangling district reference degrades to an empty
// label rather than dropping the candidate.
func listCandidateProgress(db *sql.DB) ([]models.CandidateProgress, error) {
	rows, err := db.Query(`
		SELECT c.id, c.name, COALESCE(d.name, ''), c.target, COUNT(v.id)
		FROM candidate c
		LEFT JOIN district d ON c.district_id = d.id
		LEFT JOIN voter v ON v.candidate_id = c.id
		GROUP BY c.id, c.name, d.name, c.target
		ORDER BY COUNT(v.id) DESC, c.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate progress: %w", err)
	}
	defer rows.Close()

	list := []models.CandidateProgress{}
	for rows.Next() {
		var cp models.CandidateProgress
		if err := rows.Scan(&cp.ID, &cp.Name, &cp.District, &cp.Target, &cp.Supporters); err != nil {
			return nil, fmt.Errorf("failed to scan candidate progress: %w", err)
		}
		cp.Pct = progressPct(cp.Supporters, cp.Target)
		list = append(list, cp)
	}

	return list, rows.Err()
}

// getCandidateProgress returns the progress row for a single candidate.
// Returns sql.ErrNoRows when the candidate does not exist.
func getCandidateProgress(db *sql.DB, candidateID string) (models.CandidateProgress, error) {
	var cp models.CandidateProgress
	err := db.QueryRow(`
		SELECT c.id, c.name, COALESCE(d.name, ''), c.target,
		       (SELECT COUNT(*) FROM voter v WHERE v.candidate_id = c.id)
		FROM candidate c
		LEFT JOIN district d ON c.district_id = d.id
		WHERE c.id = $1
	`, candidateID).Scan(&cp.ID, &cp.Name, &cp.District, &cp.Target, &cp.Supporters)
	if err != nil {
		return models.CandidateProgress{}, err
	}
	cp.Pct = progressPct(cp.Supporters, cp.Target)
	return cp, nil
}

// districtDistribution returns supporter counts per district, ordered
// by supporters descending then official_voters descending. When
// candidateID is non-empty, only that candidate's voters are counted.
func districtDistribution(db *sql.DB, candidateID string) ([]models.DistrictCount, error) {
	query := `
		SELECT d.id, d.name, d.official_voters, COUNT(v.id)
		FROM district d
		LEFT JOIN voter v ON v.district_id = d.id
		GROUP BY d.id, d.name, d.official_voters
		ORDER BY COUNT(v.id) DESC, d.official_voters DESC
	`
	var args []interface{}
	if candidateID != "" {
		query = `
			SELECT d.id, d.name, d.official_voters, COUNT(v.id)
			FROM district d
			LEFT JOIN voter v ON v.district_id = d.id AND v.candidate_id = $1
			GROUP BY d.id, d.name, d.official_voters
			ORDER BY COUNT(v.id) DESC, d.official_voters DESC
		`
		args = append(args, candidateID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query district distribution: %w", err)
	}
	defer rows.Close()

	list := []models.DistrictCount{}
	for rows.Next() {
		var dc models.DistrictCount
		if err := rows.Scan(&dc.DistrictID, &dc.District, &dc.OfficialVoters, &dc.Supporters); err != nil {
			return nil, fmt.Errorf("failed to scan district count: %w", err)
		}
		list = append(list, dc)
	}

	return list, rows.Err()
}

// weeklyGrowth buckets voter creation timestamps by calendar week and
// returns counts in chronological order. The bucket key expression is
// the one dialect difference between the supported drivers.
func weeklyGrowth(conn *sql.DB, driver, candidateID string) ([]models.WeeklyCount, error) {
	expr := db.YWeekExpr(driver, "created_at")

	query := `
		SELECT ` + expr + ` AS yweek, COUNT(*)
		FROM voter
		GROUP BY yweek
		ORDER BY yweek ASC
	`
	var args []interface{}
	if candidateID != "" {
		query = `
			SELECT ` + expr + ` AS yweek, COUNT(*)
			FROM voter
			WHERE candidate_id = $1
			GROUP BY yweek
			ORDER BY yweek ASC
		`
		args = append(args, candidateID)
	}

	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly growth: %w", err)
	}
	defer rows.Close()

	list := []models.WeeklyCount{}
	for rows.Next() {
		var wc models.WeeklyCount
		if err := rows.Scan(&wc.YWeek, &wc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan weekly count: %w", err)
		}
		list = append(list, wc)
	}

	return list, rows.Err()
}

// listFuzzyDuplicates scans voters with a non-empty name and dob and
// groups them by exact (full_name, dob) equality. Only groups with
// more than one row are returned, ordered by count descending then
// name ascending. Grouping happens in Go to keep the query portable:
// the string-aggregation functions the candidate id list would need
// diverge between the supported drivers.
func listFuzzyDuplicates(db *sql.DB) ([]models.FuzzyRow, error) {
	rows, err := db.Query(`
		SELECT full_name, dob, candidate_id
		FROM voter
		WHERE full_name <> '' AND dob IS NOT NULL AND dob <> ''
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters for duplicate scan: %w", err)
	}
	defer rows.Close()

	type key struct {
		name string
		dob  string
	}
	counts := make(map[key]int)
	candidates := make(map[key]map[string]bool)

	for rows.Next() {
		var name, dob, candidateID string
		if err := rows.Scan(&name, &dob, &candidateID); err != nil {
			return nil, fmt.Errorf("failed to scan voter row: %w", err)
		}
		k := key{name, dob}
		counts[k]++
		if candidates[k] == nil {
			candidates[k] = make(map[string]bool)
		}
		candidates[k][candidateID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	list := []models.FuzzyRow{}
	for k, cnt := range counts {
		if cnt < 2 {
			continue
		}
		ids := make([]string, 0, len(candidates[k]))
		for id := range candidates[k] {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		list = append(list, models.FuzzyRow{
			FullName:     k.name,
			DOB:          k.dob,
			Cnt:          cnt,
			CandidateIDs: strings.Join(ids, ","),
		})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Cnt != list[j].Cnt {
			return list[i].Cnt > list[j].Cnt
		}
		return list[i].FullName < list[j].FullName
	})

	return list, nil
}
