// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitVoterRequest: candidate_id, full_name, and optional identity fields
  - CreateAssistantRequest: candidate_id, name, phone, area_tags
  - Create and Update requests for party, governorates, districts, candidates

Update requests use pointer fields: a nil field was absent from the
JSON body and leaves the stored value unchanged.

# Response Types

Every response carries an "ok" boolean. Success payloads add their
data; failures are ErrorResponse with ok=false and a msg string.

  - SubmitVoterResponse: id, or duplicate=true on a resubmitted card
  - CreateAssistantResponse: id and the shareable join link
  - PartyProgressResponse, CandidatesResponse, CandidateViewResponse
  - DistrictDistributionResponse, WeeklyGrowthResponse
  - FuzzyDuplicatesResponse
  - CreatedResponse, UpdatedResponse, DeletedResponse

# Domain Types

Internal data structures:

  - Party: single-row campaign config (threshold, date window)
  - Governorate, District, Candidate: reference hierarchy
  - Assistant: canvasser linked to a candidate, with a join link token
  - Voter: recorded supporter with electoral card and optional dob

# Aggregation Rows

  - CandidateProgress: supporters, target, and pct toward target
  - DistrictCount: supporters per district with official voter counts
  - WeeklyCount: supporters per ISO-style year-week bucket
  - FuzzyRow: a (full_name, dob) group seen more than once

# Constants

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	PartyID        = "1"
*/
package models
