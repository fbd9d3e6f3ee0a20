package models

import "time"

// Database driver constants
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// PartyID is the fixed primary key of the singleton party row.
// The row is seeded at first boot and never deleted.
const PartyID = "1"

// Request types

type SubmitVoterRequest struct {
	CandidateID   string `json:"candidate_id"`
	AssistantID   string `json:"assistant_id"`
	Aid           string `json:"aid"`
	FullName      string `json:"full_name"`
	DOB           string `json:"dob"`
	DistrictID    string `json:"district_id"`
	PollingCenter string `json:"polling_center"`
	ElectoralCard string `json:"electoral_card"`
}

type CreateAssistantRequest struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AreaTags    string `json:"area_tags"`
}

// UpdatePartyRequest uses pointer fields so an absent field is
// distinguishable from an explicit empty/zero value: nil means
// "leave unchanged".
type UpdatePartyRequest struct {
	Name      *string `json:"name"`
	Threshold *int    `json:"threshold"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type CreateGovernorateRequest struct {
	Name string `json:"name"`
}

type UpdateGovernorateRequest struct {
	Name *string `json:"name"`
}

type CreateDistrictRequest struct {
	Name           string `json:"name"`
	OfficialVoters int    `json:"official_voters"`
	GovernorateID  string `json:"governorate_id"`
}

type UpdateDistrictRequest struct {
	Name           *string `json:"name"`
	OfficialVoters *int    `json:"official_voters"`
	GovernorateID  *string `json:"governorate_id"`
}

type CreateCandidateRequest struct {
	Name       string `json:"name"`
	Target     int    `json:"target"`
	DistrictID string `json:"district_id"`
}

type UpdateCandidateRequest struct {
	Name       *string `json:"name"`
	Target     *int    `json:"target"`
	DistrictID *string `json:"district_id"`
}

type UpdateVoterRequest struct {
	CandidateID   *string `json:"candidate_id"`
	AssistantID   *string `json:"assistant_id"`
	FullName      *string `json:"full_name"`
	DOB           *string `json:"dob"`
	DistrictID    *string `json:"district_id"`
	PollingCenter *string `json:"polling_center"`
	ElectoralCard *string `json:"electoral_card"`
}

// Response types

type SubmitVoterResponse struct {
	OK        bool   `json:"ok"`
	ID        string `json:"id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

type CreateAssistantResponse struct {
	OK   bool   `json:"ok"`
	ID   string `json:"id"`
	Link string `json:"link,omitempty"`
}

type PartyProgressResponse struct {
	OK         bool `json:"ok"`
	Threshold  int  `json:"threshold"`
	Supporters int  `json:"supporters"`
}

type CandidatesResponse struct {
	OK         bool                `json:"ok"`
	Candidates []CandidateProgress `json:"candidates"`
}

type CandidateViewResponse struct {
	OK         bool              `json:"ok"`
	Candidate  CandidateProgress `json:"candidate"`
	Assistants []Assistant       `json:"assistants"`
	ByDistrict []DistrictCount   `json:"byDistrict"`
	Weekly     []WeeklyCount     `json:"weekly"`
	Voters     []Voter           `json:"voters"`
}

type DistrictDistributionResponse struct {
	OK   bool            `json:"ok"`
	Rows []DistrictCount `json:"rows"`
}

type WeeklyGrowthResponse struct {
	OK   bool          `json:"ok"`
	Rows []WeeklyCount `json:"rows"`
}

type FuzzyDuplicatesResponse struct {
	OK   bool       `json:"ok"`
	Rows []FuzzyRow `json:"rows"`
}

type PartyResponse struct {
	OK    bool  `json:"ok"`
	Party Party `json:"party"`
}

type GovernoratesResponse struct {
	OK   bool          `json:"ok"`
	Rows []Governorate `json:"rows"`
}

// CandidateRowsResponse carries raw candidate rows for admin listing;
// the public candidate list is CandidatesResponse with progress data.
type CandidateRowsResponse struct {
	OK   bool        `json:"ok"`
	Rows []Candidate `json:"rows"`
}

type DistrictsResponse struct {
	OK   bool       `json:"ok"`
	Rows []District `json:"rows"`
}

type CreatedResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type UpdatedResponse struct {
	OK      bool `json:"ok"`
	Updated bool `json:"updated"`
}

type DeletedResponse struct {
	OK      bool `json:"ok"`
	Deleted bool `json:"deleted"`
}

// Domain types

type Party struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Threshold int     `json:"threshold"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

type Governorate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type District struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	OfficialVoters int     `json:"official_voters"`
	GovernorateID  *string `json:"governorate_id,omitempty"`
	Governorate    string  `json:"governorate,omitempty"`
}

type Candidate struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Target     int     `json:"target"`
	DistrictID *string `json:"district_id,omitempty"`
}

type Assistant struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	AreaTags    string    `json:"area_tags,omitempty"`
	LinkToken   string    `json:"-"` // Join link is built from it; never exposed raw
	CreatedAt   time.Time `json:"created_at"`
}

type Voter struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidate_id"`
	AssistantID   *string   `json:"assistant_id,omitempty"`
	FullName      string    `json:"full_name"`
	DOB           *string   `json:"dob,omitempty"`
	DistrictID    *string   `json:"district_id,omitempty"`
	PollingCenter string    `json:"polling_center,omitempty"`
	ElectoralCard string    `json:"electoral_card,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Aggregation row types

// CandidateProgress is one row of the candidate progress list:
// supporter count against the candidate's target, with the district
// label resolved via LEFT JOIN (empty when the reference dangles).
type CandidateProgress struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	District   string  `json:"district"`
	Target     int     `json:"target"`
	Supporters int     `json:"supporters"`
	Pct        float64 `json:"pct"`
}

type DistrictCount struct {
	DistrictID     string `json:"district_id"`
	District       string `json:"district"`
	OfficialVoters int    `json:"official_voters"`
	Supporters     int    `json:"supporters"`
}

type WeeklyCount struct {
	YWeek string `json:"yweek"`
	Count int    `json:"count"`
}

type FuzzyRow struct {
	FullName     string `json:"full_name"`
	DOB          string `json:"dob"`
	Cnt          int    `json:"cnt"`
	CandidateIDs string `json:"candidate_ids"`
}

// Error response

type ErrorResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}
