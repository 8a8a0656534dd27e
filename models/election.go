package models

import "fmt"

// PartyResult represents one party's row in the overall results table.
// Optional numerics are pointers so "not reported" serializes as null
// instead of 0.
type PartyResult struct {
	Party      string   `json:"party"`
	Votes      *int     `json:"votes"`
	Percentage *float64 `json:"percentage"`
	Seats      *int     `json:"seats"`
	Change     string   `json:"change"`
}

// Candidate represents one candidate standing in a constituency.
type Candidate struct {
	Candidate  string   `json:"candidate"`
	Party      string   `json:"party"`
	Votes      *int     `json:"votes"`
	Percentage *float64 `json:"percentage"`
}

// Winner is the derived winning candidate of a constituency. All three
// fields are null when no candidate has a known vote count.
type Winner struct {
	Candidate *string `json:"candidate"`
	Party     *string `json:"party"`
	Votes     *int    `json:"votes"`
}

// Constituency groups the candidates of a single electoral district
// together with its turnout metadata.
type Constituency struct {
	Name       string      `json:"constituency"`
	Electorate *int        `json:"electorate"`
	Turnout    *int        `json:"turnout"`
	TurnoutPct *float64    `json:"turnout_pct"`
	TotalVotes int         `json:"total_votes"`
	Winner     Winner      `json:"winner"`
	Candidates []Candidate `json:"candidates"`
}

// ElectionYear is the summary output for one general election.
type ElectionYear struct {
	Election string        `json:"election"`
	Year     int           `json:"year"`
	Results  []PartyResult `json:"results"`
}

// ConstituencyReport is the by-constituency output for one general
// election. It is only produced for years whose article carries a
// constituency breakdown.
type ConstituencyReport struct {
	Election       string         `json:"election"`
	Year           int            `json:"year"`
	Constituencies []Constituency `json:"constituencies"`
}

// ElectionName returns the display name used in both output files.
func ElectionName(year int) string {
	return fmt.Sprintf("%d Grenadian General Election", year)
}
