// Package report renders the stored election records into a single
// static HTML page: one section per year with the party results table,
// vote bars and, when available, the by-constituency card grid.
package report

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"grenada-elections/config"
	"grenada-elections/models"
	"grenada-elections/storage"

	_ "embed"
)

//go:embed page.gohtml
var pageTemplate string

type page struct {
	Years []yearSection
}

type yearSection struct {
	Year           int
	Rows           []partyRow
	Constituencies []constituencyCard
}

type partyRow struct {
	Party       string
	Color       string
	BarWidth    float64
	Votes       string
	Percentage  string
	Seats       string
	Change      string
	ChangeClass string
}

type constituencyCard struct {
	Name        string
	WinnerName  string
	WinnerColor string
	Electorate  string
	TurnoutPct  string
	Candidates  []candidateRow
}

type candidateRow struct {
	Name       string
	Party      string
	Color      string
	BarWidth   float64
	Votes      string
	Percentage string
}

// Render builds the report page for the loaded years. Years arrive
// newest first from storage and are kept in that order.
func Render(years []storage.YearData, cfg config.ReportConfig) (string, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	p := page{}
	for _, y := range years {
		section := yearSection{
			Year: y.Year,
			Rows: buildPartyRows(y.Summary.Results, cfg),
		}
		if y.Constituencies != nil {
			section.Constituencies = buildConstituencyCards(y.Constituencies.Constituencies, cfg)
		}
		p.Years = append(p.Years, section)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, p); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out.String(), nil
}

func buildPartyRows(results []models.PartyResult, cfg config.ReportConfig) []partyRow {
	maxVotes := 1
	for _, r := range results {
		if r.Votes != nil && *r.Votes > maxVotes {
			maxVotes = *r.Votes
		}
	}

	var rows []partyRow
	for _, r := range results {
		change := r.Change
		if change == "" {
			change = "—"
		}
		rows = append(rows, partyRow{
			Party:       r.Party,
			Color:       cfg.ColorFor(r.Party),
			BarWidth:    barWidth(r.Votes, maxVotes),
			Votes:       formatOptionalInt(r.Votes),
			Percentage:  formatPct(r.Percentage),
			Seats:       formatOptionalInt(r.Seats),
			Change:      change,
			ChangeClass: changeClass(change),
		})
	}
	return rows
}

func buildConstituencyCards(constituencies []models.Constituency, cfg config.ReportConfig) []constituencyCard {
	var cards []constituencyCard
	for _, c := range constituencies {
		winnerName := "—"
		winnerParty := ""
		if c.Winner.Candidate != nil {
			winnerName = *c.Winner.Candidate
		}
		if c.Winner.Party != nil {
			winnerParty = *c.Winner.Party
		}

		maxVotes := 1
		for _, cd := range c.Candidates {
			if cd.Votes != nil && *cd.Votes > maxVotes {
				maxVotes = *cd.Votes
			}
		}

		card := constituencyCard{
			Name:        c.Name,
			WinnerName:  winnerName,
			WinnerColor: cfg.ColorFor(winnerParty),
			Electorate:  formatOptionalInt(c.Electorate),
			TurnoutPct:  formatPct(c.TurnoutPct),
		}
		for _, cd := range c.Candidates {
			card.Candidates = append(card.Candidates, candidateRow{
				Name:       cd.Candidate,
				Party:      cd.Party,
				Color:      cfg.ColorFor(cd.Party),
				BarWidth:   barWidth(cd.Votes, maxVotes),
				Votes:      formatOptionalInt(cd.Votes),
				Percentage: formatPct(cd.Percentage),
			})
		}
		cards = append(cards, card)
	}
	return cards
}

// barWidth scales a vote count against the section maximum, rounded to
// one decimal so bar widths stay stable across runs.
func barWidth(votes *int, maxVotes int) float64 {
	if votes == nil || maxVotes <= 0 {
		return 0
	}
	return math.Round(float64(*votes)/float64(maxVotes)*1000) / 10
}

// formatOptionalInt renders an integer with thousands separators, or an
// em dash for unknown values.
func formatOptionalInt(n *int) string {
	if n == nil {
		return "—"
	}
	return groupDigits(*n)
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func formatPct(f *float64) string {
	if f == nil {
		return "—"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64) + "%"
}

func changeClass(change string) string {
	switch {
	case strings.HasPrefix(change, "+"):
		return "pos"
	case strings.HasPrefix(change, "–"), strings.HasPrefix(change, "-"):
		return "neg"
	default:
		return "neu"
	}
}
