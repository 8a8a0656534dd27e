package parser

import (
	"strings"

	"grenada-elections/models"

	"github.com/PuerkitoBio/goquery"
)

// constituencyFooterKeywords marks total/source rows of the
// by-constituency table.
var constituencyFooterKeywords = []string{"total", "source", "valid votes", "invalid", "registered"}

// advanceGroup decides which constituency the current row belongs to,
// given the previous group name and the row's first cell. A row starts a
// new group when its first cell declares a vertical span, or when the
// constituency column is the leading column and the first cell holds
// text that is not purely numeric. The second test protects against
// markup that drops the rowspan attribute but still repeats the name.
// Pure function of (previous state, current row).
func advanceGroup(prev, firstCellText string, hasRowspan, constituencyFirst bool) (name string, startsGroup bool) {
	startsGroup = hasRowspan ||
		(constituencyFirst && firstCellText != "" && !isNumericText(firstCellText))
	if startsGroup && firstCellText != "" {
		return firstCellText, true
	}
	return prev, startsGroup
}

// isNumericText reports whether text is all digits once grouping commas
// and decimal points are removed.
func isNumericText(text string) bool {
	stripped := strings.NewReplacer(",", "", ".", "").Replace(text)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseConstituencyTable reconstructs per-constituency candidate groups
// from the rowspan-collapsed by-constituency table. The first row of
// each group carries the constituency name and turnout metadata; the
// following rows carry one candidate each and are one physical cell
// shorter. Groups sharing a name merge in first-seen order rather than
// duplicating the constituency.
func ParseConstituencyTable(tbl *goquery.Selection) ([]models.Constituency, error) {
	rows := tbl.Find("tr")

	headerIdx := -1
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		hit := false
		row.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(cleanText(th.Text())), "constituency") {
				hit = true
				return false
			}
			return true
		})
		if hit {
			headerIdx = i
			return false
		}
		return true
	})
	if headerIdx < 0 {
		return nil, ErrNoHeaderRow
	}

	headers := expandHeaders(rows.Eq(headerIdx))
	cols := mapConstituencyColumns(headers)

	groups := make(map[string]*pendingGroup)
	var order []string
	current := ""

	rows.Each(func(i int, row *goquery.Selection) {
		if i <= headerIdx {
			return
		}
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}

		rowText := strings.ToLower(cleanText(row.Text()))
		if containsAny(rowText, constituencyFooterKeywords) {
			return
		}

		first := cells.Eq(0)
		firstText := cleanText(first.Text())
		_, hasRowspan := first.Attr("rowspan")

		var startsGroup bool
		current, startsGroup = advanceGroup(current, firstText, hasRowspan, cols.constituency == 0)
		if current == "" {
			return
		}

		// Starting rows spend their first cell on the constituency
		// name; every row is then addressed in header coordinates
		// shifted left by that consumed cell.
		dataStart := 0
		if startsGroup {
			dataStart = 1
		}
		get := func(idx int) string {
			if idx < 0 {
				return ""
			}
			adjusted := dataStart + idx - 1
			if adjusted >= dataStart && adjusted < cells.Length() {
				return cleanText(cells.Eq(adjusted).Text())
			}
			return ""
		}

		var electorate, turnout, turnoutPct string
		if startsGroup {
			electorate = get(cols.electorate)
			turnout = get(cols.turnout)
			turnoutPct = get(cols.turnoutPct)
		}

		party := get(cols.party)
		if party == "" && cols.party >= 0 {
			party = get(cols.party + 1)
		}
		candidate := get(cols.candidate)
		votes := get(cols.votes)
		pct := get(cols.pct)

		if candidate == "" && votes == "" {
			return
		}

		group, ok := groups[current]
		if !ok {
			group = &pendingGroup{
				electorate: parseOptionalInt(electorate),
				turnout:    parseOptionalInt(turnout),
				turnoutPct: parseOptionalFloat(turnoutPct),
			}
			groups[current] = group
			order = append(order, current)
		}
		group.candidates = append(group.candidates, models.Candidate{
			Candidate:  candidate,
			Party:      party,
			Votes:      parseOptionalInt(votes),
			Percentage: parseOptionalFloat(pct),
		})
	})

	constituencies := make([]models.Constituency, 0, len(order))
	for _, name := range order {
		g := groups[name]
		constituencies = append(constituencies, models.Constituency{
			Name:       name,
			Electorate: g.electorate,
			Turnout:    g.turnout,
			TurnoutPct: g.turnoutPct,
			TotalVotes: totalVotes(g.candidates),
			Winner:     pickWinner(g.candidates),
			Candidates: g.candidates,
		})
	}
	return constituencies, nil
}

type pendingGroup struct {
	electorate *int
	turnout    *int
	turnoutPct *float64
	candidates []models.Candidate
}

// totalVotes sums candidate vote counts, leaving unknown counts out of
// the sum rather than counting them as zero.
func totalVotes(candidates []models.Candidate) int {
	total := 0
	for _, c := range candidates {
		if c.Votes != nil {
			total += *c.Votes
		}
	}
	return total
}

// pickWinner selects the candidate with the highest known vote count.
// Ties keep the first candidate in row order; the source tables never
// specify a tie rule, so first occurrence is preserved rather than
// inventing one. When no candidate has a known count the winner is
// entirely unknown.
func pickWinner(candidates []models.Candidate) models.Winner {
	var best *models.Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.Votes == nil {
			continue
		}
		if best == nil || *c.Votes > *best.Votes {
			best = c
		}
	}
	if best == nil {
		return models.Winner{}
	}
	return models.Winner{
		Candidate: &best.Candidate,
		Party:     &best.Party,
		Votes:     best.Votes,
	}
}
