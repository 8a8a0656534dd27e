package parser

import (
	"errors"
	"strings"

	"grenada-elections/models"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoHeaderRow is returned when a located table carries no usable
// header row, which makes the rest of the extraction meaningless.
var ErrNoHeaderRow = errors.New("no usable header row found in table")

// summaryFooterKeywords marks total/source/footer rows of the overall
// results table. Matched against the full lowercased row text.
var summaryFooterKeywords = []string{"total", "source", "valid", "invalid", "registered", "blank"}

// ParseResultsTable extracts one PartyResult per data row of the overall
// results table, preserving table row order. Rows before the real header
// (decorative titles, merged captions) are skipped by searching down for
// the first row whose header cells mention "votes". Summary and footer
// rows are dropped; unparseable numeric cells degrade to nil, never to
// an error.
func ParseResultsTable(tbl *goquery.Selection) ([]models.PartyResult, error) {
	rows := tbl.Find("tr")

	headerIdx := -1
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		hit := false
		row.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(cleanText(th.Text())), "votes") {
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
	cols := mapSummaryColumns(headers)

	var results []models.PartyResult
	rows.Each(func(i int, row *goquery.Selection) {
		if i <= headerIdx {
			return
		}
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}

		rowText := strings.ToLower(cleanText(row.Text()))
		if containsAny(rowText, summaryFooterKeywords) {
			return
		}

		get := func(idx int) string {
			if idx >= 0 && idx < cells.Length() {
				return cleanText(cells.Eq(idx).Text())
			}
			return ""
		}

		party := get(cols.party)
		if party == "" && cols.party >= 0 {
			// Party columns often pair a color swatch cell with the
			// name cell under one colspan header.
			party = get(cols.party + 1)
		}
		votes := get(cols.votes)
		if party == "" && votes == "" {
			return
		}

		results = append(results, models.PartyResult{
			Party:      party,
			Votes:      parseOptionalInt(votes),
			Percentage: parseOptionalFloat(get(cols.pct)),
			Seats:      parseOptionalInt(get(cols.seats)),
			Change:     get(cols.change),
		})
	})

	return results, nil
}
