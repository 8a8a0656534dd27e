package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tableSelector limits candidates to tables carrying the standard
// results marker class. Infoboxes and navboxes never qualify.
const tableSelector = "table.wikitable"

// FindResultsTable returns the party results summary table: the first
// wikitable where some row's header cells collectively mention party,
// votes and seats. Returns nil when the page has no qualifying table,
// which callers must treat as fatal.
func FindResultsTable(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find(tableSelector).EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		if isResultsTable(tbl) {
			found = tbl
			return false
		}
		return true
	})
	return found
}

// isResultsTable scans each row's header cells for the party/votes/seats
// keyword signature. Substring matching tolerates wording drift across
// years ("Party" vs "Political party").
func isResultsTable(tbl *goquery.Selection) bool {
	qualifies := false
	tbl.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		var hasParty, hasVotes, hasSeats bool
		row.Find("th").Each(func(_ int, th *goquery.Selection) {
			h := strings.ToLower(cleanText(th.Text()))
			hasParty = hasParty || strings.Contains(h, "party")
			hasVotes = hasVotes || strings.Contains(h, "votes")
			hasSeats = hasSeats || strings.Contains(h, "seats")
		})
		if hasParty && hasVotes && hasSeats {
			qualifies = true
			return false
		}
		return true
	})
	return qualifies
}

// FindConstituencyTable returns the by-constituency breakdown table, or
// nil. The table is only looked for when the page carries the
// By_constituency section anchor; articles for years without a
// constituency breakdown simply lack the anchor, and that is a normal,
// non-error outcome.
func FindConstituencyTable(doc *goquery.Document) *goquery.Selection {
	if doc.Find("#By_constituency").Length() == 0 {
		return nil
	}
	var found *goquery.Selection
	doc.Find(tableSelector).EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		if isConstituencyTable(tbl) {
			found = tbl
			return false
		}
		return true
	})
	return found
}

func isConstituencyTable(tbl *goquery.Selection) bool {
	qualifies := false
	tbl.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		row.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(cleanText(th.Text())), "constituency") {
				qualifies = true
				return false
			}
			return true
		})
		return !qualifies
	})
	return qualifies
}
