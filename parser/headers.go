package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// expandHeaders flattens a header row into logical column labels,
// repeating each label once per colspan slot. A "Party" header with
// colspan=2 (color swatch + name) therefore claims two columns.
func expandHeaders(row *goquery.Selection) []string {
	var headers []string
	row.Find("th").Each(func(_ int, th *goquery.Selection) {
		text := strings.ToLower(cleanText(th.Text()))
		span := 1
		if v, ok := th.Attr("colspan"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				span = n
			}
		}
		for i := 0; i < span; i++ {
			headers = append(headers, text)
		}
	})
	return headers
}

// findColumn returns the index of the first header containing any of the
// given keywords, trying keywords in order. Substring matching is
// deliberate: Wikipedia header wording drifts between years ("Party"
// vs "Political party"). Returns -1 when nothing matches.
func findColumn(headers []string, keywords ...string) int {
	for _, kw := range keywords {
		for i, h := range headers {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}

// percentColumns returns the indexes of headers that are exactly one of
// the given labels ("%", "percentage"). Exact matching keeps "turnout %"
// style compound headers out.
func percentColumns(headers []string, labels ...string) []int {
	var idx []int
	for i, h := range headers {
		t := strings.TrimSpace(h)
		for _, label := range labels {
			if t == label {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

// summaryColumns maps the overall results table's logical columns.
// An index of -1 means the column is absent.
type summaryColumns struct {
	party  int
	votes  int
	pct    int
	seats  int
	change int
}

func mapSummaryColumns(headers []string) summaryColumns {
	cols := summaryColumns{
		party:  findColumn(headers, "party"),
		votes:  findColumn(headers, "votes"),
		seats:  findColumn(headers, "seats"),
		change: findColumn(headers, "+", "change", "swing"),
		pct:    -1,
	}
	if pcts := percentColumns(headers, "%"); len(pcts) > 0 {
		cols.pct = pcts[0]
	}
	return cols
}

// constituencyColumns maps the by-constituency table's logical columns.
// The table carries two exact "%" columns: the first belongs to turnout,
// the second to the candidate's vote share. With only one, it is taken
// as the candidate percentage.
type constituencyColumns struct {
	constituency int
	electorate   int
	turnout      int
	turnoutPct   int
	party        int
	candidate    int
	votes        int
	pct          int
}

func mapConstituencyColumns(headers []string) constituencyColumns {
	cols := constituencyColumns{
		constituency: findColumn(headers, "constituency"),
		electorate:   findColumn(headers, "electorate"),
		turnout:      findColumn(headers, "turnout"),
		party:        findColumn(headers, "party", "political"),
		candidate:    findColumn(headers, "candidate"),
		votes:        findColumn(headers, "votes"),
		turnoutPct:   -1,
		pct:          -1,
	}
	pcts := percentColumns(headers, "%", "percentage")
	switch {
	case len(pcts) >= 2:
		cols.turnoutPct = pcts[0]
		cols.pct = pcts[1]
	case len(pcts) == 1:
		cols.pct = pcts[0]
	}
	return cols
}
