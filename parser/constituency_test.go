package parser

import "testing"

// Full-width table: the group-starting row carries the constituency
// name plus turnout metadata, candidate rows below it keep placeholder
// cells for the metadata columns.
const constituencyPage = `<html><body>
<h2><span id="By_constituency">By constituency</span></h2>
<table class="wikitable">
  <tr><th>Constituency</th><th>Electorate</th><th>Turnout</th><th>%</th><th>Party</th><th>Candidate</th><th>Votes</th><th>%</th></tr>
  <tr>
    <td rowspan="2">Saint George North East</td>
    <td>5,000</td><td>4,000</td><td>80.0</td>
    <td>New National Party</td><td>Alice Green</td><td>2,500</td><td>62.5</td>
  </tr>
  <tr>
    <td></td><td></td><td></td>
    <td>National Democratic Congress</td><td>Bob Yellow</td><td>1,000</td><td>25.0</td>
  </tr>
  <tr>
    <td rowspan="2">Carriacou</td>
    <td>3,000</td><td>2,400</td><td>76.5</td>
    <td>National Democratic Congress</td><td>Carol Gold</td><td>1,500</td><td>64.1</td>
  </tr>
  <tr>
    <td></td><td></td><td></td>
    <td>New National Party</td><td>Dan Grey</td><td>840</td><td>35.9</td>
  </tr>
  <tr><td colspan="8">Total</td></tr>
  <tr><td colspan="8">Source: Electoral Office</td></tr>
</table>
</body></html>`

func TestParseConstituencyTable(t *testing.T) {
	doc := mustDoc(t, constituencyPage)
	tbl := FindConstituencyTable(doc)
	if tbl == nil {
		t.Fatal("constituency table not located")
	}

	constituencies, err := ParseConstituencyTable(tbl)
	if err != nil {
		t.Fatalf("ParseConstituencyTable() error = %v", err)
	}
	if len(constituencies) != 2 {
		t.Fatalf("got %d constituencies, want 2", len(constituencies))
	}

	first := constituencies[0]
	if first.Name != "Saint George North East" {
		t.Errorf("name = %q, want %q", first.Name, "Saint George North East")
	}
	if !equalIntPtr(first.Electorate, intPtr(5000)) {
		t.Errorf("electorate = %v, want 5000", deref(first.Electorate))
	}
	if !equalIntPtr(first.Turnout, intPtr(4000)) {
		t.Errorf("turnout = %v, want 4000", deref(first.Turnout))
	}
	if !equalFloatPtr(first.TurnoutPct, floatPtr(80.0)) {
		t.Errorf("turnout pct = %v, want 80.0", deref(first.TurnoutPct))
	}
	if len(first.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(first.Candidates))
	}
	if first.Candidates[0].Candidate != "Alice Green" {
		t.Errorf("first candidate = %q, want %q", first.Candidates[0].Candidate, "Alice Green")
	}
	if first.Candidates[0].Party != "New National Party" {
		t.Errorf("first candidate party = %q", first.Candidates[0].Party)
	}
	if !equalFloatPtr(first.Candidates[0].Percentage, floatPtr(62.5)) {
		t.Errorf("first candidate pct = %v, want 62.5", deref(first.Candidates[0].Percentage))
	}
	if first.Candidates[1].Candidate != "Bob Yellow" {
		t.Errorf("second candidate = %q, want %q", first.Candidates[1].Candidate, "Bob Yellow")
	}

	if first.TotalVotes != 3500 {
		t.Errorf("total votes = %d, want 3500", first.TotalVotes)
	}
	if first.Winner.Candidate == nil || *first.Winner.Candidate != "Alice Green" {
		t.Errorf("winner = %v, want Alice Green", first.Winner.Candidate)
	}
	if !equalIntPtr(first.Winner.Votes, intPtr(2500)) {
		t.Errorf("winner votes = %v, want 2500", deref(first.Winner.Votes))
	}

	// First-seen order is preserved.
	if constituencies[1].Name != "Carriacou" {
		t.Errorf("second constituency = %q, want %q", constituencies[1].Name, "Carriacou")
	}
}

func TestParseConstituencyTableFallbackHeuristic(t *testing.T) {
	// No rowspan attribute at all: a non-numeric first cell in the
	// leading constituency column still starts a group.
	page := `<table class="wikitable">
	  <tr><th>Constituency</th><th>Party</th><th>Candidate</th><th>Votes</th><th>%</th></tr>
	  <tr><td>Town A</td><td>Party X</td><td>Alice</td><td>900</td><td>60.0</td></tr>
	  <tr><td>1,234</td><td>Bob</td><td>600</td><td>40.0</td></tr>
	</table>`

	constituencies, err := ParseConstituencyTable(mustDoc(t, page).Find("table").First())
	if err != nil {
		t.Fatalf("ParseConstituencyTable() error = %v", err)
	}
	if len(constituencies) != 1 {
		t.Fatalf("got %d constituencies, want 1", len(constituencies))
	}
	if constituencies[0].Name != "Town A" {
		t.Errorf("name = %q, want %q", constituencies[0].Name, "Town A")
	}
	// The numeric-first-cell row joined the existing group instead of
	// starting a bogus one.
	if len(constituencies[0].Candidates) != 2 {
		t.Errorf("got %d candidates, want 2", len(constituencies[0].Candidates))
	}
}

func TestParseConstituencyTableMergesDuplicateNames(t *testing.T) {
	// Rows of the same constituency separated by another group still
	// merge into the first-seen entry.
	page := `<table class="wikitable">
	  <tr><th>Constituency</th><th>Party</th><th>Candidate</th><th>Votes</th><th>%</th></tr>
	  <tr><td rowspan="1">Town A</td><td>Party X</td><td>Alice</td><td>900</td><td>60.0</td></tr>
	  <tr><td rowspan="1">Town B</td><td>Party Y</td><td>Bob</td><td>700</td><td>55.0</td></tr>
	  <tr><td rowspan="1">Town A</td><td>Party Z</td><td>Carol</td><td>600</td><td>40.0</td></tr>
	</table>`

	constituencies, err := ParseConstituencyTable(mustDoc(t, page).Find("table").First())
	if err != nil {
		t.Fatalf("ParseConstituencyTable() error = %v", err)
	}
	if len(constituencies) != 2 {
		t.Fatalf("got %d constituencies, want 2", len(constituencies))
	}
	if constituencies[0].Name != "Town A" || len(constituencies[0].Candidates) != 2 {
		t.Errorf("Town A = %d candidates, want merged 2", len(constituencies[0].Candidates))
	}
	if constituencies[1].Name != "Town B" {
		t.Errorf("second constituency = %q, want %q", constituencies[1].Name, "Town B")
	}
}

func TestParseConstituencyTableUnknownVotes(t *testing.T) {
	page := `<table class="wikitable">
	  <tr><th>Constituency</th><th>Party</th><th>Candidate</th><th>Votes</th><th>%</th></tr>
	  <tr><td rowspan="3">Town A</td><td>Party X</td><td>Alice</td><td>1,000</td><td></td></tr>
	  <tr><td>Party Y</td><td>Bob</td><td>—</td><td></td></tr>
	  <tr><td>Party Z</td><td>Carol</td><td>2,500</td><td></td></tr>
	</table>`

	constituencies, err := ParseConstituencyTable(mustDoc(t, page).Find("table").First())
	if err != nil {
		t.Fatalf("ParseConstituencyTable() error = %v", err)
	}
	c := constituencies[0]
	// Unknown counts stay out of the sum instead of counting as zero.
	if c.TotalVotes != 3500 {
		t.Errorf("total votes = %d, want 3500", c.TotalVotes)
	}
	if c.Winner.Candidate == nil || *c.Winner.Candidate != "Carol" {
		t.Errorf("winner = %v, want Carol", c.Winner.Candidate)
	}
	if !equalIntPtr(c.Winner.Votes, intPtr(2500)) {
		t.Errorf("winner votes = %v, want 2500", deref(c.Winner.Votes))
	}
}

func TestParseConstituencyTableAllVotesUnknown(t *testing.T) {
	page := `<table class="wikitable">
	  <tr><th>Constituency</th><th>Party</th><th>Candidate</th><th>Votes</th><th>%</th></tr>
	  <tr><td rowspan="2">Town A</td><td>Party X</td><td>Alice</td><td>—</td><td></td></tr>
	  <tr><td>Party Y</td><td>Bob</td><td>—</td><td></td></tr>
	</table>`

	constituencies, err := ParseConstituencyTable(mustDoc(t, page).Find("table").First())
	if err != nil {
		t.Fatalf("ParseConstituencyTable() error = %v", err)
	}
	w := constituencies[0].Winner
	if w.Candidate != nil || w.Party != nil || w.Votes != nil {
		t.Errorf("winner = %+v, want all fields null", w)
	}
	if constituencies[0].TotalVotes != 0 {
		t.Errorf("total votes = %d, want 0", constituencies[0].TotalVotes)
	}
}

func TestParseConstituencyTableWinnerTieKeepsFirst(t *testing.T) {
	page := `<table class="wikitable">
	  <tr><th>Constituency</th><th>Party</th><th>Candidate</th><th>Votes</th><th>%</th></tr>
	  <tr><td rowspan="2">Town A</td><td>Party X</td><td>Alice</td><td>500</td><td></td></tr>
	  <tr><td>Party Y</td><td>Bob</td><td>500</td><td></td></tr>
	</table>`

	constituencies, err := ParseConstituencyTable(mustDoc(t, page).Find("table").First())
	if err != nil {
		t.Fatalf("ParseConstituencyTable() error = %v", err)
	}
	w := constituencies[0].Winner
	if w.Candidate == nil || *w.Candidate != "Alice" {
		t.Errorf("tie winner = %v, want first-occurring Alice", w.Candidate)
	}
}

func TestParseConstituencyTableSkipsEmptyCandidateRows(t *testing.T) {
	page := `<table class="wikitable">
	  <tr><th>Constituency</th><th>Party</th><th>Candidate</th><th>Votes</th><th>%</th></tr>
	  <tr><td rowspan="2">Town A</td><td>Party X</td><td>Alice</td><td>900</td><td></td></tr>
	  <tr><td>Party Y</td><td></td><td></td><td></td></tr>
	</table>`

	constituencies, err := ParseConstituencyTable(mustDoc(t, page).Find("table").First())
	if err != nil {
		t.Fatalf("ParseConstituencyTable() error = %v", err)
	}
	if len(constituencies[0].Candidates) != 1 {
		t.Errorf("got %d candidates, want 1 (empty row skipped)", len(constituencies[0].Candidates))
	}
}

func TestParseConstituencyTableNoHeaderRow(t *testing.T) {
	page := `<table class="wikitable">
	  <tr><td>Town A</td><td>Alice</td><td>900</td></tr>
	</table>`

	_, err := ParseConstituencyTable(mustDoc(t, page).Find("table").First())
	if err != ErrNoHeaderRow {
		t.Errorf("ParseConstituencyTable() error = %v, want ErrNoHeaderRow", err)
	}
}

func TestAdvanceGroup(t *testing.T) {
	tests := []struct {
		name          string
		prev          string
		firstCell     string
		hasRowspan    bool
		constituency0 bool
		wantName      string
		wantStarts    bool
	}{
		{"rowspan starts group", "", "Town A", true, true, "Town A", true},
		{"rowspan with empty cell keeps prev", "Town A", "", true, true, "Town A", true},
		{"textual fallback", "Town A", "Town B", false, true, "Town B", true},
		{"numeric first cell continues group", "Town A", "1,234", false, true, "Town A", false},
		{"decimal first cell continues group", "Town A", "76.5", false, true, "Town A", false},
		{"fallback needs leading constituency column", "Town A", "Town B", false, false, "Town A", false},
		{"empty cell continues group", "Town A", "", false, true, "Town A", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, starts := advanceGroup(tt.prev, tt.firstCell, tt.hasRowspan, tt.constituency0)
			if name != tt.wantName || starts != tt.wantStarts {
				t.Errorf("advanceGroup(%q, %q, %v, %v) = (%q, %v), want (%q, %v)",
					tt.prev, tt.firstCell, tt.hasRowspan, tt.constituency0,
					name, starts, tt.wantName, tt.wantStarts)
			}
		})
	}
}
