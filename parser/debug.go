package parser

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// DumpTable writes per-row diagnostics for a located table, useful when
// a year's markup parses into nonsense. Cell text is truncated so wide
// tables stay readable.
func DumpTable(w io.Writer, tbl *goquery.Selection) {
	rows := tbl.Find("tr")
	fmt.Fprintf(w, "table found with %d rows\n", rows.Length())

	rows.Each(func(i int, row *goquery.Selection) {
		if i >= 8 {
			return
		}
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			tag := goquery.NodeName(cell)
			rowspan, _ := cell.Attr("rowspan")
			colspan, _ := cell.Attr("colspan")
			cells = append(cells, fmt.Sprintf("%s(%q rs=%s cs=%s)", tag, truncate(cleanText(cell.Text()), 25), orDash(rowspan), orDash(colspan)))
		})
		fmt.Fprintf(w, "  row %d: %v\n", i, cells)
	})
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
