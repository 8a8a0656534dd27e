package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"grenada-elections/config"
	"grenada-elections/fetcher"
	"grenada-elections/models"
	"grenada-elections/parser"
	"grenada-elections/report"
	"grenada-elections/storage"

	"github.com/PuerkitoBio/goquery"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "grenada-elections",
		Short: "Scrape Grenadian general election results from Wikipedia",
		Long: `Scrapes Wikipedia election articles for Grenadian general elections,
normalizes the party and constituency tables into JSON records, and
renders a static HTML report from the stored data.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(renderCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scrapeCmd() *cobra.Command {
	var (
		debug      bool
		configPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "scrape <year>",
		Short: "Scrape one election year and store its JSON records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("'%s' is not a valid year", args[0])
			}

			cfg := loadConfig(configPath)
			if outputDir != "" {
				cfg.Scraper.OutputDir = outputDir
			}

			return runScrape(year, cfg, debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "print per-row table diagnostics to stderr")
	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")
	cmd.Flags().StringVar(&outputDir, "output", "", "override the results directory")

	return cmd
}

func renderCmd() *cobra.Command {
	var (
		configPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the stored results into a static HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(configPath)
			if outputDir != "" {
				cfg.Scraper.OutputDir = outputDir
			}

			return runRender(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")
	cmd.Flags().StringVar(&outputDir, "output", "", "override the results directory")

	return cmd
}

// loadConfig loads the YAML config, falling back to the built-in
// defaults when the file does not exist.
func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: %v, using default configuration\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

func runScrape(year int, cfg *config.Config, debug bool) error {
	url := cfg.Scraper.ArticleURL(year)
	fmt.Printf("Scraping %s ...\n", models.ElectionName(year))

	f := fetcher.NewPageFetcher(cfg.Scraper.UserAgent, time.Duration(cfg.Scraper.TimeoutSeconds)*time.Second)
	html, err := f.Fetch(url)
	if err != nil {
		var httpErr *fetcher.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("no Wikipedia article found for the %d Grenadian general election\n   URL attempted: %s\n   Known election years: %s",
				year, url, knownYearsHint(cfg.Scraper.KnownYears, year))
		}
		return fmt.Errorf("could not fetch article: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	store := storage.NewStore(cfg.Scraper.OutputDir)

	summary, err := scrapeSummary(doc, year, url, debug)
	if err != nil {
		return err
	}
	if err := store.WriteSummary(summary); err != nil {
		return err
	}

	fmt.Printf("\nResults saved to '%s'\n", store.SummaryPath(year))
	fmt.Printf("Parties scraped: %d\n", len(summary.Results))
	printSummaryTable(summary.Results)

	// Constituency data is supplementary: older articles simply have
	// no breakdown, which is a normal outcome.
	constituencies := scrapeConstituencies(doc, year, debug)
	if constituencies == nil {
		log.Printf("No by-constituency section found for %d, skipping constituency file\n", year)
		return nil
	}
	if err := store.WriteConstituencies(constituencies); err != nil {
		return err
	}

	fmt.Printf("\nConstituency data saved to '%s'\n", store.ConstituencyPath(year))
	fmt.Printf("Constituencies scraped: %d\n", len(constituencies.Constituencies))
	printWinners(constituencies.Constituencies)
	return nil
}

func scrapeSummary(doc *goquery.Document, year int, url string, debug bool) (*models.ElectionYear, error) {
	tbl := parser.FindResultsTable(doc)
	if tbl == nil {
		return nil, fmt.Errorf("could not find a results table in the %d article\n   Check manually: %s", year, url)
	}
	if debug {
		parser.DumpTable(os.Stderr, tbl)
	}

	results, err := parser.ParseResultsTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("found the results table for %d but %w\n   Check: %s#Results", year, err, url)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("found the results table for %d but could not parse any rows\n   Check: %s#Results", year, url)
	}

	return &models.ElectionYear{
		Election: models.ElectionName(year),
		Year:     year,
		Results:  results,
	}, nil
}

func scrapeConstituencies(doc *goquery.Document, year int, debug bool) *models.ConstituencyReport {
	tbl := parser.FindConstituencyTable(doc)
	if tbl == nil {
		return nil
	}
	if debug {
		parser.DumpTable(os.Stderr, tbl)
	}

	constituencies, err := parser.ParseConstituencyTable(tbl)
	if err != nil {
		log.Printf("Constituency table for %d unusable: %v\n", year, err)
		return nil
	}
	if len(constituencies) == 0 {
		log.Printf("Constituency table for %d yielded no rows\n", year)
		return nil
	}

	return &models.ConstituencyReport{
		Election:       models.ElectionName(year),
		Year:           year,
		Constituencies: constituencies,
	}
}

func printSummaryTable(results []models.PartyResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Party", "Votes", "%", "Seats", "+/–"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Party, orUnknownInt(r.Votes), orUnknownFloat(r.Percentage), orUnknownInt(r.Seats), r.Change})
	}
	t.Render()
}

func printWinners(constituencies []models.Constituency) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Constituency", "Winner", "Party", "Votes"})
	for _, c := range constituencies {
		t.AppendRow(table.Row{c.Name, orUnknownStr(c.Winner.Candidate), orUnknownStr(c.Winner.Party), orUnknownInt(c.Winner.Votes)})
	}
	t.Render()
}

func orUnknownInt(n *int) string {
	if n == nil {
		return "?"
	}
	return strconv.Itoa(*n)
}

func orUnknownFloat(f *float64) string {
	if f == nil {
		return "?"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func orUnknownStr(s *string) string {
	if s == nil {
		return "?"
	}
	return *s
}

func knownYearsHint(years []int, except int) string {
	var parts []string
	for _, y := range years {
		if y != except {
			parts = append(parts, strconv.Itoa(y))
		}
	}
	return strings.Join(parts, ", ")
}

func runRender(cfg *config.Config) error {
	store := storage.NewStore(cfg.Scraper.OutputDir)

	years, err := store.LoadAllYears()
	if err != nil {
		if errors.Is(err, storage.ErrNoYears) {
			return fmt.Errorf("no election data found in '%s', run the scraper first", cfg.Scraper.OutputDir)
		}
		return err
	}

	page, err := report.Render(years, cfg.Report)
	if err != nil {
		return err
	}

	if err := os.WriteFile(store.IndexPath(), []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Report saved to '%s'\n", store.IndexPath())
	for _, y := range years {
		marker := "without"
		if y.Constituencies != nil {
			marker = "with"
		}
		fmt.Printf("  - %d (%s constituency data)\n", y.Year, marker)
	}
	return nil
}
