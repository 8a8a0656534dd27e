package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds scraper and report settings.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Report  ReportConfig  `yaml:"report"`
}

// ScraperConfig controls how election articles are fetched and where
// their extracted records land.
type ScraperConfig struct {
	// ArticleURLFormat builds the article URL from a four-digit year.
	ArticleURLFormat string `yaml:"article_url_format"`
	UserAgent        string `yaml:"user_agent"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	OutputDir        string `yaml:"output_dir"`
	// KnownYears is only used to suggest valid years when an article
	// turns out not to exist.
	KnownYears []int `yaml:"known_years"`
}

// ReportConfig controls the rendered HTML report.
type ReportConfig struct {
	// PartyColors are ordered substring rules; the first rule whose
	// match appears in the lowercased party name wins.
	PartyColors  []PartyColor `yaml:"party_colors"`
	DefaultColor string       `yaml:"default_color"`
}

// PartyColor maps a party-name substring to a display color.
type PartyColor struct {
	Match string `yaml:"match"`
	Color string `yaml:"color"`
}

// ArticleURL returns the article URL for a year.
func (c ScraperConfig) ArticleURL(year int) string {
	return fmt.Sprintf(c.ArticleURLFormat, year)
}

// ColorFor resolves a party name to its display color.
func (c ReportConfig) ColorFor(party string) string {
	lower := strings.ToLower(party)
	for _, rule := range c.PartyColors {
		if rule.Match != "" && strings.Contains(lower, rule.Match) {
			return rule.Color
		}
	}
	return c.DefaultColor
}

// LoadConfig loads configuration from a YAML file, starting from the
// defaults so partial files only override what they mention.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			ArticleURLFormat: "https://en.wikipedia.org/wiki/%d_Grenadian_general_election",
			UserAgent:        "Mozilla/5.0 (compatible; research-bot/1.0)",
			TimeoutSeconds:   15,
			OutputDir:        "results",
			KnownYears:       []int{1984, 1990, 1995, 1999, 2003, 2008, 2013, 2018, 2022},
		},
		Report: ReportConfig{
			PartyColors: []PartyColor{
				{Match: "national democratic congress", Color: "#FECA09"},
				{Match: "ndc", Color: "#FECA09"},
				{Match: "new national party", Color: "#026701"},
				{Match: "nnp", Color: "#026701"},
				{Match: "labour", Color: "#D50000"},
				{Match: "renaissance", Color: "#4BACC6"},
				{Match: "liberal", Color: "#F79646"},
				{Match: "progress", Color: "#C0504D"},
				{Match: "empowerment", Color: "#808080"},
				{Match: "patriotic", Color: "#CED2DB"},
				{Match: "freedom", Color: "#DC6E3E"},
				{Match: "independent", Color: "#DCDCDC"},
			},
			DefaultColor: "#94A3B8",
		},
	}
}
