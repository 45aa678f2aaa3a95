package domain

import (
	"fmt"
	"strings"
	"time"
)

// Country is the locale partition that drives feed selection and the
// default timezone assumed for naive feed timestamps.
type Country string

const (
	CountryUS Country = "US"
	CountryKR Country = "KR"
)

// Countries lists every supported locale in reporting order.
var Countries = []Country{CountryUS, CountryKR}

// ParseCountry accepts any casing ("us", "Kr") and returns the canonical tag.
func ParseCountry(s string) (Country, error) {
	c := Country(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CountryUS, CountryKR:
		return c, nil
	}
	return "", fmt.Errorf("unknown country %q", s)
}

// Section is the closed set of topical labels an article can carry.
type Section string

const (
	SectionPolitics      Section = "politics"
	SectionBusiness      Section = "business"
	SectionTechnology    Section = "technology"
	SectionSports        Section = "sports"
	SectionEntertainment Section = "entertainment"
	SectionHealth        Section = "health"
	SectionScience       Section = "science"
	SectionGeneral       Section = "general"
)

// ClassifiedSections is the fixed order used when scoring and breaking ties.
var ClassifiedSections = []Section{
	SectionPolitics,
	SectionBusiness,
	SectionTechnology,
	SectionSports,
	SectionEntertainment,
	SectionHealth,
	SectionScience,
}

// ParseSection accepts any casing and rejects labels outside the enumeration.
func ParseSection(s string) (Section, error) {
	sec := Section(strings.ToLower(strings.TrimSpace(s)))
	if sec == SectionGeneral {
		return sec, nil
	}
	for _, known := range ClassifiedSections {
		if sec == known {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

type Article struct {
	ID        string        `db:"id" json:"id"`
	Title     string        `db:"title" json:"title"`
	URL       string        `db:"url" json:"url"`
	Source    string        `db:"source" json:"source"`
	Published time.Time     `db:"published" json:"published"`
	Summary   string        `db:"summary" json:"summary"`
	Section   Section       `db:"section" json:"section"`
	Country   Country       `db:"country" json:"country"`
	LocalTZ   string        `db:"local_tz" json:"local_tz"`
	Related   []RelatedItem `db:"-" json:"related,omitempty"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// RelatedItem is one entry of an aggregator's "more coverage" list.
type RelatedItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// UpsertOutcome reports what an idempotent write did to storage.
type UpsertOutcome string

const (
	UpsertInserted  UpsertOutcome = "inserted"
	UpsertUpdated   UpsertOutcome = "updated"
	UpsertUnchanged UpsertOutcome = "unchanged"
)

// ArticleQuery filters the read side. A zero Country means any country and
// an empty Sections slice means any section.
type ArticleQuery struct {
	Country  Country
	Sections []Section
	Days     int
	Limit    int
}

type FeedStatus struct {
	FeedURL          string     `db:"feed_url" json:"feed_url"`
	LastSuccess      *time.Time `db:"last_success" json:"last_success,omitempty"`
	LastError        *time.Time `db:"last_error" json:"last_error,omitempty"`
	LastErrorMessage string     `db:"last_error_message" json:"last_error_message,omitempty"`
	SuccessCount     int64      `db:"success_count" json:"success_count"`
	ErrorCount       int64      `db:"error_count" json:"error_count"`
	LastEntriesCount int        `db:"last_entries_count" json:"last_entries_count"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
