package domain

import "time"

// CollectionStats describes one pass of dedup + time-window filtering.
type CollectionStats struct {
	Fetched  int       `json:"fetched"`
	Unique   int       `json:"unique"`
	InWindow int       `json:"in_window"`
	Returned int       `json:"returned"`
	Cutoff   time.Time `json:"cutoff"`
}

// CountryRefresh holds statistics about an ingestion run for one locale.
type CountryRefresh struct {
	Country        Country         `json:"country"`
	FeedsOK        int             `json:"feeds_ok"`
	FeedsFailed    int             `json:"feeds_failed"`
	EntriesSkipped int             `json:"entries_skipped"`
	Collection     CollectionStats `json:"collection"`
	Inserted       int             `json:"inserted"`
	Updated        int             `json:"updated"`
	Unchanged      int             `json:"unchanged"`
	Published      int             `json:"published"`
	StorageError   string          `json:"storage_error,omitempty"`
	Duration       time.Duration   `json:"duration"`
}

// RefreshResult aggregates a refresh across every configured locale.
type RefreshResult struct {
	RunID     string                      `json:"run_id"`
	StartedAt time.Time                   `json:"started_at"`
	Countries map[Country]*CountryRefresh `json:"countries"`
	Duration  time.Duration               `json:"duration"`
}

// Inserted returns newly inserted article counts keyed by country.
func (r RefreshResult) Inserted() map[Country]int {
	out := make(map[Country]int, len(r.Countries))
	for c, stats := range r.Countries {
		out[c] = stats.Inserted
	}
	return out
}

// Changed reports whether the run wrote anything visible to readers.
func (r RefreshResult) Changed() bool {
	for _, stats := range r.Countries {
		if stats.Inserted > 0 || stats.Updated > 0 {
			return true
		}
	}
	return false
}
