package model

// SkipReason explains why a row never reached the store. Out-of-region drops
// and missing-name drops are reported distinctly; the legacy importers folded
// both into one bucket.
type SkipReason string

const (
	SkipReasonMissingName SkipReason = "missing name"
	SkipReasonNotInHawaii SkipReason = "Not in Hawaii"
	SkipReasonNoIdentity  SkipReason = "no identity key"
	SkipReasonDuplicate   SkipReason = "duplicate"
)

// SkippedRow records one dropped input row.
type SkippedRow struct {
	Name   string     `json:"name"`
	Reason SkipReason `json:"reason"`
}

// ImportReport aggregates the outcome of one import run. Row-level drops are
// skips, not errors; only batch write failures land in Errors.
type ImportReport struct {
	Imported      int          `json:"imported"`
	TotalEligible int          `json:"total"`
	Skipped       []SkippedRow `json:"skipped,omitempty"`
	Errors        []string     `json:"errors"`
	Duplicates    int          `json:"duplicates"`
}

// SkipCount returns how many rows were skipped for the given reason.
func (r *ImportReport) SkipCount(reason SkipReason) int {
	n := 0
	for _, s := range r.Skipped {
		if s.Reason == reason {
			n++
		}
	}
	return n
}

// BackfillReport summarizes one pay-band backfill run.
type BackfillReport struct {
	Scanned int      `json:"scanned"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}
