package importer

import "talenthui-go-backend/pkg/util/location"

// IdentityKey names one of the identity fields used for deduplication.
type IdentityKey string

const (
	KeyLinkedin IdentityKey = "linkedin"
	KeyEmail    IdentityKey = "email"
	KeyFullName IdentityKey = "full_name"
)

// Config parameterizes one import run. The legacy system spread these choices
// across nine near-identical scripts; here an "ingestion mode" is just a value
// of this struct.
type Config struct {
	// BatchSize bounds the per-request write payload. Callers needing per-row
	// failure granularity can set it to 1 at a throughput cost.
	BatchSize int

	// Limit caps accepted rows; 0 means unlimited. Reading stops early once
	// the limit is reached.
	Limit int

	// LocationMode picks the fallback policy for unmapped Hawaii cities,
	// applied uniformly for the whole run.
	LocationMode location.Mode

	// OnConflict is the upsert conflict column. Empty selects the plain
	// insert path, where a 23505 rejection counts the batch as skipped.
	OnConflict string

	// IgnoreDuplicates makes conflicting upsert rows no-ops instead of
	// updates.
	IgnoreDuplicates bool

	// IdentityPrecedence orders the keys used for dedup. Defaults to
	// linkedin, email, full name.
	IdentityPrecedence []IdentityKey

	// DedupAgainstStore prefetches persisted identity keys once per run and
	// drops rows that already exist.
	DedupAgainstStore bool

	// SuffixUsernames disambiguates colliding usernames with a numeric
	// suffix, applied after identity dedup on the surviving set.
	SuffixUsernames bool

	// SynthesizeBios fills empty bios from the template set.
	SynthesizeBios bool

	// DeterministicBios makes template choice a pure function of the inputs.
	DeterministicBios bool

	// ProgressInterval controls how often row progress is logged.
	ProgressInterval int
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = 100
	}
	if c.LocationMode == "" {
		c.LocationMode = location.ModeOpen
	}
	if len(c.IdentityPrecedence) == 0 {
		c.IdentityPrecedence = []IdentityKey{KeyLinkedin, KeyEmail, KeyFullName}
	}
	return c
}
