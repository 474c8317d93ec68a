package repository

import (
	"context"

	"talenthui-go-backend/pkg/entity/model"
)

// UpsertOptions declare the conflict-key semantics for a batch write.
type UpsertOptions struct {
	// OnConflict names the unique column used to detect pre-existing rows.
	OnConflict string
	// IgnoreDuplicates makes conflicting rows no-ops instead of updates.
	IgnoreDuplicates bool
}

// Profile is the table-oriented persistence interface the pipeline writes to.
// The store behind it is opaque; errors carry a {Message, Code} shape where
// code 23505 signals a unique violation and 42P01 a missing relation.
type Profile interface {
	// FetchIdentityKeys loads the (email, linkedin_url, full_name) sets of all
	// persisted profiles. Called once per import run, not per row.
	FetchIdentityKeys(ctx context.Context) (*model.IdentitySet, error)

	// InsertBatch writes records with plain inserts and returns the number of
	// rows written.
	InsertBatch(ctx context.Context, records []*model.CandidateRecord) (int, error)

	// UpsertBatch writes records with upsert semantics on the declared
	// conflict key and returns the number of rows written.
	UpsertBatch(ctx context.Context, records []*model.CandidateRecord, opts UpsertOptions) (int, error)

	// ListPayBandCandidates returns profiles whose pay band is unknown but
	// that name an employer, for the backfill job.
	ListPayBandCandidates(ctx context.Context) ([]*model.ProfileSummary, error)

	// UpdatePayBand sets the pay band of one profile.
	UpdatePayBand(ctx context.Context, id string, band int) error

	// DeleteByEmail removes profiles matching the given email and returns the
	// number of rows removed.
	DeleteByEmail(ctx context.Context, email string) (int, error)

	// Count returns the number of persisted profiles.
	Count(ctx context.Context) (int, error)
}
