package profilerepository

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"talenthui-go-backend/pkg/entity/model"
	ur "talenthui-go-backend/pkg/usecase/repository"
)

// InsertBatch writes records with plain inserts. A unique-constraint rejection
// fails the whole batch; callers treat code 23505 as a benign skip.
func (r *profileRepository) InsertBatch(
	ctx context.Context,
	records []*model.CandidateRecord,
) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	sql, args := buildInsert(records, "")
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, wrapStoreErr(err, "insert batch")
	}
	return int(tag.RowsAffected()), nil
}

// UpsertBatch writes records with ON CONFLICT semantics on the declared key.
// With IgnoreDuplicates the conflicting rows become no-ops; otherwise they are
// updated in place, which is what makes re-imports idempotent.
func (r *profileRepository) UpsertBatch(
	ctx context.Context,
	records []*model.CandidateRecord,
	opts ur.UpsertOptions,
) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if opts.OnConflict == "" {
		return r.InsertBatch(ctx, records)
	}

	conflict := fmt.Sprintf("ON CONFLICT (%s) ", opts.OnConflict)
	if opts.IgnoreDuplicates {
		conflict += "DO NOTHING"
	} else {
		sets := make([]string, 0, len(profileColumns))
		for _, col := range profileColumns {
			if col == "id" || col == opts.OnConflict {
				continue
			}
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
		conflict += "DO UPDATE SET " + strings.Join(sets, ", ")
	}

	sql, args := buildInsert(records, conflict)
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, wrapStoreErr(err, "upsert batch")
	}
	return int(tag.RowsAffected()), nil
}

func buildInsert(records []*model.CandidateRecord, conflictClause string) (string, []any) {
	var (
		rows []string
		args []any
	)
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = ulid.Make().String()
		}
		placeholders := make([]string, len(profileColumns))
		for i := range profileColumns {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+i+1)
		}
		rows = append(rows, "("+strings.Join(placeholders, ", ")+")")
		args = append(args, recordArgs(rec)...)
	}

	sql := fmt.Sprintf(
		"INSERT INTO profiles (%s) VALUES %s",
		strings.Join(profileColumns, ", "),
		strings.Join(rows, ", "),
	)
	if conflictClause != "" {
		sql += " " + conflictClause
	}
	return sql, args
}
