package profilerepository

import (
	"context"

	"talenthui-go-backend/pkg/entity/model"
)

// FetchIdentityKeys loads every persisted identity key in one scan. Done once
// per import run so cross-run dedup never queries per row.
func (r *profileRepository) FetchIdentityKeys(ctx context.Context) (*model.IdentitySet, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT email, linkedin_url, full_name FROM profiles")
	if err != nil {
		return nil, wrapStoreErr(err, "fetch identity keys")
	}
	defer rows.Close()

	set := model.NewIdentitySet()
	for rows.Next() {
		var email, linkedin, name *string
		if err := rows.Scan(&email, &linkedin, &name); err != nil {
			return nil, wrapStoreErr(err, "scan identity keys")
		}
		if email != nil {
			set.AddEmail(*email)
		}
		if linkedin != nil {
			set.AddLinkedin(*linkedin)
		}
		if name != nil {
			set.AddFullName(*name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(err, "iterate identity keys")
	}
	return set, nil
}

// ListPayBandCandidates returns profiles with an unknown pay band that name an
// employer, the working set of the backfill job.
func (r *profileRepository) ListPayBandCandidates(ctx context.Context) ([]*model.ProfileSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, full_name, COALESCE(current_title, ''), COALESCE(current_company, ''), pay_band
		 FROM profiles
		 WHERE pay_band = 0 AND current_company IS NOT NULL`)
	if err != nil {
		return nil, wrapStoreErr(err, "list pay band candidates")
	}
	defer rows.Close()

	var out []*model.ProfileSummary
	for rows.Next() {
		var p model.ProfileSummary
		if err := rows.Scan(&p.ID, &p.FullName, &p.CurrentTitle, &p.CurrentCompany, &p.PayBand); err != nil {
			return nil, wrapStoreErr(err, "scan pay band candidate")
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(err, "iterate pay band candidates")
	}
	return out, nil
}

// Count returns the number of persisted profiles.
func (r *profileRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM profiles").Scan(&n); err != nil {
		return 0, wrapStoreErr(err, "count profiles")
	}
	return n, nil
}
