package profilerepository

import "context"

// UpdatePayBand sets the pay band of one profile.
func (r *profileRepository) UpdatePayBand(ctx context.Context, id string, band int) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE profiles SET pay_band = $1 WHERE id = $2", band, id)
	return wrapStoreErr(err, "update pay band")
}

// DeleteByEmail removes profiles matching the given email.
func (r *profileRepository) DeleteByEmail(ctx context.Context, email string) (int, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM profiles WHERE email = $1", email)
	if err != nil {
		return 0, wrapStoreErr(err, "delete by email")
	}
	return int(tag.RowsAffected()), nil
}
