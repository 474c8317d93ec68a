package profilerepository

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"talenthui-go-backend/pkg/entity/model"
	ur "talenthui-go-backend/pkg/usecase/repository"
)

// profileColumns is the column order used by every batch write. The relation
// keeps the historical parallel education arrays; the model's structured
// education list is flattened at this boundary.
var profileColumns = []string{
	"id", "full_name", "username",
	"email", "personal_email", "work_email", "phone",
	"linkedin_url", "github_url", "twitter_url",
	"current_title", "current_company", "company",
	"years_experience", "skills",
	"school", "education", "education_websites", "education_linkedin",
	"city", "state", "island", "location",
	"bio", "avatar_url", "visibility", "pay_band",
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates the pgx-backed profile store.
func NewProfileRepository(pool *pgxpool.Pool) ur.Profile {
	return &profileRepository{pool: pool}
}

// wrapStoreErr converts pgx errors into the store's {Message, Code} shape so
// callers can branch on SQLSTATE without importing the driver.
func wrapStoreErr(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return &model.StoreError{Message: pgErr.Message, Code: pgErr.Code}
	}
	return errors.Wrap(err, op)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullList(xs []string) any {
	if len(xs) == 0 {
		return nil
	}
	return xs
}

// educationArrays flattens the structured education list back into the three
// parallel array columns the relation stores.
func educationArrays(entries []model.EducationEntry) (schools, websites, linkedins []string) {
	for _, e := range entries {
		schools = append(schools, e.School)
		websites = append(websites, e.Website)
		linkedins = append(linkedins, e.LinkedinURL)
	}
	return schools, websites, linkedins
}

func recordArgs(rec *model.CandidateRecord) []any {
	schools, websites, linkedins := educationArrays(rec.Education)
	return []any{
		rec.ID,
		rec.FullName,
		nullString(rec.Username),
		nullString(rec.Email),
		nullString(rec.PersonalEmail),
		nullString(rec.WorkEmail),
		nullString(rec.Phone),
		nullString(rec.LinkedinURL),
		nullString(rec.GithubURL),
		nullString(rec.TwitterURL),
		nullString(rec.CurrentTitle),
		nullString(rec.CurrentCompany),
		nullString(rec.CurrentCompany), // historical alias column
		rec.YearsExperience,
		nullList(rec.Skills),
		nullString(rec.School),
		nullList(schools),
		nullList(websites),
		nullList(linkedins),
		nullString(rec.City),
		nullString(rec.State),
		nullString(rec.Island),
		nullString(rec.Location),
		nullString(rec.Bio),
		rec.AvatarURL,
		rec.Visibility,
		rec.PayBand,
	}
}
