package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"talenthui-go-backend/pkg/entity/model"
	"talenthui-go-backend/pkg/usecase/repository"
	"talenthui-go-backend/pkg/usecase/usecase/importer"
	"talenthui-go-backend/pkg/util/location"
)

// fakeProfileRepo is an in-memory stand-in for the persistence interface. It
// keys stored records by username so upserts behave like the real conflict
// target, and can be told to fail specific batch writes.
type fakeProfileRepo struct {
	stored      []*model.CandidateRecord
	batchCalls  int
	failBatches map[int]error
	fetchErr    error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{failBatches: map[int]error{}}
}

func (f *fakeProfileRepo) FetchIdentityKeys(_ context.Context) (*model.IdentitySet, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	set := model.NewIdentitySet()
	for _, rec := range f.stored {
		set.AddEmail(rec.Email)
		set.AddLinkedin(rec.LinkedinURL)
		set.AddFullName(rec.FullName)
	}
	return set, nil
}

func (f *fakeProfileRepo) InsertBatch(_ context.Context, records []*model.CandidateRecord) (int, error) {
	f.batchCalls++
	if err, ok := f.failBatches[f.batchCalls]; ok {
		return 0, err
	}
	f.stored = append(f.stored, records...)
	return len(records), nil
}

func (f *fakeProfileRepo) UpsertBatch(_ context.Context, records []*model.CandidateRecord, _ repository.UpsertOptions) (int, error) {
	f.batchCalls++
	if err, ok := f.failBatches[f.batchCalls]; ok {
		return 0, err
	}
	for _, rec := range records {
		replaced := false
		for i, have := range f.stored {
			if have.Username == rec.Username {
				f.stored[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			f.stored = append(f.stored, rec)
		}
	}
	return len(records), nil
}

func (f *fakeProfileRepo) ListPayBandCandidates(_ context.Context) ([]*model.ProfileSummary, error) {
	return nil, nil
}

func (f *fakeProfileRepo) UpdatePayBand(_ context.Context, _ string, _ int) error {
	return nil
}

func (f *fakeProfileRepo) DeleteByEmail(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (f *fakeProfileRepo) Count(_ context.Context) (int, error) {
	return len(f.stored), nil
}

const csvHeader = "First name,Last name,Personal Email,Work Email,LinkedIn,Location,Current Title,Current Org Name,Skills,Education"

func csvOf(rows ...string) string {
	return csvHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestImporterRun(t *testing.T) {
	tests := []struct {
		name    string
		arrange func() (*fakeProfileRepo, *importer.Importer, string)
		act     func(im *importer.Importer, input string) (*model.ImportReport, error)
		assert  func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error)
	}{
		{
			name: "Imports a Honolulu candidate and skips a mainland one",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				im := importer.NewImporter(repo, importer.Config{
					OnConflict:        "username",
					DedupAgainstStore: true,
				})
				input := csvOf(
					`Kai,Nakamura,kai@example.com,,https://linkedin.com/in/kai,"Honolulu, Hawaii",Software Engineer,Google,"Go, SQL",UH Manoa`,
					`Sam,Lee,sam@example.com,,,"Austin, Texas",Software Engineer,Dell,,`,
				)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 1, report.Imported)
				assert.Equal(t, 1, report.TotalEligible)
				if assert.Len(t, report.Skipped, 1) {
					assert.Equal(t, "Sam Lee", report.Skipped[0].Name)
					assert.Equal(t, model.SkipReasonNotInHawaii, report.Skipped[0].Reason)
				}

				if assert.Len(t, repo.stored, 1) {
					rec := repo.stored[0]
					assert.Equal(t, "Kai Nakamura", rec.FullName)
					assert.Equal(t, "kai-nakamura", rec.Username)
					assert.Equal(t, "Oahu", rec.Island)
					assert.Equal(t, "Honolulu", rec.City)
					assert.Equal(t, "Hawaii", rec.State)
					assert.Equal(t, 6, rec.PayBand)
					assert.Equal(t, "kai@example.com", rec.Email)
					assert.Equal(t, []string{"Go", "SQL"}, rec.Skills)
					assert.Equal(t, "UH Manoa", rec.School)
				}
			},
		},
		{
			name: "Skips rows without a name",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				im := importer.NewImporter(repo, importer.Config{OnConflict: "username"})
				input := csvOf(
					`,,missing@example.com,,,"Honolulu, Hawaii",Engineer,Acme,,`,
				)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 0, report.TotalEligible)
				if assert.Len(t, report.Skipped, 1) {
					assert.Equal(t, model.SkipReasonMissingName, report.Skipped[0].Reason)
				}
			},
		},
		{
			name: "A single name part is eligible but yields no username",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				im := importer.NewImporter(repo, importer.Config{OnConflict: "username"})
				input := csvOf(
					`Madonna,,m@example.com,,,"Honolulu, Hawaii",Singer,,,`,
				)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 1, report.TotalEligible)
				assert.Equal(t, 1, report.Imported)
				if assert.Len(t, repo.stored, 1) {
					assert.Equal(t, "Madonna", repo.stored[0].FullName)
					assert.Equal(t, "", repo.stored[0].Username)
				}
			},
		},
		{
			name: "Re-importing the same file writes nothing new",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				im := importer.NewImporter(repo, importer.Config{
					OnConflict:        "username",
					DedupAgainstStore: true,
				})
				input := csvOf(
					`Kai,Nakamura,kai@example.com,,,"Honolulu, Hawaii",Software Engineer,Google,,`,
				)
				first, err := im.Run(context.Background(), strings.NewReader(input))
				assert.Nil(t, err)
				assert.Equal(t, 1, first.Imported)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 0, report.Imported)
				assert.Equal(t, 1, report.Duplicates)
				assert.Len(t, repo.stored, 1)
			},
		},
		{
			name: "A failed batch does not abort the remaining batches",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				repo.failBatches[2] = &model.StoreError{Message: "connection reset"}
				im := importer.NewImporter(repo, importer.Config{
					BatchSize:  2,
					OnConflict: "username",
				})
				input := csvOf(
					`A,One,a1@example.com,,,"Honolulu, Hawaii",Engineer,Acme,,`,
					`B,Two,b2@example.com,,,"Hilo, Hawaii",Engineer,Acme,,`,
					`C,Three,c3@example.com,,,"Kihei, Hawaii",Engineer,Acme,,`,
					`D,Four,d4@example.com,,,"Lihue, Hawaii",Engineer,Acme,,`,
					`E,Five,e5@example.com,,,"Kaunakakai, Hawaii",Engineer,Acme,,`,
				)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 5, report.TotalEligible)
				assert.Equal(t, 3, report.Imported)
				if assert.Len(t, report.Errors, 1) {
					assert.Contains(t, report.Errors[0], "batch 2")
					assert.Contains(t, report.Errors[0], "connection reset")
				}
			},
		},
		{
			name: "Unique violation on the insert path counts the batch as duplicates",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				repo.failBatches[1] = &model.StoreError{
					Message: "duplicate key value violates unique constraint",
					Code:    model.CodeUniqueViolation,
				}
				im := importer.NewImporter(repo, importer.Config{})
				input := csvOf(
					`Kai,Nakamura,kai@example.com,,,"Honolulu, Hawaii",Software Engineer,Google,,`,
				)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 0, report.Imported)
				assert.Equal(t, 1, report.Duplicates)
				assert.Empty(t, report.Errors)
				if assert.Len(t, report.Skipped, 1) {
					assert.Equal(t, model.SkipReasonDuplicate, report.Skipped[0].Reason)
				}
			},
		},
		{
			name: "Row limit stops reading early",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				im := importer.NewImporter(repo, importer.Config{
					Limit:      1,
					OnConflict: "username",
				})
				input := csvOf(
					`A,One,a1@example.com,,,"Honolulu, Hawaii",Engineer,Acme,,`,
					`B,Two,b2@example.com,,,"Hilo, Hawaii",Engineer,Acme,,`,
				)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 1, report.TotalEligible)
				assert.Equal(t, 1, report.Imported)
			},
		},
		{
			name: "Strict mode keeps an unmapped Hawaii row on Oahu",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				im := importer.NewImporter(repo, importer.Config{
					LocationMode: location.ModeStrict,
					OnConflict:   "username",
				})
				input := csvOf(
					`Noa,Kealoha,noa@example.com,,,"Volcano, Hawaii",Teacher,,,`,
				)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 1, report.Imported)
				if assert.Len(t, repo.stored, 1) {
					assert.Equal(t, "Oahu", repo.stored[0].Island)
					assert.Equal(t, "Volcano", repo.stored[0].City)
				}
			},
		},
		{
			name: "Malformed row is reported and the run continues",
			arrange: func() (*fakeProfileRepo, *importer.Importer, string) {
				repo := newFakeProfileRepo()
				im := importer.NewImporter(repo, importer.Config{OnConflict: "username"})
				input := csvOf(
					`Kai,Nakamura,kai@example.com,,,"Honolulu, Hawaii",Engineer,Acme,,`,
					`Broken,"unterminated`,
				)
				return repo, im, input
			},
			act: func(im *importer.Importer, input string) (*model.ImportReport, error) {
				return im.Run(context.Background(), strings.NewReader(input))
			},
			assert: func(t *testing.T, repo *fakeProfileRepo, report *model.ImportReport, err error) {
				assert.Nil(t, err)
				assert.Equal(t, 1, report.Imported)
				assert.Len(t, report.Errors, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, im, input := tt.arrange()
			report, err := tt.act(im, input)
			tt.assert(t, repo, report, err)
		})
	}
}

func TestImporterRunFailedPrefetch(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.fetchErr = errors.New("dial tcp 127.0.0.1:5433: connect: connection refused")
	im := importer.NewImporter(repo, importer.Config{DedupAgainstStore: true})
	input := csvOf(
		`Kai,Nakamura,kai@example.com,,,"Honolulu, Hawaii",Software Engineer,Google,,`,
	)

	report, err := im.Run(context.Background(), strings.NewReader(input))

	assert.Nil(t, report)
	assert.True(t, errors.Is(err, importer.ErrStoreUnavailable))
	assert.False(t, errors.Is(err, importer.ErrUnreadableInput))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestImporterSynthesizesBios(t *testing.T) {
	repo := newFakeProfileRepo()
	im := importer.NewImporter(repo, importer.Config{
		OnConflict:        "username",
		SynthesizeBios:    true,
		DeterministicBios: true,
	})
	input := csvOf(
		`Kai,Nakamura,kai@example.com,,,"Honolulu, Hawaii",Software Engineer,Google,,UH Manoa`,
	)

	report, err := im.Run(context.Background(), strings.NewReader(input))

	assert.Nil(t, err)
	assert.Equal(t, 1, report.Imported)
	if assert.Len(t, repo.stored, 1) {
		assert.NotEmpty(t, repo.stored[0].Bio)
		assert.Contains(t, repo.stored[0].Bio, "Software Engineer")
	}
}
