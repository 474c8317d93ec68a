package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"talenthui-go-backend/pkg/entity/model"
	"talenthui-go-backend/pkg/usecase/repository"
	"talenthui-go-backend/pkg/util/bio"
	"talenthui-go-backend/pkg/util/location"
	"talenthui-go-backend/pkg/util/normalize"
)

// Fatal Run failures, distinguished so the transport layer can map input
// problems and store problems to different status codes.
var (
	// ErrUnreadableInput marks a CSV stream that cannot be read at all.
	ErrUnreadableInput = errors.New("unreadable CSV input")
	// ErrStoreUnavailable marks a persistence failure before any write.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Importer is the batch ingestion orchestrator: it streams CSV rows, applies
// the location resolver and field normalizers per row, filters ineligible
// rows, deduplicates the eligible set, and writes fixed-size batches through
// the persistence interface.
//
// Eligible records are buffered in memory before writing. That is fine for the
// observed volumes (thousands of rows) but is a scalability limit, not an
// unbounded design.
type Importer struct {
	repo     repository.Profile
	resolver *location.Resolver
	bio      *bio.Synthesizer
	logger   *zap.SugaredLogger
	cfg      Config
}

// NewImporter creates an Importer for one ingestion mode.
func NewImporter(repo repository.Profile, cfg Config) *Importer {
	cfg = cfg.withDefaults()
	return &Importer{
		repo:     repo,
		resolver: location.NewResolver(cfg.LocationMode),
		bio:      bio.New(cfg.DeterministicBios, 1),
		logger:   newImporterLogger(),
		cfg:      cfg,
	}
}

// Run executes one import over a CSV stream and returns the aggregated report.
// Row-level drops are skips; batch write failures are collected as errors and
// never abort the run. Only an unreadable source or a failed identity-key
// prefetch is fatal.
func (im *Importer) Run(ctx context.Context, r io.Reader) (*model.ImportReport, error) {
	report := &model.ImportReport{Errors: []string{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrUnreadableInput, err)
	}
	cols := headerIndex(header)

	var eligible []*model.CandidateRecord
	rowNum := 1

	for {
		if im.cfg.Limit > 0 && len(eligible) >= im.cfg.Limit {
			im.logger.Infow("row limit reached, stopping read", "limit", im.cfg.Limit)
			break
		}

		raw, err := reader.Read()
		rowNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
			return nil, fmt.Errorf("%w: failed to read row %d: %v", ErrUnreadableInput, rowNum, err)
		}

		row := newRow(cols, raw)
		rec, skip := im.buildCandidate(row)
		if skip != "" {
			report.Skipped = append(report.Skipped, model.SkippedRow{
				Name:   rowName(row),
				Reason: skip,
			})
			continue
		}

		eligible = append(eligible, rec)
		if len(eligible)%im.cfg.ProgressInterval == 0 {
			im.logger.Infow("processed candidates", "count", len(eligible))
		}
	}

	var existing *model.IdentitySet
	if im.cfg.DedupAgainstStore {
		existing, err = im.repo.FetchIdentityKeys(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to prefetch identity keys: %w", ErrStoreUnavailable, err)
		}
		im.logger.Infow("prefetched identity keys", "keys", existing.Len())
	}

	unique, removed, noKey := dedupe(eligible, existing, im.cfg.IdentityPrecedence)
	report.Duplicates = removed
	for _, rec := range noKey {
		report.Skipped = append(report.Skipped, model.SkippedRow{
			Name:   rec.FullName,
			Reason: model.SkipReasonNoIdentity,
		})
	}

	if im.cfg.SuffixUsernames {
		suffixUsernames(unique)
	}

	report.TotalEligible = len(unique)
	im.logger.Infow("eligible candidates collected",
		"eligible", len(unique), "duplicates", removed)

	im.writeBatches(ctx, unique, report)

	im.logger.Infow("import finished",
		"imported", report.Imported,
		"eligible", report.TotalEligible,
		"skipped", len(report.Skipped),
		"errors", len(report.Errors))

	return report, nil
}

// writeBatches performs the chunked writes. A failed batch records its error
// and the run continues; a 23505 rejection on the insert path is benign and
// counts the batch as skipped duplicates.
func (im *Importer) writeBatches(
	ctx context.Context,
	records []*model.CandidateRecord,
	report *model.ImportReport,
) {
	var batchErrs *multierror.Error

	for i := 0; i < len(records); i += im.cfg.BatchSize {
		end := i + im.cfg.BatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]
		batchNum := i/im.cfg.BatchSize + 1

		var (
			written int
			err     error
		)
		if im.cfg.OnConflict != "" {
			written, err = im.repo.UpsertBatch(ctx, batch, repository.UpsertOptions{
				OnConflict:       im.cfg.OnConflict,
				IgnoreDuplicates: im.cfg.IgnoreDuplicates,
			})
		} else {
			written, err = im.repo.InsertBatch(ctx, batch)
		}

		if err != nil {
			if model.IsUniqueViolation(err) {
				report.Duplicates += len(batch)
				for _, rec := range batch {
					report.Skipped = append(report.Skipped, model.SkippedRow{
						Name:   rec.FullName,
						Reason: model.SkipReasonDuplicate,
					})
				}
				im.logger.Warnw("batch skipped, duplicates", "batch", batchNum)
				continue
			}
			batchErrs = multierror.Append(batchErrs,
				fmt.Errorf("batch %d: %w", batchNum, err))
			im.logger.Errorw("batch write failed", "batch", batchNum, "error", err)
			continue
		}

		report.Imported += written
		im.logger.Infow("batch written", "batch", batchNum, "rows", written)
	}

	if batchErrs != nil {
		for _, err := range batchErrs.Errors {
			report.Errors = append(report.Errors, err.Error())
		}
	}
}

// buildCandidate normalizes one CSV row. A non-empty SkipReason means the row
// is dropped, never erred.
func (im *Importer) buildCandidate(row row) (*model.CandidateRecord, model.SkipReason) {
	firstName := row.get("First name")
	lastName := row.get("Last name")
	fullName := strings.TrimSpace(firstName + " " + lastName)
	if fullName == "" {
		return nil, model.SkipReasonMissingName
	}

	rawLocation := row.get("Location")
	if rawLocation == "" {
		rawLocation = row.get("City")
	}
	place := im.resolver.Resolve(rawLocation)
	if place.Island == "" && place.State != "Hawaii" {
		return nil, model.SkipReasonNotInHawaii
	}

	skills := normalize.ParseList(row.get("Skills"))
	education := zipEducation(
		normalize.ParseList(row.get("Education")),
		normalize.ParseList(row.get("Education Website")),
		normalize.ParseList(row.get("Education LinkedIn")),
	)

	personalEmail := row.get("Personal Email")
	workEmail := row.get("Work Email")
	email := personalEmail
	if email == "" {
		email = workEmail
	}

	state := place.State
	if state == "" {
		state = "Hawaii"
	}

	title := row.get("Current Title")
	company := row.get("Current Org Name")

	rec := &model.CandidateRecord{
		FullName:        fullName,
		Username:        normalize.DeriveUsername(firstName, lastName),
		Email:           email,
		PersonalEmail:   personalEmail,
		WorkEmail:       workEmail,
		Phone:           row.get("Phone Numbers"),
		LinkedinURL:     row.get("LinkedIn"),
		GithubURL:       row.get("GitHub"),
		TwitterURL:      row.get("X"),
		CurrentTitle:    title,
		CurrentCompany:  company,
		YearsExperience: normalize.EstimateYearsExperience(skills),
		Skills:          skills,
		Education:       education,
		City:            place.City,
		State:           state,
		Island:          place.Island,
		Location:        rawLocation,
		AvatarURL:       model.DefaultAvatarURL,
		Visibility:      true,
		PayBand:         normalize.EstimatePayBand(title, company),
	}
	if len(education) > 0 {
		rec.School = education[0].School
	}

	if im.cfg.SynthesizeBios {
		rec.Bio = im.bio.Synthesize(title, company, rec.School, place.Island)
	}

	return rec, ""
}

// zipEducation pairs the three parallel CSV columns into structured entries.
// Index correspondence is assumed by the source data; entries beyond the
// school list are dropped rather than misaligned.
func zipEducation(schools, websites, linkedins []string) []model.EducationEntry {
	entries := make([]model.EducationEntry, 0, len(schools))
	for i, school := range schools {
		e := model.EducationEntry{School: school}
		if i < len(websites) {
			e.Website = websites[i]
		}
		if i < len(linkedins) {
			e.LinkedinURL = linkedins[i]
		}
		entries = append(entries, e)
	}
	return entries
}

type row struct {
	cols   map[string]int
	fields []string
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}

func newRow(cols map[string]int, fields []string) row {
	return row{cols: cols, fields: fields}
}

func (r row) get(col string) string {
	idx, ok := r.cols[col]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func rowName(r row) string {
	name := strings.TrimSpace(r.get("First name") + " " + r.get("Last name"))
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func newImporterLogger() *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)

	return zap.New(core).Sugar()
}
