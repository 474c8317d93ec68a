package payband

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"talenthui-go-backend/pkg/entity/model"
	"talenthui-go-backend/pkg/usecase/repository"
	"talenthui-go-backend/pkg/util/normalize"
)

// Backfiller re-derives pay bands for persisted profiles that were imported
// with an unknown band but name an employer.
type Backfiller struct {
	repo      repository.Profile
	logger    *zap.SugaredLogger
	batchSize int
}

// NewBackfiller creates a Backfiller. batchSize bounds the progress-logging
// granularity; updates are per row.
func NewBackfiller(repo repository.Profile, batchSize int) *Backfiller {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Backfiller{
		repo:      repo,
		logger:    newBackfillLogger(),
		batchSize: batchSize,
	}
}

// Run scans candidates and updates every profile whose estimated band is
// non-zero. Per-row failures are accumulated, never fatal.
func (b *Backfiller) Run(ctx context.Context) (*model.BackfillReport, error) {
	profiles, err := b.repo.ListPayBandCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	report := &model.BackfillReport{Scanned: len(profiles), Errors: []string{}}
	b.logger.Infow("pay band backfill started", "candidates", len(profiles))

	for _, p := range profiles {
		band := normalize.EstimatePayBand(p.CurrentTitle, p.CurrentCompany)
		if band == 0 {
			continue
		}

		if err := b.repo.UpdatePayBand(ctx, p.ID, band); err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("%s: %v", p.FullName, err))
			continue
		}

		report.Updated++
		if report.Updated%b.batchSize == 0 {
			b.logger.Infow("updated profiles", "count", report.Updated)
		}
	}

	b.logger.Infow("pay band backfill finished",
		"scanned", report.Scanned,
		"updated", report.Updated,
		"errors", len(report.Errors))

	return report, nil
}

func newBackfillLogger() *zap.SugaredLogger {
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
