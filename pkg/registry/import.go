package registry

import (
	"talenthui-go-backend/config"
	"talenthui-go-backend/pkg/adapter/controller"
	"talenthui-go-backend/pkg/adapter/repository/profilerepository"
	"talenthui-go-backend/pkg/usecase/usecase/importer"
	"talenthui-go-backend/pkg/util/location"
)

func (r *registry) NewImportController() controller.Import {
	repo := profilerepository.NewProfileRepository(r.pool)

	cfg := config.C.Import
	im := importer.NewImporter(repo, importer.Config{
		BatchSize:         cfg.BatchSize,
		ProgressInterval:  cfg.ProgressInterval,
		LocationMode:      location.Mode(cfg.LocationMode),
		OnConflict:        cfg.ConflictKey,
		SynthesizeBios:    cfg.SynthesizeBios,
		DeterministicBios: cfg.DeterministicBios,
		DedupAgainstStore: true,
	})

	return controller.NewImportController(im, r.archive, r.notify)
}
