package registry

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"talenthui-go-backend/pkg/adapter/controller"
	"talenthui-go-backend/pkg/infrastructure/email"
	"talenthui-go-backend/pkg/infrastructure/storage"
)

type registry struct {
	pool    *pgxpool.Pool
	archive *storage.S3Service
	notify  *email.EmailService
}

// Registry is an interface of registry
type Registry interface {
	NewController() controller.Controller
}

// RegistryOptions contains optional dependencies for registry
type RegistryOptions struct {
	Archive *storage.S3Service
	Notify  *email.EmailService
}

// New registers entire controller with dependencies
func New(pool *pgxpool.Pool) Registry {
	return &registry{pool: pool}
}

// NewWithOptions registers entire controller with additional dependencies
func NewWithOptions(pool *pgxpool.Pool, opts RegistryOptions) Registry {
	return &registry{
		pool:    pool,
		archive: opts.Archive,
		notify:  opts.Notify,
	}
}

// NewController generates controllers
func (r *registry) NewController() controller.Controller {
	return controller.Controller{
		Import: r.NewImportController(),
	}
}
