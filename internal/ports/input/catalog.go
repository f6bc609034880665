package input

import (
	"context"

	"localeboot/internal/domain/entities"
)

type CatalogUseCase interface {
	Assemble(ctx context.Context, locales []string) (entities.Catalogs, error)
	Publish(ctx context.Context, catalogs entities.Catalogs) (PublishReport, error)
}

// PublishReport lists which locales were written, which were unchanged, and
// which are stored but no longer assembled.
type PublishReport struct {
	Written   []string
	Unchanged []string
	Stale     []string
}
