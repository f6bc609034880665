package output

import (
	"context"

	"localeboot/internal/domain/entities"
)

// StoredCatalog is a catalog as persisted by a CatalogRepository.
type StoredCatalog struct {
	Locale   string
	Messages entities.Messages
	Checksum string
}

type CatalogRepository interface {
	Save(ctx context.Context, catalog StoredCatalog) error
	FindByLocale(ctx context.Context, locale string) (*StoredCatalog, error)
	ListLocales(ctx context.Context) ([]string, error)
}
