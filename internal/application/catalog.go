package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"localeboot/internal/domain"
	"localeboot/internal/domain/entities"
	"localeboot/internal/ports/input"
	"localeboot/internal/ports/output"
)

var _ input.CatalogUseCase = (*CatalogService)(nil)

type CatalogService struct {
	source output.FragmentSource
	repo   output.CatalogRepository
}

// NewCatalogService wires the catalog use cases. repo may be nil when
// catalogs are never published.
func NewCatalogService(source output.FragmentSource, repo output.CatalogRepository) *CatalogService {
	return &CatalogService{
		source: source,
		repo:   repo,
	}
}

// Assemble folds, for each requested locale, every fragment of that locale
// into an empty catalog, in path order. A locale without fragments gets an
// empty catalog.
func (s *CatalogService) Assemble(ctx context.Context, locales []string) (entities.Catalogs, error) {
	fragments, err := s.source.Fragments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fragments: %w", err)
	}
	entities.SortFragments(fragments)

	catalogs := make(entities.Catalogs, len(locales))
	for _, locale := range locales {
		catalogs[locale] = entities.Messages{}
	}

	for _, f := range fragments {
		target, ok := catalogs[f.Locale]
		if !ok {
			slog.Debug("Skipping fragment for unsupported locale", "path", f.Path, "locale", f.Locale)
			continue
		}
		entities.DeepMerge(target, f.Messages)
		slog.Debug("Merged fragment", "path", f.Path, "locale", f.Locale)
	}

	for _, locale := range locales {
		if len(catalogs[locale]) == 0 {
			slog.Debug("No fragments for locale", "locale", locale)
		}
	}
	return catalogs, nil
}

// Publish stores every catalog, skipping locales whose stored checksum is
// already current.
func (s *CatalogService) Publish(ctx context.Context, catalogs entities.Catalogs) (input.PublishReport, error) {
	var report input.PublishReport
	if s.repo == nil {
		return report, errors.New("publish: no catalog repository configured")
	}

	for _, locale := range catalogs.Locales() {
		messages := catalogs[locale]
		sum, err := entities.Checksum(messages)
		if err != nil {
			return report, fmt.Errorf("publish %s: %w", locale, err)
		}

		stored, err := s.repo.FindByLocale(ctx, locale)
		switch {
		case err == nil && stored.Checksum == sum:
			slog.Info("Catalog unchanged", "locale", locale, "checksum", sum)
			report.Unchanged = append(report.Unchanged, locale)
			continue
		case err != nil && !errors.Is(err, domain.ErrCatalogNotFound):
			return report, fmt.Errorf("publish %s: %w", locale, err)
		}

		if err := s.repo.Save(ctx, output.StoredCatalog{Locale: locale, Messages: messages, Checksum: sum}); err != nil {
			return report, fmt.Errorf("publish %s: %w", locale, err)
		}
		slog.Info("Catalog published", "locale", locale, "checksum", sum)
		report.Written = append(report.Written, locale)
	}

	stored, err := s.repo.ListLocales(ctx)
	if err != nil {
		return report, fmt.Errorf("publish: %w", err)
	}
	for _, locale := range stored {
		if _, ok := catalogs[locale]; !ok {
			slog.Warn("Stored catalog is no longer assembled", "locale", locale)
			report.Stale = append(report.Stale, locale)
		}
	}
	return report, nil
}
