package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"localeboot/internal/application"
	"localeboot/internal/config"
	"localeboot/internal/domain/entities"
	"localeboot/internal/infrastructure/fragments"
	"localeboot/internal/infrastructure/i18n"
	"localeboot/internal/ports/output"
)

// App is the mounted application: the assembled catalogs and the i18n
// subsystem built from them. It is read-only once mounted.
type App struct {
	Config     *config.Config
	Source     output.FragmentSource
	Catalogs   entities.Catalogs
	Translator *i18n.Translator
}

// Mount assembles every supported catalog eagerly and configures the i18n
// subsystem with them. Any failure is fatal to startup.
func Mount(ctx context.Context, cfg *config.Config, source output.FragmentSource) (*App, error) {
	service := application.NewCatalogService(source, nil)
	catalogs, err := service.Assemble(ctx, cfg.SupportedLocales)
	if err != nil {
		return nil, fmt.Errorf("assemble catalogs: %w", err)
	}

	translator, err := i18n.New(i18n.Options{
		Legacy:         cfg.Legacy,
		Locale:         cfg.DefaultLocale,
		FallbackLocale: cfg.FallbackLocale,
		Messages:       catalogs,
		Aliases:        cfg.Aliases,
	})
	if err != nil {
		return nil, fmt.Errorf("configure i18n: %w", err)
	}

	slog.Info("Catalogs mounted", "locales", catalogs.Locales(), "locale", cfg.DefaultLocale, "fallback", cfg.FallbackLocale)
	return &App{
		Config:     cfg,
		Source:     source,
		Catalogs:   catalogs,
		Translator: translator,
	}, nil
}

// selectSource picks the fragment root: the --dir flag, then LOCALES_DIR,
// then the embedded set.
func selectSource(dir string, cfg *config.Config) output.FragmentSource {
	if dir == "" {
		dir = cfg.LocalesDir
	}
	if dir == "" {
		slog.Debug("Using embedded fragments")
		return fragments.Embedded()
	}
	slog.Debug("Using fragments from directory", "dir", dir)
	return fragments.NewFSSource(os.DirFS(dir))
}
