package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"localeboot/internal/application"
	"localeboot/internal/infrastructure/database"
)

func newPublishCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "store the assembled catalogs in PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := rt.mount()
			if err != nil {
				return WrapError(err)
			}
			cfg := app.Config
			if err := cfg.RequireDatabase(); err != nil {
				return WrapError(err)
			}
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				return WrapError(err)
			}

			pool, err := database.NewPool(rt.ctx, cfg.DatabaseURL)
			if err != nil {
				return WrapError(err)
			}
			defer pool.Close()

			service := application.NewCatalogService(app.Source, database.NewCatalogRepository(pool))
			report, err := service.Publish(rt.ctx, app.Catalogs)
			if err != nil {
				return WrapError(err)
			}
			fmt.Fprintf(rt.opts.Out, "written: %v\nunchanged: %v\nstale: %v\n", report.Written, report.Unchanged, report.Stale)
			return nil
		},
	}
}
