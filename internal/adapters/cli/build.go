package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"localeboot/internal/domain/entities"
)

func newBuildCommand(rt *runtime) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "assemble catalogs and print their checksums",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := rt.mount()
			if err != nil {
				return WrapError(err)
			}
			return WrapError(writeCatalogs(rt, app.Catalogs, outDir))
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write <locale>.json files into this directory")
	return cmd
}

func writeCatalogs(rt *runtime, catalogs entities.Catalogs, outDir string) error {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	for _, locale := range catalogs.Locales() {
		messages := catalogs[locale]
		sum, err := entities.Checksum(messages)
		if err != nil {
			return err
		}
		flat, err := messages.Flatten()
		if err != nil {
			return fmt.Errorf("%s catalog: %w", locale, err)
		}
		fmt.Fprintf(rt.opts.Out, "%s\t%s\t%d\n", locale, sum, len(flat))

		if outDir == "" {
			continue
		}
		data, err := json.MarshalIndent(messages, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", locale, err)
		}
		target := filepath.Join(outDir, locale+".json")
		if err := os.WriteFile(target, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		slog.Info("Catalog written", "locale", locale, "path", target)
	}
	return nil
}
