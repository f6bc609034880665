package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"localeboot/internal/config"
	"localeboot/internal/ports/output"
)

const (
	verboseFlag = "verbose"
	dirFlag     = "dir"
)

// Options lets callers replace the environment-derived collaborators.
type Options struct {
	// Config is loaded from the environment when nil.
	Config *config.Config
	// Source is chosen from --dir, LOCALES_DIR or the embedded set when nil.
	Source output.FragmentSource
	Out    io.Writer
}

type runtime struct {
	ctx  context.Context
	opts Options
	dir  string
	app  *App
}

func (r *runtime) mount() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	cfg := r.opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	source := r.opts.Source
	if source == nil {
		source = selectSource(r.dir, cfg)
	}
	app, err := Mount(r.ctx, cfg, source)
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

// NewRootCommand builds the localeboot command tree.
func NewRootCommand(ctx context.Context, opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	rt := &runtime{ctx: ctx, opts: opts}

	cmd := &cobra.Command{
		Use:           "localeboot",
		Short:         "localeboot assembles locale catalogs and serves them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				fmt.Printf("Failed to get verbosity flag: %v\n", err)
				os.Exit(1)
			}

			initLogging(verbose)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.PersistentFlags().BoolP(verboseFlag, "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&rt.dir, dirFlag, "", "fragment root directory (default: embedded fragments)")

	cmd.AddCommand(
		newBuildCommand(rt),
		newLookupCommand(rt),
		newPublishCommand(rt),
		newServeCommand(rt),
	)
	return cmd
}
