package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCommand(rt *runtime) *cobra.Command {
	var (
		locale string
		data   map[string]string
	)
	cmd := &cobra.Command{
		Use:   "lookup KEY",
		Short: "render a message from the assembled catalogs",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := rt.mount()
			if err != nil {
				return WrapError(err)
			}
			templateData := make(map[string]any, len(data))
			for k, v := range data {
				templateData[k] = v
			}
			msg, err := app.Translator.Message(locale, args[0], templateData)
			if err != nil {
				return WrapError(err)
			}
			fmt.Fprintln(rt.opts.Out, msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale to render (default: active locale)")
	cmd.Flags().StringToStringVar(&data, "data", nil, "placeholder values, e.g. --data name=Olena")
	return cmd
}
