package cli

import (
	"github.com/spf13/cobra"

	"localeboot/internal/adapters/discord"
)

func newServeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "answer /i18n slash commands on Discord",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := rt.mount()
			if err != nil {
				return WrapError(err)
			}
			if err := app.Config.RequireToken(); err != nil {
				return WrapError(err)
			}
			bot, err := discord.NewBot(app.Config.Token, app.Translator)
			if err != nil {
				return WrapError(err)
			}
			return WrapError(bot.Start(rt.ctx))
		},
	}
}
