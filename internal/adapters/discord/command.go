package discord

import (
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"localeboot/internal/domain"
	"localeboot/pkg/errmsg"
)

const (
	commandName = "i18n"
	keyOption   = "key"

	descriptionKey = "bot.command.description"
	keyOptionKey   = "bot.option.key"
)

type Handler struct {
	t Translator
}

func NewHandler(t Translator) *Handler {
	return &Handler{t: t}
}

// Command describes the slash command, localized for every catalog locale
// Discord knows about.
func (h *Handler) Command() *discordgo.ApplicationCommand {
	fallback := h.t.FallbackLocale()
	descriptions := h.localizations(descriptionKey)
	return &discordgo.ApplicationCommand{
		Name:                     commandName,
		Description:              h.t.T(fallback, descriptionKey, nil),
		DescriptionLocalizations: &descriptions,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:                     discordgo.ApplicationCommandOptionString,
				Name:                     keyOption,
				Description:              h.t.T(fallback, keyOptionKey, nil),
				DescriptionLocalizations: h.localizations(keyOptionKey),
				Required:                 true,
			},
		},
	}
}

func (h *Handler) localizations(key string) map[discordgo.Locale]string {
	out := make(map[discordgo.Locale]string)
	for _, code := range h.t.Locales() {
		loc, ok := h.discordLocale(code)
		if !ok {
			continue
		}
		msg, err := h.t.Message(code, key, nil)
		if err != nil {
			continue
		}
		out[loc] = msg
	}
	return out
}

// discordLocale maps a catalog locale to one of the locales Discord accepts.
func (h *Handler) discordLocale(code string) (discordgo.Locale, bool) {
	tag, err := h.t.Tag(code)
	if err != nil {
		return "", false
	}
	if loc := discordgo.Locale(tag.String()); discordgo.Locales[loc] != "" {
		return loc, true
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return discordgo.EnglishUS, true
	case "es":
		return discordgo.SpanishES, true
	case "pt":
		return discordgo.PortugueseBR, true
	case "zh":
		return discordgo.ChineseCN, true
	}
	return "", false
}

// HandleCommand answers /i18n key:<key> in the caller's locale.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEphemeral(s, i.Interaction, h.Reply(i.Interaction))
}

// Reply renders the answer to an /i18n interaction.
func (h *Handler) Reply(i *discordgo.Interaction) string {
	locale := h.t.Match(string(i.Locale))
	key := optionString(i.ApplicationCommandData().Options, keyOption)

	msg, err := h.t.Message(locale, key, nil)
	if err != nil {
		if !errors.Is(err, domain.ErrMessageNotFound) {
			slog.Error("Failed to render message", "key", key, "locale", locale, "error", err)
		}
		return errmsg.Message(h.t, locale, err, map[string]any{"key": key})
	}
	return msg
}
