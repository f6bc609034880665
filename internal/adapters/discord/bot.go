package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"

	"localeboot/internal/ports/output"
)

// Translator is what the bot needs from the i18n subsystem.
type Translator interface {
	output.T
	Message(locale, key string, data map[string]any) (string, error)
	Match(accept ...string) string
	Locales() []string
	FallbackLocale() string
	Tag(locale string) (language.Tag, error)
}

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
}

// NewBot creates a Bot answering slash commands from the catalogs behind t.
func NewBot(token string, t Translator) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	bot := &Bot{
		session: s,
		handler: NewHandler(t),
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name == commandName {
		b.handler.HandleCommand(s, i)
	}
}

// Start runs the bot until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	cmd := b.handler.Command()
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
		slog.Warn("⚠️ Failed to register command", "command", cmd.Name, "error", err)
	}

	slog.Info("🤖 Bot online, press CTRL+C to quit")
	<-ctx.Done()

	return nil
}
