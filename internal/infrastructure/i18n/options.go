package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"localeboot/internal/domain"
	"localeboot/internal/domain/entities"
)

// Options configures the i18n subsystem.
type Options struct {
	// Legacy enables the global, mutable active locale (SetLocale).
	Legacy bool
	// Locale is the active locale code.
	Locale string
	// FallbackLocale is consulted when a key is missing in the active locale.
	FallbackLocale string
	// Messages holds the assembled catalog of every supported locale.
	Messages entities.Catalogs
	// Aliases maps locale codes that are not BCP 47 tags to one ("ua" -> "uk").
	Aliases map[string]string
}

// DefaultAliases covers locale codes used by the application that are not
// valid language tags.
func DefaultAliases() map[string]string {
	return map[string]string{"ua": "uk"}
}

func (o Options) validate() error {
	if strings.TrimSpace(o.Locale) == "" {
		return fmt.Errorf("i18n: locale is required: %w", domain.ErrInvalidLocale)
	}
	if strings.TrimSpace(o.FallbackLocale) == "" {
		return fmt.Errorf("i18n: fallback locale is required: %w", domain.ErrInvalidLocale)
	}
	if _, ok := o.Messages[o.FallbackLocale]; !ok {
		return fmt.Errorf("i18n: fallback locale %q: %w", o.FallbackLocale, domain.ErrMissingCatalog)
	}
	return nil
}

// Tag resolves a locale code to a language tag, honouring aliases.
func (o Options) Tag(code string) (language.Tag, error) {
	name := code
	if alias, ok := o.Aliases[code]; ok {
		name = alias
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, fmt.Errorf("i18n: locale %q: %w", code, domain.ErrInvalidLocale)
	}
	return tag, nil
}
