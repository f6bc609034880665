package i18n

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"localeboot/internal/domain"
	"localeboot/internal/ports/output"
)

// Ensure Translator implements the output.Translator port.
var _ output.T = (*Translator)(nil)

// Named placeholders as written in catalogs: "Hello, {name}!".
var placeholder = regexp.MustCompile(`\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}`)

// catalogSet is the immutable state shared by a Translator and the scoped
// translators derived from it.
type catalogSet struct {
	bundle   *i18n.Bundle
	opts     Options
	tags     map[string]language.Tag
	flat     map[string]map[string]string
	codes    []string
	matcher  language.Matcher
	matchIdx []string
}

// Translator is a thin wrapper around go-i18n's Bundle/Localizer serving the
// assembled catalogs.
type Translator struct {
	set *catalogSet

	mu     sync.RWMutex
	locale string
}

// New builds the i18n subsystem from the assembled catalogs.
func New(opts Options) (*Translator, error) {
	if opts.Aliases == nil {
		opts.Aliases = DefaultAliases()
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	fallbackTag, err := opts.Tag(opts.FallbackLocale)
	if err != nil {
		return nil, err
	}
	set := &catalogSet{
		bundle: i18n.NewBundle(fallbackTag),
		opts:   opts,
		tags:   make(map[string]language.Tag, len(opts.Messages)),
		flat:   make(map[string]map[string]string, len(opts.Messages)),
		codes:  opts.Messages.Locales(),
	}

	// The fallback comes first so the matcher defaults to it.
	matchTags := []language.Tag{fallbackTag}
	set.matchIdx = []string{opts.FallbackLocale}

	byTag := make(map[language.Tag]string, len(set.codes))
	for _, code := range set.codes {
		tag, err := opts.Tag(code)
		if err != nil {
			return nil, err
		}
		// go-i18n keeps one message set per tag.
		if other, ok := byTag[tag]; ok {
			return nil, fmt.Errorf("i18n: locales %q and %q both resolve to %s: %w", other, code, tag, domain.ErrInvalidLocale)
		}
		byTag[tag] = code
		set.tags[code] = tag
		flat, err := opts.Messages[code].Flatten()
		if err != nil {
			return nil, fmt.Errorf("i18n: %s catalog: %w", code, err)
		}
		set.flat[code] = flat

		msgs := make([]*i18n.Message, 0, len(flat))
		for id, text := range flat {
			if text == "" {
				// go-i18n drops messages without any plural form.
				continue
			}
			msgs = append(msgs, &i18n.Message{ID: id, Other: toTemplate(text)})
		}
		if err := set.bundle.AddMessages(tag, msgs...); err != nil {
			return nil, fmt.Errorf("i18n: add %s messages: %w", code, err)
		}
		slog.Debug("Catalog registered", "locale", code, "tag", tag.String(), "messages", len(msgs))

		if code != opts.FallbackLocale {
			matchTags = append(matchTags, tag)
			set.matchIdx = append(set.matchIdx, code)
		}
	}
	set.matcher = language.NewMatcher(matchTags)

	if _, ok := set.tags[opts.Locale]; !ok {
		slog.Warn("Active locale has no catalog, fallback will be used", "locale", opts.Locale, "fallback", opts.FallbackLocale)
	}

	return &Translator{set: set, locale: opts.Locale}, nil
}

// toTemplate rewrites named placeholders into go-i18n template actions.
func toTemplate(text string) string {
	if strings.Contains(text, "{{") {
		return text
	}
	return placeholder.ReplaceAllString(text, "{{.$1}}")
}

// Legacy reports whether global locale switching is enabled.
func (t *Translator) Legacy() bool { return t.set.opts.Legacy }

// FallbackLocale returns the locale consulted for missing keys.
func (t *Translator) FallbackLocale() string { return t.set.opts.FallbackLocale }

// Locale returns the active locale.
func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

// SetLocale switches the active locale. Only available in legacy mode.
func (t *Translator) SetLocale(locale string) error {
	if !t.set.opts.Legacy {
		return domain.ErrLegacyDisabled
	}
	if _, err := t.set.opts.Tag(locale); err != nil {
		return err
	}
	t.mu.Lock()
	t.locale = locale
	t.mu.Unlock()
	return nil
}

// WithLocale returns a translator sharing the same catalogs with a different
// active locale.
func (t *Translator) WithLocale(locale string) (*Translator, error) {
	if _, err := t.set.opts.Tag(locale); err != nil {
		return nil, err
	}
	return &Translator{set: t.set, locale: locale}, nil
}

// Locales returns the codes of every loaded catalog, sorted.
func (t *Translator) Locales() []string {
	out := make([]string, len(t.set.codes))
	copy(out, t.set.codes)
	return out
}

// Tag returns the language tag of a locale code.
func (t *Translator) Tag(locale string) (language.Tag, error) {
	return t.set.opts.Tag(locale)
}

// Match picks the supported locale closest to the given language
// preferences (BCP 47 tags or Accept-Language values).
func (t *Translator) Match(accept ...string) string {
	var prefs []language.Tag
	for _, a := range accept {
		tags, _, err := language.ParseAcceptLanguage(a)
		if err != nil {
			continue
		}
		prefs = append(prefs, tags...)
	}
	_, idx, _ := t.set.matcher.Match(prefs...)
	return t.set.matchIdx[idx]
}

// Message renders key for locale, trying locale, then the active locale,
// then the fallback locale. It returns domain.ErrMessageNotFound when no
// catalog in the chain defines key.
func (t *Translator) Message(locale, key string, data map[string]any) (string, error) {
	for _, code := range t.chain(locale) {
		text, ok := t.set.flat[code][key]
		if !ok {
			continue
		}
		if text == "" {
			return "", nil
		}
		localizer := i18n.NewLocalizer(t.set.bundle, t.set.tags[code].String())
		msg, err := localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    key,
			TemplateData: data,
		})
		if err != nil {
			return "", fmt.Errorf("i18n: localize %s/%s: %w", code, key, err)
		}
		return msg, nil
	}
	return "", fmt.Errorf("i18n: %q: %w", key, domain.ErrMessageNotFound)
}

// T renders the message identified by key for the given locale.
// If the key is missing in every locale of the chain, it returns the key
// itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.Message(locale, key, data)
	if err != nil {
		slog.Debug("Localize failed", "key", key, "locales", t.chain(locale), "error", err)
		return key
	}
	return msg
}

func (t *Translator) chain(locale string) []string {
	out := make([]string, 0, 3)
	seen := make(map[string]bool, 3)
	for _, code := range []string{locale, t.Locale(), t.set.opts.FallbackLocale} {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
