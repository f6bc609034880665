package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"

	"localeboot/internal/domain"
	"localeboot/internal/domain/entities"
)

func testCatalogs() entities.Catalogs {
	return entities.Catalogs{
		"en": {
			"app": entities.Messages{
				"title":    "Before & After",
				"greeting": "Hello, {name}!",
				"only_en":  "English only",
			},
			"nav": entities.Messages{"home": "Home"},
		},
		"ua": {
			"app": entities.Messages{
				"title":    "До та після",
				"greeting": "Привіт, {name}!",
			},
			"nav":   entities.Messages{"home": "Головна"},
			"empty": "",
		},
	}
}

func newTestTranslator(t *testing.T, legacy bool) *Translator {
	t.Helper()
	tr, err := New(Options{
		Legacy:         legacy,
		Locale:         "ua",
		FallbackLocale: "en",
		Messages:       testCatalogs(),
	})
	require.NoError(t, err)
	return tr
}

func TestTranslate(t *testing.T) {
	tr := newTestTranslator(t, false)

	require.Equal(t, "Головна", tr.T("", "nav.home", nil))
	require.Equal(t, "Home", tr.T("en", "nav.home", nil))
	require.Equal(t, "Головна", tr.T("ua", "nav.home", nil))
	require.Equal(t, "Before & After", tr.T("en", "app.title", nil))
}

func TestTranslateFallback(t *testing.T) {
	tr := newTestTranslator(t, false)

	require.Equal(t, "English only", tr.T("ua", "app.only_en", nil))
	require.Equal(t, "missing.key", tr.T("ua", "missing.key", nil))
	require.Equal(t, "", tr.T("ua", "", nil))
	require.Equal(t, "", tr.T("ua", "empty", nil))

	_, err := tr.Message("ua", "missing.key", nil)
	require.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestTranslateUnknownLocaleUsesActive(t *testing.T) {
	tr := newTestTranslator(t, false)
	require.Equal(t, "Головна", tr.T("de", "nav.home", nil))
}

func TestTranslateInterpolation(t *testing.T) {
	tr := newTestTranslator(t, false)

	require.Equal(t, "Hello, Olena!", tr.T("en", "app.greeting", map[string]any{"name": "Olena"}))
	require.Equal(t, "Привіт, Olena!", tr.T("ua", "app.greeting", map[string]any{"name": "Olena"}))
}

func TestToTemplate(t *testing.T) {
	tests := map[string]string{
		"Hello, {name}!":    "Hello, {{.name}}!",
		"{ a } and {b_2}":   "{{.a}} and {{.b_2}}",
		"already {{.x}}":    "already {{.x}}",
		"no placeholders":   "no placeholders",
		"{not valid} {1st}": "{not valid} {1st}",
	}
	for in, want := range tests {
		require.Equal(t, want, toTemplate(in), in)
	}
}

func TestLegacyMode(t *testing.T) {
	tr := newTestTranslator(t, false)
	require.ErrorIs(t, tr.SetLocale("en"), domain.ErrLegacyDisabled)
	require.False(t, tr.Legacy())
	require.Equal(t, "ua", tr.Locale())

	scoped, err := tr.WithLocale("en")
	require.NoError(t, err)
	require.Equal(t, "Home", scoped.T("", "nav.home", nil))
	require.Equal(t, "ua", tr.Locale())

	legacy := newTestTranslator(t, true)
	require.True(t, legacy.Legacy())
	require.NoError(t, legacy.SetLocale("en"))
	require.Equal(t, "en", legacy.Locale())
	require.Equal(t, "Home", legacy.T("", "nav.home", nil))

	require.ErrorIs(t, legacy.SetLocale("not a tag!"), domain.ErrInvalidLocale)
}

func TestMatch(t *testing.T) {
	tr := newTestTranslator(t, false)

	require.Equal(t, "ua", tr.Match("uk"))
	require.Equal(t, "ua", tr.Match("uk-UA"))
	require.Equal(t, "en", tr.Match("en-GB"))
	require.Equal(t, "en", tr.Match("fr"))
	require.Equal(t, "en", tr.Match())
	require.Equal(t, "ua", tr.Match("fr-FR,uk;q=0.8"))
}

func TestLocalesAndTags(t *testing.T) {
	tr := newTestTranslator(t, false)
	require.Equal(t, []string{"en", "ua"}, tr.Locales())
	require.Equal(t, "en", tr.FallbackLocale())

	tag, err := tr.Tag("ua")
	require.NoError(t, err)
	require.Equal(t, "uk", tag.String())
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"no locale", Options{FallbackLocale: "en", Messages: testCatalogs()}, domain.ErrInvalidLocale},
		{"no fallback", Options{Locale: "ua", Messages: testCatalogs()}, domain.ErrInvalidLocale},
		{"fallback without catalog", Options{Locale: "ua", FallbackLocale: "de", Messages: testCatalogs()}, domain.ErrMissingCatalog},
		{"invalid code", Options{Locale: "en", FallbackLocale: "en", Messages: entities.Catalogs{"en": {}, "not a tag!": {}}}, domain.ErrInvalidLocale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewWithEmptyCatalogs(t *testing.T) {
	tr, err := New(Options{
		Locale:         "ua",
		FallbackLocale: "en",
		Messages:       entities.Catalogs{"en": {}, "ua": {}},
	})
	require.NoError(t, err)
	require.Equal(t, "nav.home", tr.T("ua", "nav.home", nil))
}

func TestNewRejectsLocalesSharingATag(t *testing.T) {
	catalogs := entities.Catalogs{
		"en": {"k": "en"},
		"ua": {"k": "ua"},
		"uk": {"k": "uk"},
	}
	_, err := New(Options{Locale: "ua", FallbackLocale: "en", Messages: catalogs})
	require.ErrorIs(t, err, domain.ErrInvalidLocale)
	require.Contains(t, err.Error(), `"ua"`)
	require.Contains(t, err.Error(), `"uk"`)

	tr, err := New(Options{
		Locale:         "ua",
		FallbackLocale: "en",
		Messages:       catalogs,
		Aliases:        map[string]string{"ua": "uk-UA"},
	})
	require.NoError(t, err)
	require.Equal(t, "ua", tr.T("ua", "k", nil))
	require.Equal(t, "uk", tr.T("uk", "k", nil))
}

func TestNewRejectsKeyCollision(t *testing.T) {
	_, err := New(Options{
		Locale:         "en",
		FallbackLocale: "en",
		Messages:       entities.Catalogs{"en": {"a.b": "x", "a": entities.Messages{"b": "y"}}},
	})
	require.ErrorIs(t, err, domain.ErrKeyCollision)
}
