package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// LocalesDir overrides the embedded fragment set when not empty.
	LocalesDir       string
	SupportedLocales []string
	DefaultLocale    string
	FallbackLocale   string
	Legacy           bool
	// Aliases maps locale codes to BCP 47 tags ("ua" -> "uk").
	Aliases        map[string]string
	DatabaseURL    string
	MigrationsPath string
	Token          string
}

// Load reads the configuration from the environment (and an optional .env
// file) and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		LocalesDir:       os.Getenv("LOCALES_DIR"),
		SupportedLocales: splitList(getenv("SUPPORTED_LOCALES", "en,ua")),
		DefaultLocale:    strings.TrimSpace(getenv("DEFAULT_LOCALE", "ua")),
		FallbackLocale:   strings.TrimSpace(getenv("FALLBACK_LOCALE", "en")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MigrationsPath:   getenv("MIGRATIONS_PATH", "migrations"),
		Token:            os.Getenv("TOKEN"),
	}

	legacy, err := strconv.ParseBool(getenv("I18N_LEGACY", "false"))
	if err != nil {
		return nil, fmt.Errorf("config: I18N_LEGACY must be a boolean: %w", err)
	}
	cfg.Legacy = legacy

	aliases, err := parseAliases(getenv("LOCALE_ALIASES", "ua=uk"))
	if err != nil {
		return nil, err
	}
	cfg.Aliases = aliases

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}

// parseAliases reads "ua=uk,xx=yy".
func parseAliases(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range splitList(s) {
		code, tag, ok := strings.Cut(pair, "=")
		code, tag = strings.TrimSpace(code), strings.TrimSpace(tag)
		if !ok || code == "" || tag == "" {
			return nil, fmt.Errorf("config: LOCALE_ALIASES entry %q must look like code=tag", pair)
		}
		out[code] = tag
	}
	return out, nil
}

// validate applies the consistency rules to the loaded configuration.
func (c *Config) validate() error {
	if len(c.SupportedLocales) == 0 {
		return fmt.Errorf("config: SUPPORTED_LOCALES is required and cannot be empty")
	}

	if c.DefaultLocale == "" {
		return fmt.Errorf("config: DEFAULT_LOCALE cannot be empty")
	}
	if !slices.Contains(c.SupportedLocales, c.DefaultLocale) {
		return fmt.Errorf("config: DEFAULT_LOCALE %q is not in SUPPORTED_LOCALES %v", c.DefaultLocale, c.SupportedLocales)
	}

	if c.FallbackLocale == "" {
		return fmt.Errorf("config: FALLBACK_LOCALE cannot be empty")
	}
	if !slices.Contains(c.SupportedLocales, c.FallbackLocale) {
		return fmt.Errorf("config: FALLBACK_LOCALE %q is not in SUPPORTED_LOCALES %v", c.FallbackLocale, c.SupportedLocales)
	}

	if strings.TrimSpace(c.DatabaseURL) != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	return nil
}

// RequireDatabase reports an error when DATABASE_URL is not set.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("config: DATABASE_URL is required for this command")
	}
	return nil
}

// RequireToken reports an error when the Discord TOKEN is not set.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required and cannot be empty")
	}
	return nil
}
