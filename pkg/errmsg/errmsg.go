package errmsg

import (
	"localeboot/internal/domain"
	"localeboot/internal/ports/output"
)

const genericKey = "errors.generic"

// Key returns the catalog key describing err ("errors.<code>"), or the
// generic error key when err carries no domain code.
func Key(err error) string {
	if code := domain.Code(err); code != "" {
		return "errors." + code
	}
	return genericKey
}

// Message resolves err to a user-facing message in locale. data fills the
// message placeholders (may be nil).
func Message(t output.T, locale string, err error, data map[string]any) string {
	if err == nil {
		return ""
	}
	key := Key(err)
	msg := t.T(locale, key, data)
	if msg == key && key != genericKey {
		return t.T(locale, genericKey, nil)
	}
	return msg
}
