package domain

import "errors"

// Error is a domain error with a stable code that adapters resolve to a
// localized message (catalog key "errors.<code>").
type Error struct {
	code string
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable identifier of the error.
func (e *Error) Code() string { return e.code }

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Domain errors.
var (
	ErrMalformedFragment = newError("malformed_fragment", "fragment is not a key-value structure")
	ErrUnsupportedFormat = newError("unsupported_format", "unsupported fragment format")
	ErrInvalidLocale     = newError("invalid_locale", "invalid locale code")
	ErrMissingCatalog    = newError("missing_catalog", "no catalog for locale")
	ErrCatalogNotFound   = newError("catalog_not_found", "catalog not found")
	ErrLegacyDisabled    = newError("legacy_disabled", "global locale switching requires legacy mode")
	ErrMessageNotFound   = newError("message_not_found", "message not found")
	ErrKeyCollision      = newError("key_collision", "two messages share the same key")
)

// Code extracts the code of the first domain error in err's chain, or "".
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}
