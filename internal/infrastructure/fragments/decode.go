package fragments

import (
	"fmt"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"localeboot/internal/domain"
	"localeboot/internal/domain/entities"
)

type decodeFunc func(data []byte) (any, error)

var decoders = map[string]decodeFunc{
	".json": decodeJSON,
	".toml": decodeTOML,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
}

// Supported reports whether p has an extension a decoder is registered for.
func Supported(p string) bool {
	_, ok := decoders[strings.ToLower(path.Ext(p))]
	return ok
}

// Decode parses data according to the extension of p and returns the
// fragment. Anything other than a key-value structure at the top level is
// rejected.
func Decode(p string, data []byte) (entities.Fragment, error) {
	decode, ok := decoders[strings.ToLower(path.Ext(p))]
	if !ok {
		return entities.Fragment{}, fmt.Errorf("%s: %w", p, domain.ErrUnsupportedFormat)
	}
	raw, err := decode(data)
	if err != nil {
		return entities.Fragment{}, fmt.Errorf("%s: %w", p, err)
	}
	messages, err := entities.Normalize(raw)
	if err != nil {
		return entities.Fragment{}, fmt.Errorf("%s: %w", p, err)
	}
	f := entities.NewFragment(p, messages)
	if f.Locale == "" {
		return entities.Fragment{}, fmt.Errorf("%s: %w", p, domain.ErrInvalidLocale)
	}
	return f, nil
}

func decodeJSON(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", domain.ErrMalformedFragment)
	}
	return gjson.ParseBytes(data).Value(), nil
}

func decodeTOML(data []byte) (any, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedFragment, err)
	}
	return v, nil
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedFragment, err)
	}
	return v, nil
}
