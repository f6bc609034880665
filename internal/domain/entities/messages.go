package entities

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"localeboot/internal/domain"
)

// Messages is a nested set of translation keys. A value is one of: string,
// bool, float64, int64, nil, []any (list of values) or Messages.
type Messages map[string]any

// Catalogs maps a locale code to its fully merged messages.
type Catalogs map[string]Messages

// DeepMerge merges source into target and returns target.
//
// Nested objects are merged key by key; any other value (scalar, list, nil)
// in source replaces the value in target. Lists are never concatenated.
// A nil target is allocated. target never ends up sharing nested maps or
// lists with source. Cyclic input is not supported.
func DeepMerge(target, source Messages) Messages {
	if target == nil {
		target = Messages{}
	}
	for key, value := range source {
		if nested, ok := asMessages(value); ok {
			existing, ok := asMessages(target[key])
			if !ok {
				existing = Messages{}
			}
			target[key] = DeepMerge(existing, nested)
			continue
		}
		target[key] = cloneValue(value)
	}
	return target
}

// Merge folds fragments into a fresh Messages in the given order.
func Merge(parts ...Messages) Messages {
	out := Messages{}
	for _, p := range parts {
		DeepMerge(out, p)
	}
	return out
}

func asMessages(v any) (Messages, bool) {
	switch m := v.(type) {
	case Messages:
		return m, m != nil
	case map[string]any:
		return Messages(m), m != nil
	}
	return nil, false
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			if nested, ok := asMessages(item); ok {
				out[i] = nested.Clone()
				continue
			}
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

// Clone returns a deep copy of m.
func (m Messages) Clone() Messages {
	if m == nil {
		return nil
	}
	return DeepMerge(Messages{}, m)
}

// Lookup resolves a dotted key path such as "home.title". List elements are
// addressed by index ("tags.0").
func (m Messages) Lookup(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case Messages:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	if nested, ok := asMessages(cur); ok {
		return nested.Clone(), true
	}
	return cloneValue(cur), true
}

// Flatten returns every leaf as a dotted key. Non-string scalars are
// formatted with %v; nil leaves are omitted. Two leaves reaching the same
// dotted key (a literal "a.b" next to a nested a -> b) are rejected with
// domain.ErrKeyCollision.
func (m Messages) Flatten() (map[string]string, error) {
	out := make(map[string]string)
	seen := make(map[string]bool)
	if err := flattenInto(out, seen, "", m); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out map[string]string, seen map[string]bool, prefix string, v any) error {
	if nested, ok := asMessages(v); ok {
		for k, child := range nested {
			if err := flattenInto(out, seen, joinKey(prefix, k), child); err != nil {
				return err
			}
		}
		return nil
	}
	if list, ok := v.([]any); ok {
		for i, child := range list {
			if err := flattenInto(out, seen, joinKey(prefix, strconv.Itoa(i)), child); err != nil {
				return err
			}
		}
		return nil
	}

	if seen[prefix] {
		return fmt.Errorf("%w: %q", domain.ErrKeyCollision, prefix)
	}
	seen[prefix] = true
	switch t := v.(type) {
	case nil:
	case string:
		out[prefix] = t
	default:
		out[prefix] = fmt.Sprintf("%v", t)
	}
	return nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Keys returns the sorted top-level keys.
func (m Messages) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Locales returns the sorted locale codes.
func (c Catalogs) Locales() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Checksum is the hex xxh3-128 digest of the canonical JSON encoding of m.
func Checksum(m Messages) (string, error) {
	if m == nil {
		m = Messages{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}
	sum := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(sum[:]), nil
}

// Normalize converts decoded data into the Messages value model. Maps with
// non-string keys and values of any other type are rejected with
// domain.ErrMalformedFragment.
func Normalize(v any) (Messages, error) {
	n, err := normalizeValue(v, "")
	if err != nil {
		return nil, err
	}
	m, ok := n.(Messages)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T", domain.ErrMalformedFragment, v)
	}
	return m, nil
}

func normalizeValue(v any, at string) (any, error) {
	switch t := v.(type) {
	case nil, string, bool, int64:
		return t, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%w: non-finite number at %q", domain.ErrMalformedFragment, at)
		}
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("%w: number out of range at %q", domain.ErrMalformedFragment, at)
		}
		return int64(t), nil
	case float32:
		return normalizeValue(float64(t), at)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: bad number at %q", domain.ErrMalformedFragment, at)
		}
		return normalizeValue(f, at)
	case Messages:
		return normalizeMap(t, at)
	case map[string]any:
		return normalizeMap(t, at)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string key %v at %q", domain.ErrMalformedFragment, k, at)
			}
			m[key] = child
		}
		return normalizeMap(m, at)
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			n, err := normalizeValue(child, joinKey(at, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(t))
		for i, child := range t {
			n, err := normalizeMap(child, joinKey(at, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported %T at %q", domain.ErrMalformedFragment, v, at)
}

func normalizeMap(in map[string]any, at string) (Messages, error) {
	out := make(Messages, len(in))
	for k, child := range in {
		n, err := normalizeValue(child, joinKey(at, k))
		if err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, nil
}
