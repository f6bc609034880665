package entities

import (
	"path"
	"sort"
	"strings"
)

// Fragment is one partial set of messages for one locale, decoded from one
// data unit such as "home/_/en.json".
type Fragment struct {
	Path     string
	Locale   string
	Messages Messages
}

// NewFragment derives the locale from the base name of p.
func NewFragment(p string, messages Messages) Fragment {
	return Fragment{
		Path:     p,
		Locale:   LocaleFromPath(p),
		Messages: messages,
	}
}

// LocaleFromPath returns the base name of p without its extension:
// "a/_/en.json" -> "en".
func LocaleFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// SortFragments orders fragments by path so folding is deterministic.
func SortFragments(fragments []Fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].Path < fragments[j].Path
	})
}
