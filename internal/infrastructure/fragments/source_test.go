package fragments

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"localeboot/internal/domain"
	"localeboot/internal/domain/entities"
)

func paths(fragments []entities.Fragment) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, f.Path)
	}
	return out
}

func TestFSSourceDiscovery(t *testing.T) {
	fsys := fstest.MapFS{
		"home/_/en.json":        {Data: []byte(`{"greeting": "hi"}`)},
		"home/_/ua.json":        {Data: []byte(`{"greeting": "привіт"}`)},
		"shop/cart/_/en.toml":   {Data: []byte(`farewell = "bye"`)},
		"_/en.yaml":             {Data: []byte(`root: true`)},
		"home/en.json":          {Data: []byte(`{"ignored": true}`)},
		"home/_/README.md":      {Data: []byte(`# not a fragment`)},
		"home/_/nested/en.json": {Data: []byte(`{"ignored": true}`)},
	}

	got, err := NewFSSource(fsys).Fragments(context.Background())
	require.NoError(t, err)
	entities.SortFragments(got)
	require.Equal(t, []string{"_/en.yaml", "home/_/en.json", "home/_/ua.json", "shop/cart/_/en.toml"}, paths(got))
	require.Equal(t, "ua", got[2].Locale)
	require.Equal(t, entities.Messages{"farewell": "bye"}, got[3].Messages)
}

func TestFSSourceFailsFast(t *testing.T) {
	fsys := fstest.MapFS{
		"home/_/en.json": {Data: []byte(`{"greeting": "hi"}`)},
		"home/_/ua.json": {Data: []byte(`[1, 2]`)},
	}
	_, err := NewFSSource(fsys).Fragments(context.Background())
	require.ErrorIs(t, err, domain.ErrMalformedFragment)
	require.Contains(t, err.Error(), "home/_/ua.json")
}

func TestFSSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFSSource(fstest.MapFS{"_/en.json": {Data: []byte(`{}`)}}).Fragments(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEmbedded(t *testing.T) {
	got, err := Embedded().Fragments(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, got)

	locales := map[string]int{}
	for _, f := range got {
		require.True(t, IsFragmentPath(f.Path), f.Path)
		locales[f.Locale]++
	}
	require.Equal(t, map[string]int{"en": 4, "ua": 4}, locales)
}

func TestStaticSource(t *testing.T) {
	src := NewStaticSource(
		Unit{Path: "b/_/en.json", Data: []byte(`{"b": "1"}`)},
		Unit{Path: "a/_/en.yaml", Data: []byte(`a: "2"`)},
	)
	got, err := src.Fragments(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"b/_/en.json", "a/_/en.yaml"}, paths(got))

	_, err = NewStaticSource(Unit{Path: "a/_/en.xml", Data: nil}).Fragments(context.Background())
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIsFragmentPath(t *testing.T) {
	require.True(t, IsFragmentPath("x/_/en.json"))
	require.True(t, IsFragmentPath("_/en.json"))
	require.False(t, IsFragmentPath("x/en.json"))
	require.False(t, IsFragmentPath("x/__/en.json"))
	require.False(t, IsFragmentPath("x/_/en.txt"))
}
