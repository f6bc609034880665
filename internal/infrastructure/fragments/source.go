package fragments

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"localeboot/internal/domain/entities"
	"localeboot/internal/ports/output"
)

// Fragments live in a directory named "_" anywhere below the root and are
// named after their locale: "compare/_/en.json".
const fragmentDir = "_"

//go:embed all:locales
var localeFS embed.FS

var (
	_ output.FragmentSource = (*FSSource)(nil)
	_ output.FragmentSource = (*StaticSource)(nil)
)

// FSSource discovers fragments in a file system.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Embedded returns the fragment set compiled into the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(localeFS, "locales")
	if err != nil {
		panic("fragments: embedded locales: " + err.Error())
	}
	return NewFSSource(sub)
}

// IsFragmentPath reports whether p follows the "<dir>/_/<locale>.<ext>"
// naming convention.
func IsFragmentPath(p string) bool {
	return path.Base(path.Dir(p)) == fragmentDir && Supported(p)
}

func (s *FSSource) Fragments(ctx context.Context) ([]entities.Fragment, error) {
	var out []entities.Fragment
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !IsFragmentPath(p) {
			return nil
		}
		data, err := fs.ReadFile(s.fsys, p)
		if err != nil {
			return fmt.Errorf("read fragment: %w", err)
		}
		f, err := Decode(p, data)
		if err != nil {
			return err
		}
		slog.Debug("Discovered fragment", "path", p, "locale", f.Locale)
		out = append(out, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Unit is one raw fragment named by its path.
type Unit struct {
	Path string
	Data []byte
}

// StaticSource serves an explicit, known-in-advance list of fragments.
type StaticSource struct {
	units []Unit
}

func NewStaticSource(units ...Unit) *StaticSource {
	return &StaticSource{units: units}
}

func (s *StaticSource) Fragments(ctx context.Context) ([]entities.Fragment, error) {
	out := make([]entities.Fragment, 0, len(s.units))
	for _, u := range s.units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := Decode(u.Path, u.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
