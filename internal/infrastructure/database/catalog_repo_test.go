package database

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"localeboot/internal/domain"
	"localeboot/internal/domain/entities"
	"localeboot/internal/ports/output"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = r.values[i].([]byte)
		}
	}
	return nil
}

// fakeDB keeps upserted rows in memory, keyed by locale.
type fakeDB struct {
	rows     map[string][]any
	execErr  error
	queryErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: map[string][]any{}}
}

func (db *fakeDB) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	if db.execErr != nil {
		return pgconn.CommandTag{}, db.execErr
	}
	locale := args[0].(string)
	db.rows[locale] = []any{locale, []byte(args[1].(string)), args[2].(string)}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (db *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	locales := make([]string, 0, len(db.rows))
	for locale := range db.rows {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return &fakeRows{locales: locales, pos: -1}, nil
}

// fakeRows yields one text column per row.
type fakeRows struct {
	locales []string
	pos     int
	closed  bool
}

func (r *fakeRows) Close() { r.closed = true }
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte { return nil }
func (r *fakeRows) Conn() *pgx.Conn { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.locales) {
		r.closed = true
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.locales[r.pos]
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	return []any{r.locales[r.pos]}, nil
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	row, ok := db.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{values: row}
}

func TestCatalogRepositoryRoundTrip(t *testing.T) {
	repo := NewCatalogRepository(newFakeDB())
	ctx := context.Background()

	messages := entities.Messages{
		"app":   entities.Messages{"title": "До та після"},
		"count": int64(3),
		"ratio": 0.5,
		"tags":  []any{"a", "b"},
		"none":  nil,
	}
	require.NoError(t, repo.Save(ctx, output.StoredCatalog{Locale: "ua", Messages: messages, Checksum: "abc"}))

	got, err := repo.FindByLocale(ctx, "ua")
	require.NoError(t, err)
	require.Equal(t, "ua", got.Locale)
	require.Equal(t, "abc", got.Checksum)
	require.Equal(t, messages, got.Messages)
}

func TestCatalogRepositorySaveNilMessages(t *testing.T) {
	db := newFakeDB()
	repo := NewCatalogRepository(db)
	require.NoError(t, repo.Save(context.Background(), output.StoredCatalog{Locale: "en", Checksum: "x"}))
	require.Equal(t, []byte(`{}`), db.rows["en"][1])
}

func TestCatalogRepositoryListLocales(t *testing.T) {
	repo := NewCatalogRepository(newFakeDB())
	ctx := context.Background()

	locales, err := repo.ListLocales(ctx)
	require.NoError(t, err)
	require.Empty(t, locales)

	for _, locale := range []string{"ua", "en"} {
		require.NoError(t, repo.Save(ctx, output.StoredCatalog{Locale: locale, Checksum: "x"}))
	}
	locales, err = repo.ListLocales(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"en", "ua"}, locales)
}

func TestCatalogRepositoryNotFound(t *testing.T) {
	repo := NewCatalogRepository(newFakeDB())
	_, err := repo.FindByLocale(context.Background(), "de")
	require.ErrorIs(t, err, domain.ErrCatalogNotFound)
}

func TestCatalogRepositoryErrors(t *testing.T) {
	boom := errors.New("connection reset")
	db := newFakeDB()
	db.execErr = boom
	db.queryErr = boom
	repo := NewCatalogRepository(db)

	err := repo.Save(context.Background(), output.StoredCatalog{Locale: "en"})
	require.ErrorIs(t, err, boom)

	_, err = repo.ListLocales(context.Background())
	require.ErrorIs(t, err, boom)
}
