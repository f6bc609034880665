package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"localeboot/internal/domain"
	"localeboot/internal/domain/entities"
	"localeboot/internal/ports/output"
)

var _ output.CatalogRepository = (*CatalogRepository)(nil)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	upsertCatalog = `
INSERT INTO locale_catalogs (locale, messages, checksum, updated_at)
VALUES ($1, $2::jsonb, $3, now())
ON CONFLICT (locale) DO UPDATE
SET messages = EXCLUDED.messages, checksum = EXCLUDED.checksum, updated_at = now()`

	getCatalogByLocale = `
SELECT locale, messages, checksum FROM locale_catalogs WHERE locale = $1`

	listCatalogLocales = `
SELECT locale FROM locale_catalogs ORDER BY locale`
)

type CatalogRepository struct {
	db DBTX
}

func NewCatalogRepository(db DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Save(ctx context.Context, catalog output.StoredCatalog) error {
	messages := catalog.Messages
	if messages == nil {
		messages = entities.Messages{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("save catalog %s: %w", catalog.Locale, err)
	}
	if _, err := r.db.Exec(ctx, upsertCatalog, catalog.Locale, string(data), catalog.Checksum); err != nil {
		return fmt.Errorf("save catalog %s: %w", catalog.Locale, err)
	}
	return nil
}

func (r *CatalogRepository) FindByLocale(ctx context.Context, locale string) (*output.StoredCatalog, error) {
	var (
		stored output.StoredCatalog
		raw    []byte
	)
	err := r.db.QueryRow(ctx, getCatalogByLocale, locale).Scan(&stored.Locale, &raw, &stored.Checksum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get catalog %s: %w", locale, domain.ErrCatalogNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog %s: %w", locale, err)
	}
	messages, err := decodeMessages(raw)
	if err != nil {
		return nil, fmt.Errorf("get catalog %s: %w", locale, err)
	}
	stored.Messages = messages
	return &stored, nil
}

func (r *CatalogRepository) ListLocales(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, listCatalogLocales)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	locales, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	return locales, nil
}

// decodeMessages keeps integral numbers as int64 so a stored catalog
// round-trips to the same value model it was saved from.
func decodeMessages(raw []byte) (entities.Messages, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return entities.Normalize(v)
}
