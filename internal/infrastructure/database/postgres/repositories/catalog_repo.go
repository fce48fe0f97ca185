package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// CatalogRepository persists deadline catalog entries.  It implements
// catalog.Repository.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository builds the repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const catalogColumns = `
	code, name, COALESCE(description, ''), base_days, mode, class, category,
	statute, allows_doubling, allows_joinder_doubling, extends_on_non_business_day,
	COALESCE(non_compliance_effect, ''), COALESCE(trigger_description, '')`

// GetEntry loads one entry by code, or a CAT_001 error.
func (r *CatalogRepository) GetEntry(ctx context.Context, code string) (*catalog.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+catalogColumns+` FROM deadline_catalog WHERE code = $1`, code)

	e, err := scanEntry(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.Newf(errors.ErrCodeCatalogEntryNotFound,
			"deadline type %s is not registered", code)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load catalog entry")
	}
	return e, nil
}

// ListEntries returns the whole catalog ordered by code.
func (r *CatalogRepository) ListEntries(ctx context.Context) ([]*catalog.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+catalogColumns+` FROM deadline_catalog ORDER BY code`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list catalog")
	}
	defer rows.Close()

	var out []*catalog.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan catalog entry")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate catalog")
	}
	return out, nil
}

// SaveEntry validates and upserts one entry keyed by code.
func (r *CatalogRepository) SaveEntry(ctx context.Context, entry *catalog.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	const q = `
		INSERT INTO deadline_catalog
			(code, name, description, base_days, mode, class, category, statute,
			 allows_doubling, allows_joinder_doubling, extends_on_non_business_day,
			 non_compliance_effect, trigger_description)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), NULLIF($13, ''))
		ON CONFLICT (code) DO UPDATE SET
			name                        = EXCLUDED.name,
			description                 = EXCLUDED.description,
			base_days                   = EXCLUDED.base_days,
			mode                        = EXCLUDED.mode,
			class                       = EXCLUDED.class,
			category                    = EXCLUDED.category,
			statute                     = EXCLUDED.statute,
			allows_doubling             = EXCLUDED.allows_doubling,
			allows_joinder_doubling     = EXCLUDED.allows_joinder_doubling,
			extends_on_non_business_day = EXCLUDED.extends_on_non_business_day,
			non_compliance_effect       = EXCLUDED.non_compliance_effect,
			trigger_description         = EXCLUDED.trigger_description`

	if _, err := r.db.ExecContext(ctx, q,
		entry.Code, entry.Name, entry.Description, entry.BaseDays, entry.Mode,
		entry.Class, entry.Category, entry.Statute,
		entry.AllowsDoubling, entry.AllowsJoinderDoubling, entry.ExtendsOnNonBusinessDay,
		entry.NonComplianceEffect, entry.TriggerDescription); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to upsert catalog entry")
	}
	return nil
}

// SeedDefaults inserts the built-in catalog, leaving administratively edited
// rows untouched.
func (r *CatalogRepository) SeedDefaults(ctx context.Context) error {
	const q = `
		INSERT INTO deadline_catalog
			(code, name, description, base_days, mode, class, category, statute,
			 allows_doubling, allows_joinder_doubling, extends_on_non_business_day,
			 non_compliance_effect, trigger_description)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), NULLIF($13, ''))
		ON CONFLICT (code) DO NOTHING`

	for _, e := range catalog.SeedEntries() {
		if _, err := r.db.ExecContext(ctx, q,
			e.Code, e.Name, e.Description, e.BaseDays, e.Mode, e.Class, e.Category,
			e.Statute, e.AllowsDoubling, e.AllowsJoinderDoubling,
			e.ExtendsOnNonBusinessDay, e.NonComplianceEffect, e.TriggerDescription); err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to seed catalog entry "+e.Code)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*catalog.Entry, error) {
	e := &catalog.Entry{}
	err := row.Scan(
		&e.Code, &e.Name, &e.Description, &e.BaseDays, &e.Mode, &e.Class,
		&e.Category, &e.Statute, &e.AllowsDoubling, &e.AllowsJoinderDoubling,
		&e.ExtendsOnNonBusinessDay, &e.NonComplianceEffect, &e.TriggerDescription)
	if err != nil {
		return nil, err
	}
	return e, nil
}
