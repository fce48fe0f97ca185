package catalog

import "context"

// Repository abstracts catalog persistence.  The seeded in-memory Registry
// satisfies it; the postgres implementation under internal/infrastructure
// backs it for deployments that manage the catalog administratively.
type Repository interface {
	// GetEntry returns the entry for a code, or a CAT_001 error.
	GetEntry(ctx context.Context, code string) (*Entry, error)

	// ListEntries returns every entry ordered by code.
	ListEntries(ctx context.Context) ([]*Entry, error)

	// SaveEntry upserts an entry keyed by code.
	SaveEntry(ctx context.Context, entry *Entry) error
}
