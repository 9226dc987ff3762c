package circulationjournal

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the QueryHandler needs.
type Store interface {
	CirculationJournal(ctx context.Context, materialID int64) (circulation.JournalEntries, error)
}

// QueryHandler reads the journal of a material and projects it.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the journal of the material. A material without entries, or one that never
// existed, yields an empty journal. Entries survive the deletion of their material.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Journal, error) {
	entries, err := h.store.CirculationJournal(ctx, query.MaterialID)
	if err != nil {
		return Journal{}, err
	}

	return Project(query.MaterialID, entries)
}
