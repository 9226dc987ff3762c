package persons

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the query handlers need.
type Store interface {
	ListPersons(ctx context.Context) ([]circulation.PersonProfile, error)
	GetPerson(ctx context.Context, id int64) (circulation.PersonProfile, error)
}

// ListQueryHandler lists persons ordered by id.
type ListQueryHandler struct {
	store Store
}

// NewListQueryHandler creates a new ListQueryHandler.
func NewListQueryHandler(store Store) ListQueryHandler {
	return ListQueryHandler{store: store}
}

// Handle returns all persons.
func (h ListQueryHandler) Handle(ctx context.Context, query ListQuery) (Persons, error) {
	if query.EventualConsistency {
		ctx = circulation.WithEventualConsistency(ctx)
	}

	items, err := h.store.ListPersons(ctx)
	if err != nil {
		return Persons{}, err
	}

	return Persons{Items: items, Count: len(items)}, nil
}

// GetQueryHandler reads a single person from the primary.
type GetQueryHandler struct {
	store Store
}

// NewGetQueryHandler creates a new GetQueryHandler.
func NewGetQueryHandler(store Store) GetQueryHandler {
	return GetQueryHandler{store: store}
}

// Handle returns the person or circulation.ErrNotFound.
func (h GetQueryHandler) Handle(ctx context.Context, query GetQuery) (circulation.PersonProfile, error) {
	return h.store.GetPerson(circulation.WithStrongConsistency(ctx), query.ID)
}
