package materials

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the query handlers need.
type Store interface {
	ListMaterials(ctx context.Context) ([]circulation.MaterialSummary, error)
	GetMaterial(ctx context.Context, id int64) (circulation.MaterialSummary, error)
}

// ListQueryHandler lists materials ordered by id.
type ListQueryHandler struct {
	store Store
}

// NewListQueryHandler creates a new ListQueryHandler.
func NewListQueryHandler(store Store) ListQueryHandler {
	return ListQueryHandler{store: store}
}

// Handle returns all materials.
func (h ListQueryHandler) Handle(ctx context.Context, query ListQuery) (Materials, error) {
	if query.EventualConsistency {
		ctx = circulation.WithEventualConsistency(ctx)
	}

	items, err := h.store.ListMaterials(ctx)
	if err != nil {
		return Materials{}, err
	}

	return Materials{Items: items, Count: len(items)}, nil
}

// GetQueryHandler reads a single material from the primary.
type GetQueryHandler struct {
	store Store
}

// NewGetQueryHandler creates a new GetQueryHandler.
func NewGetQueryHandler(store Store) GetQueryHandler {
	return GetQueryHandler{store: store}
}

// Handle returns the material or circulation.ErrNotFound.
func (h GetQueryHandler) Handle(ctx context.Context, query GetQuery) (circulation.MaterialSummary, error) {
	return h.store.GetMaterial(circulation.WithStrongConsistency(ctx), query.ID)
}
