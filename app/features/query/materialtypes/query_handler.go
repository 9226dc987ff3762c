package materialtypes

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the query handlers need.
type Store interface {
	ListMaterialTypes(ctx context.Context) ([]circulation.MaterialType, error)
	GetMaterialType(ctx context.Context, id int64) (circulation.MaterialType, error)
}

// ListQueryHandler lists material types ordered by id.
type ListQueryHandler struct {
	store Store
}

func NewListQueryHandler(store Store) ListQueryHandler {
	return ListQueryHandler{store: store}
}

// Handle returns all material types.
func (h ListQueryHandler) Handle(ctx context.Context, query ListQuery) (MaterialTypes, error) {
	if query.EventualConsistency {
		ctx = circulation.WithEventualConsistency(ctx)
	}

	items, err := h.store.ListMaterialTypes(ctx)
	if err != nil {
		return MaterialTypes{}, err
	}

	return MaterialTypes{Items: items, Count: len(items)}, nil
}

// GetQueryHandler reads a single material type from the primary.
type GetQueryHandler struct {
	store Store
}

func NewGetQueryHandler(store Store) GetQueryHandler {
	return GetQueryHandler{store: store}
}

// Handle returns the material type or circulation.ErrNotFound.
func (h GetQueryHandler) Handle(ctx context.Context, query GetQuery) (circulation.MaterialType, error) {
	return h.store.GetMaterialType(circulation.WithStrongConsistency(ctx), query.ID)
}
