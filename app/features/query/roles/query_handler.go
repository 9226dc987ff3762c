package roles

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the query handlers need.
type Store interface {
	ListRoles(ctx context.Context) ([]circulation.Role, error)
	GetRole(ctx context.Context, id int64) (circulation.Role, error)
}

// ListQueryHandler lists roles ordered by id.
type ListQueryHandler struct {
	store Store
}

func NewListQueryHandler(store Store) ListQueryHandler {
	return ListQueryHandler{store: store}
}

// Handle returns all roles.
func (h ListQueryHandler) Handle(ctx context.Context, query ListQuery) (Roles, error) {
	if query.EventualConsistency {
		ctx = circulation.WithEventualConsistency(ctx)
	}

	items, err := h.store.ListRoles(ctx)
	if err != nil {
		return Roles{}, err
	}

	return Roles{Items: items, Count: len(items)}, nil
}

// GetQueryHandler reads a single role from the primary.
type GetQueryHandler struct {
	store Store
}

func NewGetQueryHandler(store Store) GetQueryHandler {
	return GetQueryHandler{store: store}
}

// Handle returns the role or circulation.ErrNotFound.
func (h GetQueryHandler) Handle(ctx context.Context, query GetQuery) (circulation.Role, error) {
	return h.store.GetRole(circulation.WithStrongConsistency(ctx), query.ID)
}
