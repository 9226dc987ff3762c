package borrowingavailability

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the QueryHandler needs.
type Store interface {
	Availability(ctx context.Context, personID int64, capacityOf func(role circulation.Role) int) (circulation.Availability, error)
}

// QueryHandler reads the availability of a person.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns capacity, open loans and their difference, or circulation.ErrNotFound.
// Available is negative when the role capacity was lowered below the open loans.
func (h QueryHandler) Handle(ctx context.Context, query Query) (circulation.Availability, error) {
	return h.store.Availability(ctx, query.PersonID, core.Capacity)
}
