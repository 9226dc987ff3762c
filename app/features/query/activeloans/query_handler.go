package activeloans

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the QueryHandler needs.
type Store interface {
	ActiveLoans(ctx context.Context) ([]circulation.LoanDetails, error)
}

// QueryHandler reads the open loans from the store.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the open loans ordered by loaned_at ascending, ties broken by loan id.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (ActiveLoans, error) {
	loans, err := h.store.ActiveLoans(ctx)
	if err != nil {
		return ActiveLoans{}, err
	}

	return ActiveLoans{Loans: loans, Count: len(loans)}, nil
}
