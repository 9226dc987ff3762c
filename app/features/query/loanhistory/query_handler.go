package loanhistory

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the QueryHandler needs.
type Store interface {
	LoanHistory(ctx context.Context) ([]circulation.LoanDetails, error)
}

// QueryHandler reads the loan history from the store.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns all loans ordered by loaned_at descending.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (LoanHistory, error) {
	loans, err := h.store.LoanHistory(ctx)
	if err != nil {
		return LoanHistory{}, err
	}

	result := LoanHistory{Loans: loans, Count: len(loans)}
	for _, loan := range loans {
		if loan.Returned {
			result.Returned++
		}
	}

	return result, nil
}
