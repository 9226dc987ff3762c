package loandetails

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the QueryHandler needs.
type Store interface {
	GetLoan(ctx context.Context, loanID int64) (circulation.LoanDetails, error)
}

type QueryHandler struct {
	store Store
}

func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the loan or circulation.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (circulation.LoanDetails, error) {
	return h.store.GetLoan(ctx, query.LoanID)
}
