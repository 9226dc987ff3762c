package loansbyperson

import (
	"context"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Store defines the store operations the QueryHandler needs.
type Store interface {
	LoansByPerson(ctx context.Context, personID int64) ([]circulation.LoanDetails, error)
}

// QueryHandler reads the loans of a person from the store.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the loans of the person, or circulation.ErrNotFound if the person does not exist.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoansByPerson, error) {
	loans, err := h.store.LoansByPerson(ctx, query.PersonID)
	if err != nil {
		return LoansByPerson{}, err
	}

	result := LoansByPerson{PersonID: query.PersonID, Loans: loans, Count: len(loans)}
	for _, loan := range loans {
		if loan.IsOpen() {
			result.Open++
		}
	}

	return result, nil
}
