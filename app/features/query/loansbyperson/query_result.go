package loansbyperson

import (
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// LoansByPerson is the query result containing the loans of a single person.
type LoansByPerson struct {
	PersonID int64
	Loans    []circulation.LoanDetails
	Count    int
	Open     int
}
