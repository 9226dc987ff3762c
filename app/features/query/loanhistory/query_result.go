package loanhistory

import (
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// LoanHistory is the query result containing open and returned loans.
type LoanHistory struct {
	Loans    []circulation.LoanDetails
	Count    int
	Returned int // Number of loans in Loans that were returned
}
