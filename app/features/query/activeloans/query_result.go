package activeloans

import (
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// ActiveLoans is the query result containing all open loans.
type ActiveLoans struct {
	Loans []circulation.LoanDetails
	Count int
}
