package materials

import (
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Materials is the result of a ListQuery.
type Materials struct {
	Items []circulation.MaterialSummary
	Count int
}
