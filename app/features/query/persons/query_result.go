package persons

import (
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Persons is the result of a ListQuery.
type Persons struct {
	Items []circulation.PersonProfile
	Count int
}
