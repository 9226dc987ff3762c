package roles

import (
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Roles is the result of a ListQuery.
type Roles struct {
	Items []circulation.Role
	Count int
}
