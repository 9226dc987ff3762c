package materialtypes

import (
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// MaterialTypes is the result of a ListQuery.
type MaterialTypes struct {
	Items []circulation.MaterialType
	Count int
}
