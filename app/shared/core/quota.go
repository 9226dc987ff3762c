package core

import (
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Capacity returns how many loans a person in role may hold at the same time.
// A negative stored capacity counts as zero.
func Capacity(role circulation.Role) int {
	if role.Capacity < 0 {
		return 0
	}

	return role.Capacity
}
