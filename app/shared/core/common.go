package core

import (
	"time"
)

// OccurredAt represents when something happened in circulation.
type OccurredAt = time.Time

// ToOccurredAt normalizes t to UTC with microsecond precision, which is what Postgres stores.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}
