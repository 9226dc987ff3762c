package circulationjournal

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
)

// Entry is one journal record with its payload decoded.
type Entry struct {
	EntryID       uuid.UUID
	EntryType     string
	LoanID        *int64
	OccurredAt    time.Time
	CorrelationID string
	Event         core.DomainEvent
}

// Journal is the query result for a single material.
type Journal struct {
	MaterialID int64
	Entries    []Entry
	Count      int

	// NetStockChange is the sum of all stock movements in the journal:
	// +amount per stock addition, -1 per checkout, +1 per return.
	NetStockChange int
}
