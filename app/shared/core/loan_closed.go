package core

import (
	"time"
)

// LoanClosedEventType is the event type identifier.
const LoanClosedEventType = "LoanClosed"

// LoanClosed records that the unit of a loan was given back.
type LoanClosed struct {
	EventType  string     `json:"eventType"`
	LoanID     int64      `json:"loanId"`
	PersonID   int64      `json:"personId"`
	MaterialID int64      `json:"materialId"`
	OccurredAt OccurredAt `json:"occurredAt"`
}

// BuildLoanClosed creates a new LoanClosed event.
func BuildLoanClosed(loanID int64, personID int64, materialID int64, occurredAt time.Time) LoanClosed {
	return LoanClosed{
		EventType:  LoanClosedEventType,
		LoanID:     loanID,
		PersonID:   personID,
		MaterialID: materialID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanClosed) IsEventType() string {
	return LoanClosedEventType
}

func (e LoanClosed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanClosed) AffectsMaterial() int64 {
	return e.MaterialID
}
