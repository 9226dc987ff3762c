package core

import (
	"time"
)

// LoanOpenedEventType is the event type identifier.
const LoanOpenedEventType = "LoanOpened"

// LoanOpened records that a person took one unit of a material.
type LoanOpened struct {
	EventType  string     `json:"eventType"`
	PersonID   int64      `json:"personId"`
	MaterialID int64      `json:"materialId"`
	OccurredAt OccurredAt `json:"occurredAt"`
}

// BuildLoanOpened creates a new LoanOpened event.
func BuildLoanOpened(personID int64, materialID int64, occurredAt time.Time) LoanOpened {
	return LoanOpened{
		EventType:  LoanOpenedEventType,
		PersonID:   personID,
		MaterialID: materialID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e LoanOpened) IsEventType() string {
	return LoanOpenedEventType
}

func (e LoanOpened) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanOpened) AffectsMaterial() int64 {
	return e.MaterialID
}
