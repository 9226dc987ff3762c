package core

import (
	"time"
)

// StockAddedEventType is the event type identifier.
const StockAddedEventType = "StockAdded"

// StockAdded records that units of a material were added to both its registered and current quantity.
type StockAdded struct {
	EventType  string     `json:"eventType"`
	MaterialID int64      `json:"materialId"`
	Amount     int        `json:"amount"`
	OccurredAt OccurredAt `json:"occurredAt"`
}

// BuildStockAdded creates a new StockAdded event.
func BuildStockAdded(materialID int64, amount int, occurredAt time.Time) StockAdded {
	return StockAdded{
		EventType:  StockAddedEventType,
		MaterialID: materialID,
		Amount:     amount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e StockAdded) IsEventType() string {
	return StockAddedEventType
}

func (e StockAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e StockAdded) AffectsMaterial() int64 {
	return e.MaterialID
}
