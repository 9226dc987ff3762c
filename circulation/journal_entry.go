package circulation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
var ErrEmptyEntryType = errors.New("journal entry type must not be empty")

// JournalEntries is an alias type for a slice of JournalEntry.
type JournalEntries = []JournalEntry

// JournalEntry is a DTO used to append a record of a stock-affecting change to the circulation journal
// and to read it back. The store writes it in the same transaction as the change it describes.
//
// It is built on scalars to stay agnostic of how the client code models the recorded facts.
//
// While its properties are exported, it should only be constructed with the supplied factory methods:
//   - BuildJournalEntry
//   - BuildJournalEntryWithEmptyMetadata
type JournalEntry struct {
	EntryID      uuid.UUID
	EntryType    string
	MaterialID   int64
	LoanID       *int64
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildJournalEntry is a factory method for JournalEntry.
//
// Returns an error if the entry type is empty or if payloadJSON or metadataJSON are not valid JSON.
// The LoanID is assigned by the store for entries that open a loan.
func BuildJournalEntry(
	entryID uuid.UUID,
	entryType string,
	materialID int64,
	occurredAt time.Time,
	payloadJSON []byte,
	metadataJSON []byte,
) (JournalEntry, error) {

	if entryType == "" {
		return JournalEntry{}, ErrEmptyEntryType
	}

	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return JournalEntry{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return JournalEntry{}, ErrInvalidMetadataJSON
	}

	return JournalEntry{
		EntryID:      entryID,
		EntryType:    entryType,
		MaterialID:   materialID,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildJournalEntryWithEmptyMetadata is a factory method for JournalEntry with valid empty JSON metadata.
func BuildJournalEntryWithEmptyMetadata(
	entryID uuid.UUID,
	entryType string,
	materialID int64,
	occurredAt time.Time,
	payloadJSON []byte,
) (JournalEntry, error) {

	return BuildJournalEntry(entryID, entryType, materialID, occurredAt, payloadJSON, []byte("{}"))
}

// ForLoan returns a copy of the entry attached to the given loan.
func (e JournalEntry) ForLoan(loanID int64) JournalEntry {
	e.LoanID = &loanID
	return e
}
