package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

var (
	// ErrMappingToJournalEntryFailedForDomainEvent is returned when a domain event cannot be encoded.
	ErrMappingToJournalEntryFailedForDomainEvent = errors.New("mapping to journal entry failed for domain event")

	// ErrMappingToJournalEntryFailedForMetadata is returned when journal metadata cannot be encoded.
	ErrMappingToJournalEntryFailedForMetadata = errors.New("mapping to journal entry failed for metadata")
)

// JournalEntryFrom converts a DomainEvent and its JournalMetadata to a circulation.JournalEntry.
// The entry id is the message id of the metadata.
func JournalEntryFrom(event core.DomainEvent, metadata JournalMetadata) (circulation.JournalEntry, error) {
	entryID, err := uuid.Parse(metadata.MessageID)
	if err != nil {
		return circulation.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailedForMetadata, err)
	}

	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return circulation.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return circulation.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailedForMetadata, err)
	}

	entry, err := circulation.BuildJournalEntry(
		entryID,
		event.IsEventType(),
		event.AffectsMaterial(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)
	if err != nil {
		return circulation.JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailedForDomainEvent, err)
	}

	return entry, nil
}

// DomainEventFrom decodes the payload of a journal entry into its domain event.
func DomainEventFrom(entry circulation.JournalEntry) (core.DomainEvent, error) {
	var (
		event core.DomainEvent
		err   error
	)

	switch entry.EntryType {
	case core.LoanOpenedEventType:
		payload := core.LoanOpened{}
		err = jsoniter.ConfigFastest.Unmarshal(entry.PayloadJSON, &payload)
		event = payload
	case core.LoanClosedEventType:
		payload := core.LoanClosed{}
		err = jsoniter.ConfigFastest.Unmarshal(entry.PayloadJSON, &payload)
		event = payload
	case core.StockAddedEventType:
		payload := core.StockAdded{}
		err = jsoniter.ConfigFastest.Unmarshal(entry.PayloadJSON, &payload)
		event = payload
	default:
		return nil, errors.Join(ErrMappingToDomainEventUnknownType, errors.New(entry.EntryType))
	}

	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}

var (
	// ErrMappingToDomainEventFailed is returned when a journal payload cannot be decoded.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownType is returned for journal entries of an unknown type.
	ErrMappingToDomainEventUnknownType = errors.New("mapping to domain event failed for unknown entry type")
)
