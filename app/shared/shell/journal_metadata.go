package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

// ErrMappingToJournalMetadataFailed is returned when journal metadata cannot be decoded.
var ErrMappingToJournalMetadataFailed = errors.New("mapping to journal metadata failed")

// JournalMetadata contains the message tracking information stored with every journal entry.
type JournalMetadata struct {
	MessageID     string `json:"messageId"`
	CausationID   string `json:"causationId"`
	CorrelationID string `json:"correlationId"`
}

// BuildJournalMetadata creates JournalMetadata from UUID values.
func BuildJournalMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) JournalMetadata {
	return JournalMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// NewJournalMetadata creates JournalMetadata for a command that starts a new causation chain.
func NewJournalMetadata() JournalMetadata {
	id := uuid.New()

	return BuildJournalMetadata(id, id, id)
}

// JournalMetadataFrom decodes the metadata of a journal entry.
func JournalMetadataFrom(entry circulation.JournalEntry) (JournalMetadata, error) {
	metadata := new(JournalMetadata)
	if err := jsoniter.ConfigFastest.Unmarshal(entry.MetadataJSON, metadata); err != nil {
		return JournalMetadata{}, errors.Join(ErrMappingToJournalMetadataFailed, err)
	}

	return *metadata, nil
}
