package postgresengine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	operationAppendJournalEntry = "append_journal_entry"
	operationCirculationJournal = "circulation_journal"
)

// appendJournalEntry inserts entry as part of the transaction tx.
func (s *Store) appendJournalEntry(ctx context.Context, tx adapters.DBTx, entry circulation.JournalEntry) error {
	var loanID any
	if entry.LoanID != nil {
		loanID = *entry.LoanID
	}

	inserted, err := s.exec(ctx, tx, operationAppendJournalEntry, dialect().
		Insert(tableJournal).
		Rows(goqu.Record{
			colEntryID:    goqu.L(castUUID, entry.EntryID.String()),
			colEntryType:  entry.EntryType,
			colMaterialID: entry.MaterialID,
			colLoanID:     loanID,
			colOccurredAt: utc(entry.OccurredAt),
			colPayload:    goqu.L(castJsonb, string(entry.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(entry.MetadataJSON)),
		}))
	if err != nil {
		return err
	}

	if inserted != 1 {
		return circulation.ErrWritingFailed
	}

	return nil
}

// CirculationJournal returns the journal entries of a material in the order they occurred.
// Entries survive the deletion of the material.
func (s Store) CirculationJournal(ctx context.Context, materialID int64) (entries circulation.JournalEntries, err error) {
	ctx, obs := s.observe(ctx, operationCirculationJournal, spanAttrMaterialID, fmt.Sprintf("%d", materialID))
	defer func() { obs.finish(err, len(entries)) }()

	builder := dialect().
		From(tableJournal).
		Select(
			goqu.Cast(goqu.C(colEntryID), "TEXT"),
			colEntryType,
			colMaterialID,
			colLoanID,
			colOccurredAt,
			colPayload,
			colMetadata,
		).
		Where(goqu.Ex{colMaterialID: materialID}).
		Order(goqu.C(colOccurredAt).Asc(), goqu.C(colSequenceNumber).Asc())

	return query(circulation.WithStrongConsistency(ctx), &s, s.db, operationCirculationJournal, builder, scanJournalEntry)
}

func scanJournalEntry(row adapters.DBRows) (circulation.JournalEntry, error) {
	var (
		e       circulation.JournalEntry
		entryID string
		loanID  sql.NullInt64
	)

	if err := row.Scan(&entryID, &e.EntryType, &e.MaterialID, &loanID, &e.OccurredAt, &e.PayloadJSON, &e.MetadataJSON); err != nil {
		return circulation.JournalEntry{}, err
	}

	id, err := uuid.Parse(entryID)
	if err != nil {
		return circulation.JournalEntry{}, err
	}

	e.EntryID = id
	e.OccurredAt = e.OccurredAt.UTC()

	if loanID.Valid {
		e = e.ForLoan(loanID.Int64)
	}

	return e, nil
}
