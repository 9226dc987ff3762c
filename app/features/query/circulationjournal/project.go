package circulationjournal

import (
	"github.com/bibliotecago/library-circulation-go/app/shared/core"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Project decodes the journal entries of a material and sums up their stock movements.
func Project(materialID int64, entries circulation.JournalEntries) (Journal, error) {
	journal := Journal{MaterialID: materialID, Entries: make([]Entry, 0, len(entries))}

	for _, entry := range entries {
		event, err := shell.DomainEventFrom(entry)
		if err != nil {
			return Journal{}, err
		}

		metadata, err := shell.JournalMetadataFrom(entry)
		if err != nil {
			return Journal{}, err
		}

		switch e := event.(type) {
		case core.LoanOpened:
			journal.NetStockChange--
		case core.LoanClosed:
			journal.NetStockChange++
		case core.StockAdded:
			journal.NetStockChange += e.Amount
		}

		journal.Entries = append(journal.Entries, Entry{
			EntryID:       entry.EntryID,
			EntryType:     entry.EntryType,
			LoanID:        entry.LoanID,
			OccurredAt:    entry.OccurredAt,
			CorrelationID: metadata.CorrelationID,
			Event:         event,
		})
	}

	journal.Count = len(journal.Entries)

	return journal, nil
}
