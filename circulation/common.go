package circulation

import (
	"errors"
)

// Domain errors. Each one is a distinct, caller-visible outcome.
var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidReference     = errors.New("referenced record does not exist")
	ErrDuplicateIdentity    = errors.New("identity number is already registered")
	ErrOutOfStock           = errors.New("material has no units available")
	ErrQuotaExceeded        = errors.New("person has reached the borrowing capacity of their role")
	ErrAlreadyReturned      = errors.New("loan was already returned")
	ErrHasOpenLoans         = errors.New("record has open loans")
	ErrReferencedByPerson   = errors.New("role is referenced by at least one person")
	ErrReferencedByMaterial = errors.New("material type is referenced by at least one material")
	ErrInvalidArgument      = errors.New("invalid argument")
)

// ErrConcurrencyConflict signals that a conditional write affected no rows because a concurrent write
// changed the state it was decided on. It is the only retryable error.
var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

// Infrastructure errors.
var (
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
	ErrNilReplicaConnection  = errors.New("replica connection must not be nil")
	ErrBuildingQueryFailed   = errors.New("building the sql query failed")
	ErrQueryingFailed        = errors.New("querying the database failed")
	ErrWritingFailed         = errors.New("writing to the database failed")
	ErrScanningDBRowFailed   = errors.New("scanning a database row failed")
	ErrGettingRowsAffected   = errors.New("getting the rows affected count failed")
	ErrBeginningTxFailed     = errors.New("beginning the database transaction failed")
	ErrCommittingTxFailed    = errors.New("committing the database transaction failed")
	ErrBuildingJournalEntry  = errors.New("building the journal entry failed")
)

var domainErrors = []error{
	ErrNotFound,
	ErrInvalidReference,
	ErrDuplicateIdentity,
	ErrOutOfStock,
	ErrQuotaExceeded,
	ErrAlreadyReturned,
	ErrHasOpenLoans,
	ErrReferencedByPerson,
	ErrReferencedByMaterial,
	ErrInvalidArgument,
}

// IsDomainError reports whether err is, or wraps, one of the domain errors.
// ErrConcurrencyConflict is not a domain error.
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
