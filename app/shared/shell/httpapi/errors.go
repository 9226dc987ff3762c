package httpapi

import (
	"errors"
	"net/http"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

const codeInternal = "internal"

var errorStatuses = []struct {
	err    error
	status int
	code   string
}{
	{circulation.ErrNotFound, http.StatusNotFound, "not_found"},
	{circulation.ErrInvalidReference, http.StatusUnprocessableEntity, "invalid_reference"},
	{circulation.ErrDuplicateIdentity, http.StatusConflict, "duplicate_identity"},
	{circulation.ErrOutOfStock, http.StatusConflict, "out_of_stock"},
	{circulation.ErrQuotaExceeded, http.StatusConflict, "quota_exceeded"},
	{circulation.ErrAlreadyReturned, http.StatusConflict, "already_returned"},
	{circulation.ErrHasOpenLoans, http.StatusConflict, "has_open_loans"},
	{circulation.ErrReferencedByPerson, http.StatusConflict, "referenced_by_person"},
	{circulation.ErrReferencedByMaterial, http.StatusConflict, "referenced_by_material"},
	{circulation.ErrConcurrencyConflict, http.StatusConflict, "conflict"},
	{circulation.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
}

// StatusFor maps an error returned by a handler to the HTTP status and error code sent to the client.
func StatusFor(err error) (int, string) {
	for _, candidate := range errorStatuses {
		if errors.Is(err, candidate.err) {
			return candidate.status, candidate.code
		}
	}

	return http.StatusInternalServerError, codeInternal
}
