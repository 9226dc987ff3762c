package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrMalformedRequest is joined with circulation.ErrInvalidArgument for bodies and path
// parameters that cannot be decoded.
var ErrMalformedRequest = errors.New("malformed request")

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		return errors.Join(circulation.ErrInvalidArgument, ErrMalformedRequest, err)
	}

	if err := validate.Struct(out); err != nil {
		return errors.Join(circulation.ErrInvalidArgument, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Join(circulation.ErrInvalidArgument, ErrMalformedRequest)
	}

	return id, nil
}
