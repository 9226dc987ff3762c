package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/app/features/command/checkoutmaterial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removematerial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/returnloan"
	"github.com/bibliotecago/library-circulation-go/app/features/command/saverole"
	"github.com/bibliotecago/library-circulation-go/app/features/query/borrowingavailability"
	"github.com/bibliotecago/library-circulation-go/app/features/query/loandetails"
	"github.com/bibliotecago/library-circulation-go/app/features/query/loanhistory"
	"github.com/bibliotecago/library-circulation-go/app/features/query/materials"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell/httpapi"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

type fixture struct {
	checkout     *fakeCommandHandler[checkoutmaterial.Command, circulation.Loan]
	returnLoan   *fakeCommandHandler[returnloan.Command, circulation.Loan]
	saveRole     *fakeCommandHandler[saverole.Command, circulation.Role]
	removeMat    *fakeCommandHandler[removematerial.Command, struct{}]
	listMats     *fakeQueryHandler[materials.ListQuery, materials.Materials]
	history      *fakeQueryHandler[loanhistory.Query, loanhistory.LoanHistory]
	loanDetails  *fakeQueryHandler[loandetails.Query, circulation.LoanDetails]
	availability *fakeQueryHandler[borrowingavailability.Query, circulation.Availability]
	handlers     httpapi.Handlers
}

func newFixture() *fixture {
	f := &fixture{
		checkout:     &fakeCommandHandler[checkoutmaterial.Command, circulation.Loan]{},
		returnLoan:   &fakeCommandHandler[returnloan.Command, circulation.Loan]{},
		saveRole:     &fakeCommandHandler[saverole.Command, circulation.Role]{},
		removeMat:    &fakeCommandHandler[removematerial.Command, struct{}]{},
		listMats:     &fakeQueryHandler[materials.ListQuery, materials.Materials]{},
		history:      &fakeQueryHandler[loanhistory.Query, loanhistory.LoanHistory]{},
		loanDetails:  &fakeQueryHandler[loandetails.Query, circulation.LoanDetails]{},
		availability: &fakeQueryHandler[borrowingavailability.Query, circulation.Availability]{},
	}

	f.handlers = httpapi.Handlers{
		CheckoutMaterial:      f.checkout,
		ReturnLoan:            f.returnLoan,
		SaveRole:              f.saveRole,
		RemoveMaterial:        f.removeMat,
		ListMaterials:         f.listMats,
		LoanHistory:           f.history,
		LoanDetails:           f.loanDetails,
		BorrowingAvailability: f.availability,
	}

	return f
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body["error"]
}

func Test_Checkout_Created(t *testing.T) {
	// setup
	fakeClock := time.Unix(0, 0).UTC()
	f := newFixture()
	f.checkout.result = circulation.Loan{ID: 9, PersonID: 1, MaterialID: 2, LoanedAt: fakeClock}
	router := httpapi.NewServer(f.handlers, fakePinger{}, httpapi.WithClock(func() time.Time { return fakeClock })).Router()

	// act
	rec := serve(router, http.MethodPost, "/api/prestamo", `{"personId":1,"materialId":2}`)

	// assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, f.checkout.received, 1)
	assert.Equal(t, checkoutmaterial.BuildCommand(1, 2, fakeClock), f.checkout.received[0])

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 9, body["id"])
	assert.Equal(t, false, body["returned"])
	assert.Nil(t, body["returnedAt"])
}

func Test_Checkout_RejectsMalformedBodies(t *testing.T) {
	testCases := []struct {
		description string
		body        string
	}{
		{"unknown field", `{"personId":1,"materialId":2,"extra":true}`},
		{"missing person", `{"materialId":2}`},
		{"negative material", `{"personId":1,"materialId":-2}`},
		{"not json", `personId=1`},
		{"wrong type", `{"personId":"one","materialId":2}`},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// setup
			f := newFixture()
			router := httpapi.NewServer(f.handlers, fakePinger{}).Router()

			// act
			rec := serve(router, http.MethodPost, "/api/prestamo", tc.body)

			// assert
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid_argument", errorCode(t, rec))
			assert.Empty(t, f.checkout.received)
		})
	}
}

func Test_Return_MapsDomainErrors(t *testing.T) {
	// setup
	f := newFixture()
	f.returnLoan.err = errors.Join(circulation.ErrAlreadyReturned, errors.New("loan 4"))
	router := httpapi.NewServer(f.handlers, fakePinger{}).Router()

	// act
	rec := serve(router, http.MethodPost, "/api/prestamo/devolucion", `{"loanId":4}`)

	// assert
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_returned", errorCode(t, rec))
	assert.Equal(t, int64(4), f.returnLoan.received[0].LoanID)
}

func Test_UnmappedErrorsDoNotLeak(t *testing.T) {
	// setup
	f := newFixture()
	f.history.err = errors.New("dial tcp 10.0.0.7:5432: connection refused")
	router := httpapi.NewServer(f.handlers, fakePinger{}).Router()

	// act
	rec := serve(router, http.MethodGet, "/api/prestamo/historial", "")

	// assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal", errorCode(t, rec))
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}

func Test_Routing(t *testing.T) {
	// setup
	f := newFixture()
	router := httpapi.NewServer(f.handlers, fakePinger{}).Router()

	// act
	historyRec := serve(router, http.MethodGet, "/api/prestamo/historial", "")
	loanRec := serve(router, http.MethodGet, "/api/prestamo/12", "")
	availabilityRec := serve(router, http.MethodGet, "/api/persona/disponibilidad/5", "")
	badIDRec := serve(router, http.MethodGet, "/api/prestamo/abc", "")

	// assert
	assert.Equal(t, http.StatusOK, historyRec.Code)
	assert.Len(t, f.history.received, 1)

	assert.Equal(t, http.StatusOK, loanRec.Code)
	assert.Equal(t, []loandetails.Query{loandetails.BuildQuery(12)}, f.loanDetails.received)

	assert.Equal(t, http.StatusOK, availabilityRec.Code)
	assert.Equal(t, []borrowingavailability.Query{borrowingavailability.BuildQuery(5)}, f.availability.received)

	assert.Equal(t, http.StatusBadRequest, badIDRec.Code)
}

func Test_SaveRole_CreateAndUpdate(t *testing.T) {
	// setup
	f := newFixture()
	f.saveRole.result = circulation.Role{ID: 3, Name: "Docente", Capacity: 0}
	router := httpapi.NewServer(f.handlers, fakePinger{}).Router()

	// act
	createRec := serve(router, http.MethodPost, "/api/roles", `{"name":"Docente","capacity":0}`)
	updateRec := serve(router, http.MethodPut, "/api/roles/3", `{"name":"Docente","capacity":5}`)
	missingCapacityRec := serve(router, http.MethodPost, "/api/roles", `{"name":"Docente"}`)

	// assert
	assert.Equal(t, http.StatusCreated, createRec.Code)
	assert.Equal(t, http.StatusOK, updateRec.Code)
	assert.Equal(t, http.StatusBadRequest, missingCapacityRec.Code)
	assert.Equal(t, []saverole.Command{
		saverole.BuildCommand(0, "Docente", 0),
		saverole.BuildCommand(3, "Docente", 5),
	}, f.saveRole.received)
}

func Test_RemoveMaterial(t *testing.T) {
	// setup
	f := newFixture()
	router := httpapi.NewServer(f.handlers, fakePinger{}).Router()

	// act
	removedRec := serve(router, http.MethodDelete, "/api/material/8", "")
	f.removeMat.err = circulation.ErrHasOpenLoans
	guardedRec := serve(router, http.MethodDelete, "/api/material/8", "")

	// assert
	assert.Equal(t, http.StatusNoContent, removedRec.Code)
	assert.Equal(t, http.StatusConflict, guardedRec.Code)
	assert.Equal(t, "has_open_loans", errorCode(t, guardedRec))
}

func Test_Listings_UseReplicaWhenConfigured(t *testing.T) {
	// setup
	f := newFixture()
	router := httpapi.NewServer(f.handlers, fakePinger{}, httpapi.WithReplicaReads()).Router()

	// act
	rec := serve(router, http.MethodGet, "/api/material", "")

	// assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, []materials.ListQuery{materials.BuildListQuery(true)}, f.listMats.received)
}

func Test_Health(t *testing.T) {
	// setup
	f := newFixture()
	healthy := httpapi.NewServer(f.handlers, fakePinger{}).Router()
	unhealthy := httpapi.NewServer(f.handlers, fakePinger{err: errors.New("down")}).Router()

	// act
	okRec := serve(healthy, http.MethodGet, "/health", "")
	downRec := serve(unhealthy, http.MethodGet, "/health", "")

	// assert
	assert.Equal(t, http.StatusOK, okRec.Code)
	assert.Equal(t, http.StatusServiceUnavailable, downRec.Code)
}

func Test_StatusFor(t *testing.T) {
	testCases := []struct {
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
		{errors.Join(circulation.ErrQueryingFailed, errors.New("boom")), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			// act
			status, code := httpapi.StatusFor(errors.Join(errors.New("context"), tc.err))

			// assert
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}
