package httpapi

import (
	"net/http"

	"github.com/bibliotecago/library-circulation-go/app/features/command/checkoutmaterial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/returnloan"
	"github.com/bibliotecago/library-circulation-go/app/features/query/activeloans"
	"github.com/bibliotecago/library-circulation-go/app/features/query/borrowingavailability"
	"github.com/bibliotecago/library-circulation-go/app/features/query/loandetails"
	"github.com/bibliotecago/library-circulation-go/app/features/query/loanhistory"
	"github.com/bibliotecago/library-circulation-go/app/features/query/loansbyperson"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := checkoutmaterial.BuildCommand(req.PersonID, req.MaterialID, s.now())
	runCommand(s, w, r, s.handlers.CheckoutMaterial, command, http.StatusCreated, func(l circulation.Loan) any {
		return toLoanResponse(l)
	})
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := returnloan.BuildCommand(req.LoanID, s.now())
	runCommand(s, w, r, s.handlers.ReturnLoan, command, http.StatusOK, func(l circulation.Loan) any {
		return toLoanResponse(l)
	})
}

func (s *Server) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runQuery(s, w, r, s.handlers.LoanDetails, loandetails.BuildQuery(id), func(l circulation.LoanDetails) any {
		return toLoanDetailsResponse(l)
	})
}

func (s *Server) handleActiveLoans(w http.ResponseWriter, r *http.Request) {
	runQuery(s, w, r, s.handlers.ActiveLoans, activeloans.BuildQuery(), func(result activeloans.ActiveLoans) any {
		return toLoanDetailsResponses(result.Loans)
	})
}

func (s *Server) handleLoanHistory(w http.ResponseWriter, r *http.Request) {
	runQuery(s, w, r, s.handlers.LoanHistory, loanhistory.BuildQuery(), func(result loanhistory.LoanHistory) any {
		return toLoanDetailsResponses(result.Loans)
	})
}

func (s *Server) handleLoansByPerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "personaId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runQuery(s, w, r, s.handlers.LoansByPerson, loansbyperson.BuildQuery(id), func(result loansbyperson.LoansByPerson) any {
		return toLoanDetailsResponses(result.Loans)
	})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	query := borrowingavailability.BuildQuery(id)
	runQuery(s, w, r, s.handlers.BorrowingAvailability, query, func(a circulation.Availability) any {
		return toAvailabilityResponse(a)
	})
}
