package main

import (
	"errors"

	"github.com/bibliotecago/library-circulation-go/app/features/command/addstock"
	"github.com/bibliotecago/library-circulation-go/app/features/command/checkoutmaterial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/registermaterial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removematerial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removematerialtype"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removeperson"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removerole"
	"github.com/bibliotecago/library-circulation-go/app/features/command/returnloan"
	"github.com/bibliotecago/library-circulation-go/app/features/command/savematerialtype"
	"github.com/bibliotecago/library-circulation-go/app/features/command/saveperson"
	"github.com/bibliotecago/library-circulation-go/app/features/command/saverole"
	"github.com/bibliotecago/library-circulation-go/app/features/command/updatematerial"
	"github.com/bibliotecago/library-circulation-go/app/features/query/activeloans"
	"github.com/bibliotecago/library-circulation-go/app/features/query/borrowingavailability"
	"github.com/bibliotecago/library-circulation-go/app/features/query/circulationjournal"
	"github.com/bibliotecago/library-circulation-go/app/features/query/loandetails"
	"github.com/bibliotecago/library-circulation-go/app/features/query/loanhistory"
	"github.com/bibliotecago/library-circulation-go/app/features/query/loansbyperson"
	"github.com/bibliotecago/library-circulation-go/app/features/query/materials"
	"github.com/bibliotecago/library-circulation-go/app/features/query/materialtypes"
	"github.com/bibliotecago/library-circulation-go/app/features/query/persons"
	"github.com/bibliotecago/library-circulation-go/app/features/query/roles"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell/httpapi"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell/observable"
	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine"
)

// wiring collects the errors of wrapping many handlers so they can be checked once.
type wiring struct {
	options []observable.Option
	errs    []error
}

func command[C shell.Command, R any](w *wiring, core shell.CoreCommandHandler[C, R]) shell.CoreCommandHandler[C, R] {
	wrapped, err := observable.NewCommandWrapper(core, w.options...)
	if err != nil {
		w.errs = append(w.errs, err)
		return core
	}

	return wrapped
}

func query[Q shell.Query, R any](w *wiring, core shell.CoreQueryHandler[Q, R]) shell.CoreQueryHandler[Q, R] {
	wrapped, err := observable.NewQueryWrapper(core, w.options...)
	if err != nil {
		w.errs = append(w.errs, err)
		return core
	}

	return wrapped
}

func buildHandlers(
	store postgresengine.Store,
	retryOptions []shell.RetryOption,
	wrapperOptions []observable.Option,
) (httpapi.Handlers, error) {

	w := &wiring{options: wrapperOptions}

	handlers := httpapi.Handlers{
		RegisterMaterial: command(w, shell.CoreCommandHandler[registermaterial.Command, circulation.MaterialSummary](
			registermaterial.NewCommandHandler(store))),
		UpdateMaterial: command(w, shell.CoreCommandHandler[updatematerial.Command, circulation.MaterialSummary](
			updatematerial.NewCommandHandler(store, updatematerial.WithRetryOptions(retryOptions...)))),
		RemoveMaterial: command(w, shell.CoreCommandHandler[removematerial.Command, struct{}](
			removematerial.NewCommandHandler(store, removematerial.WithRetryOptions(retryOptions...)))),
		AddStock: command(w, shell.CoreCommandHandler[addstock.Command, circulation.StockChange](
			addstock.NewCommandHandler(store))),
		SavePerson: command(w, shell.CoreCommandHandler[saveperson.Command, circulation.PersonProfile](
			saveperson.NewCommandHandler(store))),
		RemovePerson: command(w, shell.CoreCommandHandler[removeperson.Command, struct{}](
			removeperson.NewCommandHandler(store, removeperson.WithRetryOptions(retryOptions...)))),
		SaveRole: command(w, shell.CoreCommandHandler[saverole.Command, circulation.Role](
			saverole.NewCommandHandler(store))),
		RemoveRole: command(w, shell.CoreCommandHandler[removerole.Command, struct{}](
			removerole.NewCommandHandler(store, removerole.WithRetryOptions(retryOptions...)))),
		SaveMaterialType: command(w, shell.CoreCommandHandler[savematerialtype.Command, circulation.MaterialType](
			savematerialtype.NewCommandHandler(store))),
		RemoveMaterialType: command(w, shell.CoreCommandHandler[removematerialtype.Command, struct{}](
			removematerialtype.NewCommandHandler(store, removematerialtype.WithRetryOptions(retryOptions...)))),
		CheckoutMaterial: command(w, shell.CoreCommandHandler[checkoutmaterial.Command, circulation.Loan](
			checkoutmaterial.NewCommandHandler(store, checkoutmaterial.WithRetryOptions(retryOptions...)))),
		ReturnLoan: command(w, shell.CoreCommandHandler[returnloan.Command, circulation.Loan](
			returnloan.NewCommandHandler(store, returnloan.WithRetryOptions(retryOptions...)))),

		ListMaterials: query(w, shell.CoreQueryHandler[materials.ListQuery, materials.Materials](
			materials.NewListQueryHandler(store))),
		GetMaterial: query(w, shell.CoreQueryHandler[materials.GetQuery, circulation.MaterialSummary](
			materials.NewGetQueryHandler(store))),
		ListPersons: query(w, shell.CoreQueryHandler[persons.ListQuery, persons.Persons](
			persons.NewListQueryHandler(store))),
		GetPerson: query(w, shell.CoreQueryHandler[persons.GetQuery, circulation.PersonProfile](
			persons.NewGetQueryHandler(store))),
		ListRoles: query(w, shell.CoreQueryHandler[roles.ListQuery, roles.Roles](
			roles.NewListQueryHandler(store))),
		GetRole: query(w, shell.CoreQueryHandler[roles.GetQuery, circulation.Role](
			roles.NewGetQueryHandler(store))),
		ListMaterialTypes: query(w, shell.CoreQueryHandler[materialtypes.ListQuery, materialtypes.MaterialTypes](
			materialtypes.NewListQueryHandler(store))),
		GetMaterialType: query(w, shell.CoreQueryHandler[materialtypes.GetQuery, circulation.MaterialType](
			materialtypes.NewGetQueryHandler(store))),
		ActiveLoans: query(w, shell.CoreQueryHandler[activeloans.Query, activeloans.ActiveLoans](
			activeloans.NewQueryHandler(store))),
		LoanHistory: query(w, shell.CoreQueryHandler[loanhistory.Query, loanhistory.LoanHistory](
			loanhistory.NewQueryHandler(store))),
		LoansByPerson: query(w, shell.CoreQueryHandler[loansbyperson.Query, loansbyperson.LoansByPerson](
			loansbyperson.NewQueryHandler(store))),
		BorrowingAvailability: query(w, shell.CoreQueryHandler[borrowingavailability.Query, circulation.Availability](
			borrowingavailability.NewQueryHandler(store))),
		LoanDetails: query(w, shell.CoreQueryHandler[loandetails.Query, circulation.LoanDetails](
			loandetails.NewQueryHandler(store))),
		CirculationJournal: query(w, shell.CoreQueryHandler[circulationjournal.Query, circulationjournal.Journal](
			circulationjournal.NewQueryHandler(store))),
	}

	return handlers, errors.Join(w.errs...)
}
