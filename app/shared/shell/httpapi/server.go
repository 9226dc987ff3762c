package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

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
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Handlers holds one handler per operation. In production they are the observable wrappers
// around the feature handlers, in tests any fake satisfying the interfaces.
type Handlers struct {
	RegisterMaterial   shell.CoreCommandHandler[registermaterial.Command, circulation.MaterialSummary]
	UpdateMaterial     shell.CoreCommandHandler[updatematerial.Command, circulation.MaterialSummary]
	RemoveMaterial     shell.CoreCommandHandler[removematerial.Command, struct{}]
	AddStock           shell.CoreCommandHandler[addstock.Command, circulation.StockChange]
	SavePerson         shell.CoreCommandHandler[saveperson.Command, circulation.PersonProfile]
	RemovePerson       shell.CoreCommandHandler[removeperson.Command, struct{}]
	SaveRole           shell.CoreCommandHandler[saverole.Command, circulation.Role]
	RemoveRole         shell.CoreCommandHandler[removerole.Command, struct{}]
	SaveMaterialType   shell.CoreCommandHandler[savematerialtype.Command, circulation.MaterialType]
	RemoveMaterialType shell.CoreCommandHandler[removematerialtype.Command, struct{}]
	CheckoutMaterial   shell.CoreCommandHandler[checkoutmaterial.Command, circulation.Loan]
	ReturnLoan         shell.CoreCommandHandler[returnloan.Command, circulation.Loan]

	ListMaterials         shell.CoreQueryHandler[materials.ListQuery, materials.Materials]
	GetMaterial           shell.CoreQueryHandler[materials.GetQuery, circulation.MaterialSummary]
	ListPersons           shell.CoreQueryHandler[persons.ListQuery, persons.Persons]
	GetPerson             shell.CoreQueryHandler[persons.GetQuery, circulation.PersonProfile]
	ListRoles             shell.CoreQueryHandler[roles.ListQuery, roles.Roles]
	GetRole               shell.CoreQueryHandler[roles.GetQuery, circulation.Role]
	ListMaterialTypes     shell.CoreQueryHandler[materialtypes.ListQuery, materialtypes.MaterialTypes]
	GetMaterialType       shell.CoreQueryHandler[materialtypes.GetQuery, circulation.MaterialType]
	ActiveLoans           shell.CoreQueryHandler[activeloans.Query, activeloans.ActiveLoans]
	LoanHistory           shell.CoreQueryHandler[loanhistory.Query, loanhistory.LoanHistory]
	LoansByPerson         shell.CoreQueryHandler[loansbyperson.Query, loansbyperson.LoansByPerson]
	BorrowingAvailability shell.CoreQueryHandler[borrowingavailability.Query, circulation.Availability]
	LoanDetails           shell.CoreQueryHandler[loandetails.Query, circulation.LoanDetails]
	CirculationJournal    shell.CoreQueryHandler[circulationjournal.Query, circulationjournal.Journal]
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server routes HTTP requests to the handlers.
type Server struct {
	handlers     Handlers
	pinger       Pinger
	rateLimiter  *RateLimiter
	logger       *slog.Logger
	now          func() time.Time
	replicaReads bool
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimiter throttles the write routes.
func WithRateLimiter(limiter *RateLimiter) Option {
	return func(s *Server) {
		s.rateLimiter = limiter
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock replaces time.Now as the source of checkout, return and registration timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithReplicaReads lets the catalog listings be served by a read replica.
func WithReplicaReads() Option {
	return func(s *Server) {
		s.replicaReads = true
	}
}

// NewServer creates a Server.
func NewServer(handlers Handlers, pinger Pinger, opts ...Option) *Server {
	s := &Server{
		handlers: handlers,
		pinger:   pinger,
		logger:   slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Router returns the chi router with every route registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/material", s.handleListMaterials)
		r.Get("/material/{id}", s.handleGetMaterial)
		r.Get("/material/{id}/journal", s.handleCirculationJournal)
		r.Get("/persona", s.handleListPersons)
		r.Get("/persona/{id}", s.handleGetPerson)
		r.Get("/persona/disponibilidad/{id}", s.handleAvailability)
		r.Get("/roles", s.handleListRoles)
		r.Get("/roles/{id}", s.handleGetRole)
		r.Get("/tipomaterial", s.handleListMaterialTypes)
		r.Get("/tipomaterial/{id}", s.handleGetMaterialType)
		r.Get("/prestamo/activos", s.handleActiveLoans)
		r.Get("/prestamo/historial", s.handleLoanHistory)
		r.Get("/prestamo/persona/{personaId}", s.handleLoansByPerson)
		r.Get("/prestamo/{id}", s.handleGetLoan)

		r.Group(func(r chi.Router) {
			if s.rateLimiter != nil {
				r.Use(s.rateLimiter.Middleware)
			}

			r.Post("/material", s.handleRegisterMaterial)
			r.Put("/material/{id}", s.handleUpdateMaterial)
			r.Delete("/material/{id}", s.handleRemoveMaterial)
			r.Post("/material/{id}/stock", s.handleAddStock)
			r.Post("/persona", s.handleRegisterPerson)
			r.Put("/persona/{id}", s.handleUpdatePerson)
			r.Delete("/persona/{id}", s.handleRemovePerson)
			r.Post("/roles", s.handleCreateRole)
			r.Put("/roles/{id}", s.handleUpdateRole)
			r.Delete("/roles/{id}", s.handleRemoveRole)
			r.Post("/tipomaterial", s.handleCreateMaterialType)
			r.Put("/tipomaterial/{id}", s.handleUpdateMaterialType)
			r.Delete("/tipomaterial/{id}", s.handleRemoveMaterialType)
			r.Post("/prestamo", s.handleCheckout)
			r.Post("/prestamo/devolucion", s.handleReturn)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pinger.Ping(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "health check failed", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail answers with the status mapped from err. Unmapped errors are logged, their text never leaves the server.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	status, code := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error(),
		)
	}

	writeError(w, status, code)
}

func runCommand[C shell.Command, R any](
	s *Server,
	w http.ResponseWriter,
	r *http.Request,
	handler shell.CoreCommandHandler[C, R],
	command C,
	status int,
	render func(R) any,
) {
	result, _, err := handler.Handle(r.Context(), command)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if render == nil {
		w.WriteHeader(status)
		return
	}

	writeJSON(w, status, render(result))
}

func runQuery[Q shell.Query, R any](
	s *Server,
	w http.ResponseWriter,
	r *http.Request,
	handler shell.CoreQueryHandler[Q, R],
	query Q,
	render func(R) any,
) {
	result, err := handler.Handle(r.Context(), query)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, render(result))
}
