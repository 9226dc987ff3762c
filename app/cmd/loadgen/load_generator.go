package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bibliotecago/library-circulation-go/app/features/command/checkoutmaterial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/registermaterial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/returnloan"
	"github.com/bibliotecago/library-circulation-go/app/features/command/savematerialtype"
	"github.com/bibliotecago/library-circulation-go/app/features/command/saveperson"
	"github.com/bibliotecago/library-circulation-go/app/features/command/saverole"
	"github.com/bibliotecago/library-circulation-go/app/features/query/activeloans"
	"github.com/bibliotecago/library-circulation-go/app/features/query/materials"
	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
	"github.com/bibliotecago/library-circulation-go/circulation"
	"github.com/bibliotecago/library-circulation-go/circulation/postgresengine"
)

const (
	outcomeSuccess = "success"
	outcomeOther   = "other"
)

var knownOutcomes = []struct {
	err  error
	name string
}{
	{circulation.ErrOutOfStock, "out_of_stock"},
	{circulation.ErrQuotaExceeded, "quota_exceeded"},
	{circulation.ErrAlreadyReturned, "already_returned"},
	{circulation.ErrConcurrencyConflict, "conflict"},
}

// LoadGenerator issues checkouts and returns at a fixed rate from many goroutines at once.
type LoadGenerator struct {
	store  postgresengine.Store
	config Config
	logger *slog.Logger

	checkout checkoutmaterial.CommandHandler
	ret      returnloan.CommandHandler

	personIDs   []int64
	materialIDs []int64

	wg       sync.WaitGroup
	mu       sync.Mutex
	openLoan []int64
	counts   map[string]int
	retries  int
}

// NewLoadGenerator creates a LoadGenerator working on store.
func NewLoadGenerator(store postgresengine.Store, config Config, logger *slog.Logger) *LoadGenerator {
	retry := []shell.RetryOption{shell.WithMaxAttempts(10), shell.WithBaseDelay(2 * time.Millisecond)}

	return &LoadGenerator{
		store:    store,
		config:   config,
		logger:   logger,
		checkout: checkoutmaterial.NewCommandHandler(store, checkoutmaterial.WithRetryOptions(retry...)),
		ret:      returnloan.NewCommandHandler(store, returnloan.WithRetryOptions(retry...)),
		counts:   map[string]int{},
	}
}

// Seed registers a role, a material type, the borrowers and the titles the load runs against.
func (lg *LoadGenerator) Seed(ctx context.Context) error {
	suffix := time.Now().UnixNano()

	role, _, err := saverole.NewCommandHandler(lg.store).
		Handle(ctx, saverole.BuildCommand(0, fmt.Sprintf("loadgen-%d", suffix), lg.config.Capacity))
	if err != nil {
		return err
	}

	mt, _, err := savematerialtype.NewCommandHandler(lg.store).
		Handle(ctx, savematerialtype.BuildCommand(0, fmt.Sprintf("loadgen-%d", suffix)))
	if err != nil {
		return err
	}

	persons := saveperson.NewCommandHandler(lg.store)
	for i := range lg.config.Persons {
		cedula := fmt.Sprintf("LG-%d-%04d", suffix, i)

		person, _, err := persons.Handle(ctx, saveperson.BuildRegisterCommand(fmt.Sprintf("Borrower %d", i), cedula, role.ID))
		if err != nil {
			return err
		}

		lg.personIDs = append(lg.personIDs, person.ID)
	}

	register := registermaterial.NewCommandHandler(lg.store)
	for i := range lg.config.Materials {
		command := registermaterial.BuildCommand(fmt.Sprintf("Title %d", i), mt.ID, lg.config.StockPerTitle, time.Now())

		material, _, err := register.Handle(ctx, command)
		if err != nil {
			return err
		}

		lg.materialIDs = append(lg.materialIDs, material.ID)
	}

	lg.logger.Info("seeded", "persons", len(lg.personIDs), "materials", len(lg.materialIDs))

	return nil
}

// Run issues requests until ctx is done and waits for the ones in flight.
func (lg *LoadGenerator) Run(ctx context.Context) {
	start := time.Now()
	ticker := time.NewTicker(time.Second / time.Duration(lg.config.Rate))
	defer ticker.Stop()

	report := time.NewTicker(10 * time.Second)
	defer report.Stop()

	lg.logger.Info("load generation started", "rate", lg.config.Rate, "return_percent", lg.config.ReturnPercent)

	for {
		select {
		case <-ctx.Done():
			lg.wg.Wait()
			lg.logStats("final", time.Since(start))
			return
		case <-report.C:
			lg.logStats("progress", time.Since(start))
		case <-ticker.C:
			lg.wg.Add(1)
			go lg.executeScenario(context.WithoutCancel(ctx))
		}
	}
}

func (lg *LoadGenerator) executeScenario(ctx context.Context) {
	defer lg.wg.Done()

	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		result shell.HandlerResult
		err    error
	)

	if loanID, ok := lg.pickOpenLoan(); ok && rand.IntN(100) < lg.config.ReturnPercent { //nolint:gosec // load generation
		_, result, err = lg.ret.Handle(opCtx, returnloan.BuildCommand(loanID, time.Now()))
	} else {
		personID := lg.personIDs[rand.IntN(len(lg.personIDs))]       //nolint:gosec // load generation
		materialID := lg.materialIDs[rand.IntN(len(lg.materialIDs))] //nolint:gosec // load generation

		var loan circulation.Loan
		loan, result, err = lg.checkout.Handle(opCtx, checkoutmaterial.BuildCommand(personID, materialID, time.Now()))
		if err == nil {
			lg.mu.Lock()
			lg.openLoan = append(lg.openLoan, loan.ID)
			lg.mu.Unlock()
		}
	}

	lg.record(result, err)
}

// pickOpenLoan removes a random loan from the locally tracked open loans.
func (lg *LoadGenerator) pickOpenLoan() (int64, bool) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	if len(lg.openLoan) == 0 {
		return 0, false
	}

	i := rand.IntN(len(lg.openLoan)) //nolint:gosec // load generation
	loanID := lg.openLoan[i]
	lg.openLoan[i] = lg.openLoan[len(lg.openLoan)-1]
	lg.openLoan = lg.openLoan[:len(lg.openLoan)-1]

	return loanID, true
}

func (lg *LoadGenerator) record(result shell.HandlerResult, err error) {
	outcome := outcomeSuccess

	if err != nil {
		outcome = outcomeOther
		for _, known := range knownOutcomes {
			if errors.Is(err, known.err) {
				outcome = known.name
				break
			}
		}

		if outcome == outcomeOther {
			lg.logger.Warn("request failed", "error", err.Error())
		}
	}

	lg.mu.Lock()
	lg.counts[outcome]++
	lg.retries += max(result.RetryAttempts-1, 0)
	lg.mu.Unlock()
}

func (lg *LoadGenerator) logStats(label string, elapsed time.Duration) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	total := 0
	args := []any{"elapsed", elapsed.Truncate(time.Second).String()}

	for _, name := range []string{outcomeSuccess, "out_of_stock", "quota_exceeded", "already_returned", "conflict", outcomeOther} {
		total += lg.counts[name]
		args = append(args, name, lg.counts[name])
	}

	args = append(args, "requests", total, "retries", lg.retries)
	if elapsed > 0 {
		args = append(args, "req_per_sec", fmt.Sprintf("%.1f", float64(total)/elapsed.Seconds()))
	}

	lg.logger.Info("load "+label, args...)
}

// Verify checks that for every seeded title the units out on loan equal the open loans in the ledger.
func (lg *LoadGenerator) Verify(ctx context.Context) error {
	catalog, err := materials.NewListQueryHandler(lg.store).Handle(ctx, materials.BuildListQuery(false))
	if err != nil {
		return err
	}

	active, err := activeloans.NewQueryHandler(lg.store).Handle(ctx, activeloans.BuildQuery())
	if err != nil {
		return err
	}

	openByMaterial := map[int64]int{}
	for _, loan := range active.Loans {
		openByMaterial[loan.MaterialID]++
	}

	seeded := map[int64]bool{}
	for _, id := range lg.materialIDs {
		seeded[id] = true
	}

	var mismatches []error
	for _, material := range catalog.Items {
		if !seeded[material.ID] {
			continue
		}

		if material.CurrentQuantity < 0 || material.RegisteredQuantity-material.CurrentQuantity != openByMaterial[material.ID] {
			mismatches = append(mismatches, fmt.Errorf("material %d: registered %d, current %d, open loans %d",
				material.ID, material.RegisteredQuantity, material.CurrentQuantity, openByMaterial[material.ID]))
		}
	}

	if len(mismatches) > 0 {
		return errors.Join(mismatches...)
	}

	lg.logger.Info("stock reconciles with open loans", "materials", len(lg.materialIDs), "open_loans", active.Count)

	return nil
}
