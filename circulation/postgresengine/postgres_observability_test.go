package postgresengine_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotecago/library-circulation-go/circulation"
	. "github.com/bibliotecago/library-circulation-go/circulation/postgresengine"
	. "github.com/bibliotecago/library-circulation-go/testutil/fixtures"
	"github.com/bibliotecago/library-circulation-go/testutil/postgreswrapper"
	"github.com/bibliotecago/library-circulation-go/testutil/testdoubles"
)

func Test_Store_Logs_SQL_And_Operations(t *testing.T) {
	// setup
	logHandler := testdoubles.NewLogHandlerSpy(false)
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, WithLogger(slog.New(logHandler)))
	defer wrapper.Close()
	store := wrapper.GetStore()

	// act
	_, err := store.ListRoles(context.Background())

	// assert
	require.NoError(t, err)
	assert.True(t, logHandler.HasDebugLogWithDurationMS("executed sql for: list_roles"))
	assert.True(t, logHandler.HasLog(slog.LevelInfo, "circulation operation: list_roles"))
}

func Test_Store_Prefers_ContextualLogger(t *testing.T) {
	// setup
	logHandler := testdoubles.NewLogHandlerSpy(false)
	contextualLogger := testdoubles.NewContextualLoggerSpy(true)
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, WithLogger(slog.New(logHandler)), WithContextualLogger(contextualLogger))
	defer wrapper.Close()

	// act
	_, err := wrapper.GetStore().ListMaterials(context.Background())

	// assert
	require.NoError(t, err)
	assert.True(t, contextualLogger.HasInfoLog("circulation operation: list_materials"))
	assert.False(t, logHandler.HasLog(slog.LevelInfo, "circulation operation: list_materials"))
}

func Test_Store_Records_Metrics_And_Spans(t *testing.T) {
	// setup
	ctx := context.Background()
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	tracing := testdoubles.NewTracingCollectorSpy(true)
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, WithMetrics(metrics), WithTracing(tracing))
	defer wrapper.Close()
	store := wrapper.GetStore()
	fakeClock := time.Unix(0, 0).UTC()

	// arrange
	person := GivenPerson(t, ctx, store, GivenRole(t, ctx, store, 1))
	material := GivenMaterial(t, ctx, store, GivenMaterialType(t, ctx, store), 1, fakeClock)
	loan := GivenLoanWasOpened(t, ctx, store, person.ID, material.ID, fakeClock.Add(time.Minute))
	GivenLoanWasClosed(t, ctx, store, loan, fakeClock.Add(time.Hour))

	// act
	_, conflictErr := store.CloseLoan(ctx, loan, fakeClock.Add(time.Hour), GivenJournalEntry(t, "LoanClosed", material.ID, fakeClock))
	_, notFoundErr := store.GetLoan(ctx, 4711)

	// assert
	assert.ErrorIs(t, conflictErr, circulation.ErrConcurrencyConflict)
	assert.ErrorIs(t, notFoundErr, circulation.ErrNotFound)

	assert.True(t, metrics.HasDurationRecordForMetric("circulationstore_operation_duration_seconds").
		WithOperation("open_loan").WithStatus("success").Assert())
	assert.True(t, metrics.HasCounterRecordForMetric("circulationstore_concurrency_conflicts_total").
		WithOperation("close_loan").Assert())
	assert.True(t, metrics.HasDurationRecordForMetric("circulationstore_operation_duration_seconds").
		WithOperation("get_loan").WithStatus("rejected").Assert())
	assert.False(t, metrics.HasCounterRecordForMetric("circulationstore_database_errors_total").Assert(),
		"domain rejections are not database errors")

	assert.True(t, tracing.HasFinishedSpan("circulationstore.open_loan", "success"))
	assert.True(t, tracing.HasFinishedSpan("circulationstore.close_loan", "conflict"))
}
