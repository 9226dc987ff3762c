package circulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibliotecago/library-circulation-go/circulation"
)

func Test_GetConsistencyLevel_DefaultsToStrong(t *testing.T) {
	assert.Equal(t, circulation.StrongConsistency, circulation.GetConsistencyLevel(context.Background()))
}

func Test_GetConsistencyLevel_FromContext(t *testing.T) {
	ctx := circulation.WithEventualConsistency(context.Background())
	assert.Equal(t, circulation.EventualConsistency, circulation.GetConsistencyLevel(ctx))

	ctx = circulation.WithStrongConsistency(ctx)
	assert.Equal(t, circulation.StrongConsistency, circulation.GetConsistencyLevel(ctx))
}

func Test_ConsistencyLevel_String(t *testing.T) {
	assert.Equal(t, "strong", circulation.StrongConsistency.String())
	assert.Equal(t, "eventual", circulation.EventualConsistency.String())
	assert.Equal(t, "unknown", circulation.ConsistencyLevel(99).String())
}

func Test_Loan_IsOpen(t *testing.T) {
	assert.True(t, circulation.Loan{}.IsOpen())
	assert.False(t, circulation.Loan{Returned: true}.IsOpen())
}
