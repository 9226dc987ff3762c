package circulation

import "context"

// ConsistencyLevel defines which database node a read may be served from.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database. This is the default, and the only level
	// the loan ledger and the loan views ever use: Checkout, Return and the delete guards must re-read the
	// current state, and the views must never show a partial loan/stock state.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica database when one is configured.
	// Only the plain catalog listings opt into it.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "circulation.consistency_level"

// WithStrongConsistency returns a context that routes reads to the primary database.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that allows reads from a replica database.
//
// Example usage:
//
//	ctx = circulation.WithEventualConsistency(ctx)
//	materials, err := store.ListMaterials(ctx)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If no consistency level is set, it returns StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
