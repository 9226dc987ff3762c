package core

// DecisionResult represents the outcome of a Decide function: either a domain event to record
// together with the state change, or the domain error that rejects the command.
//
// Build it with SuccessDecision or RejectedDecision only.
type DecisionResult struct {
	Outcome string
	Event   DomainEvent // nil for rejected decisions
	Err     error
}

const (
	successOutcome  = "success"
	rejectedOutcome = "rejected"
)

// SuccessDecision creates a DecisionResult that accepts the command and records event.
func SuccessDecision(event DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Event:   event,
	}
}

// RejectedDecision creates a DecisionResult that refuses the command with err.
func RejectedDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: rejectedOutcome,
		Err:     err,
	}
}

// IsRejected reports whether the command was refused.
func (r DecisionResult) IsRejected() bool {
	return r.Outcome == rejectedOutcome
}

// HasError returns the rejection error, or nil.
func (r DecisionResult) HasError() error {
	if r.IsRejected() {
		return r.Err
	}

	return nil
}
