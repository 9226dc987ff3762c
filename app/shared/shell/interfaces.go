package shell

import (
	"context"
)

// Command is the contract for all command types. CommandType names the command in logs, metrics and spans.
type Command interface {
	CommandType() string
}

// Query is the contract for all query types. QueryType names the query in logs, metrics and spans.
type Query interface {
	QueryType() string
}

// CoreCommandHandler is a command handler with business logic and retry but without observability.
// Besides the result it returns HandlerResult with the retry metadata for the observability wrapper.
type CoreCommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, HandlerResult, error)
}

// CoreQueryHandler is a query handler without observability.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
