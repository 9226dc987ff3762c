package loanhistory

const (
	queryType = "LoanHistory"
)

// Query represents the input for listing all loans. It has no parameters.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
