package loandetails

const (
	queryType = "LoanDetails"
)

// Query represents the intent to read one loan.
type Query struct {
	LoanID int64
}

// BuildQuery creates a new Query with the provided loan id.
func BuildQuery(loanID int64) Query {
	return Query{LoanID: loanID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
