package loansbyperson

const (
	queryType = "LoansByPerson"
)

// Query represents the intent to list the loans of a person.
type Query struct {
	PersonID int64
}

// BuildQuery creates a new Query with the provided person id.
func BuildQuery(personID int64) Query {
	return Query{PersonID: personID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
