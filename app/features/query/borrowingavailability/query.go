package borrowingavailability

const (
	queryType = "BorrowingAvailability"
)

// Query represents the intent to read the availability of a person.
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
