package circulationjournal

const (
	queryType = "CirculationJournal"
)

// Query represents the intent to read the journal of a material.
type Query struct {
	MaterialID int64
}

// BuildQuery creates a new Query with the provided material id.
func BuildQuery(materialID int64) Query {
	return Query{MaterialID: materialID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
