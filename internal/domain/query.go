package domain

// DefaultQueryLimit is the page size the service applies when no limit is
// sent.
const DefaultQueryLimit = 10

// Query narrows a collection read. A nil *Query reads the collection
// unfiltered, up to DefaultQueryLimit entities.
type Query struct {
	QL     string
	Limit  int
	Cursor string
	Params map[string]string
}

func (q *Query) EffectiveLimit() int {
	if q == nil || q.Limit <= 0 {
		return DefaultQueryLimit
	}
	return q.Limit
}
