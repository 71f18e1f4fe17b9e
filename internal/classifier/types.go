package classifier

// Candidate is a single classification result: an intent name with the
// confidence the query matches it.
type Candidate struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}
