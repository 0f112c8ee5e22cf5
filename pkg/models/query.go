package models

// SQLCandidate is the transient result of one natural-language-to-SQL
// request. It is produced and consumed within a single request and never
// persisted.
type SQLCandidate struct {
	RawModelOutput  string `json:"-"`
	NormalizedSQL   string `json:"sql"`
	IsValid         bool   `json:"isValid"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// QueryResult holds rows returned by the SQL executor capability.
type QueryResult struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// GeneratedQuery is the full outcome of the SQL generation pipeline:
// the validated candidate, the optional execution result, and the
// plain-language explanation.
type GeneratedQuery struct {
	Question    string        `json:"query"`
	Candidate   SQLCandidate  `json:"candidate"`
	Explanation string        `json:"explanation"`
	Results     *QueryResult  `json:"results,omitempty"`
	DurationMs  int64         `json:"executionTime,omitempty"`
	ReadOnly    bool          `json:"readOnly"`
	Tables      []string      `json:"selectedTables"`
}
