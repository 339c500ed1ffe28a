package models

// AnalysisResult is the schema-constrained payload returned by the
// structured analysis call. The JSON tags mirror the wire schema sent
// to the model, so the payload text unmarshals directly into it.
type AnalysisResult struct {
	MatchPercentage int         `json:"matchPercentage"`
	MatchText       string      `json:"matchText"`
	Recommendations []string    `json:"recommendations"`
	Matches         []MatchItem `json:"matches"`
}

type MatchItem struct {
	Title       string `json:"title"`
	Secondary   string `json:"secondary"`
	Location    string `json:"location"`
	Salary      string `json:"salary,omitempty"`
	Match       int    `json:"match"`
	Description string `json:"description"`
}
