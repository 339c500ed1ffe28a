package models

// SessionSnapshot is the read model handed to handlers and prompt
// building. It is a copy; mutating it does not touch the session.
type SessionSnapshot struct {
	ID         string            `json:"id"`
	View       View              `json:"view"`
	Role       Role              `json:"role,omitempty"`
	Answers    AnswerSet         `json:"answers"`
	Document   *UploadedDocument `json:"document,omitempty"`
	Transcript Transcript        `json:"transcript"`
	HasResult  bool              `json:"has_result"`
	Loading    bool              `json:"loading"`
	LastError  string            `json:"last_error,omitempty"`
}

type SelectRoleRequest struct {
	Role Role `json:"role"`
}

type AnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply      ChatTurn   `json:"reply"`
	Transcript Transcript `json:"transcript"`
}

// ResultView is the rendered projection of an AnalysisResult: banding
// is display emphasis only and never feeds back into any logic.
type ResultView struct {
	MatchPercentage int         `json:"match_percentage"`
	MatchBand       string      `json:"match_band"`
	MatchText       string      `json:"match_text"`
	MatchesTitle    string      `json:"matches_title"`
	Matches         []MatchCard `json:"matches"`
	Recommendations []string    `json:"recommendations"`
}

type MatchCard struct {
	Title       string `json:"title"`
	Secondary   string `json:"secondary"`
	Location    string `json:"location"`
	Salary      string `json:"salary,omitempty"`
	Match       int    `json:"match"`
	Band        string `json:"band"`
	Description string `json:"description"`
}
