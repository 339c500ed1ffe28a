package models

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleRecruiter
}

type View string

const (
	ViewLanding       View = "landing"
	ViewQuestionnaire View = "questionnaire"
	ViewUpload        View = "upload"
	ViewRefinement    View = "refinement"
	ViewResults       View = "results"
)

var (
	ErrInvalidTransition       = errors.New("transition not allowed from current view")
	ErrInvalidRole             = errors.New("unknown role")
	ErrIncompleteQuestionnaire = errors.New("questionnaire is incomplete")
	ErrDocumentRequired        = errors.New("a readable document is required")
	ErrSessionBusy             = errors.New("an analysis or chat call is in flight")
)

// Session is the aggregate for one wizard run. All mutations go through
// its methods so the loading flag and the current view are always
// checked and changed under the same lock.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
	view       View
	role       Role
	answers    AnswerSet
	document   *UploadedDocument
	transcript Transcript
	result     *AnalysisResult
	loading    bool
	lastError  string
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New(),
		CreatedAt:  now,
		lastActive: now,
		view:       ViewLanding,
		answers:    AnswerSet{},
		transcript: NewTranscript(),
	}
}

// SelectRole moves Landing -> Questionnaire. The role is immutable for
// the rest of the session; prior answers are dropped.
func (s *Session) SelectRole(role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !role.Valid() {
		return ErrInvalidRole
	}
	if s.view != ViewLanding {
		return ErrInvalidTransition
	}

	s.role = role
	s.answers = AnswerSet{}
	s.view = ViewQuestionnaire
	s.lastError = ""
	s.touch()
	return nil
}

// MergeAnswers stores questionnaire values. Allowed in any view that can
// still reach the questionnaire backwards, so re-entered answers survive
// navigation.
func (s *Session) MergeAnswers(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewQuestionnaire {
		return ErrInvalidTransition
	}
	for key, value := range values {
		s.answers.Set(key, value)
	}
	s.touch()
	return nil
}

// AdvanceFromQuestionnaire moves Questionnaire -> Upload, gated on every
// required key for the active role holding a non-blank value.
func (s *Session) AdvanceFromQuestionnaire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewQuestionnaire {
		return ErrInvalidTransition
	}
	if !s.answers.IsComplete(RequiredKeys(s.role)) {
		return ErrIncompleteQuestionnaire
	}
	s.view = ViewUpload
	s.lastError = ""
	s.touch()
	return nil
}

// AttachDocument stores an ingested document while on the upload view.
func (s *Session) AttachDocument(doc *UploadedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewUpload {
		return ErrInvalidTransition
	}
	s.document = doc
	s.lastError = ""
	s.touch()
	return nil
}

// AdvanceToRefinement moves Upload -> Refinement for the job seeker
// path. It requires a successfully ingested document.
func (s *Session) AdvanceToRefinement() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewUpload || s.role != RoleJobSeeker {
		return ErrInvalidTransition
	}
	if s.document == nil || s.document.RawText == "" {
		return ErrDocumentRequired
	}
	s.view = ViewRefinement
	s.lastError = ""
	s.touch()
	return nil
}

// Back navigates Refinement -> Upload or Upload -> Questionnaire without
// losing entered data. It is refused while a call is in flight.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return ErrSessionBusy
	}
	switch s.view {
	case ViewRefinement:
		s.view = ViewUpload
	case ViewUpload:
		s.view = ViewQuestionnaire
	default:
		return ErrInvalidTransition
	}
	s.lastError = ""
	s.touch()
	return nil
}

// BeginAnalysis is the single-flight gate for the structured call. It
// reports started=false when a call is already running or a result
// already exists, so re-entering the triggering transition stays
// idempotent. The idempotency check runs before the view gate: a
// completed session sits on the results view and must still answer
// with a no-op, not an error. The check and the flag flip happen under
// one lock.
func (s *Session) BeginAnalysis() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading || s.result != nil {
		return false, nil
	}
	if s.view != ViewUpload && s.view != ViewRefinement {
		return false, ErrInvalidTransition
	}
	if s.document == nil || s.document.RawText == "" {
		return false, ErrDocumentRequired
	}

	s.loading = true
	s.lastError = ""
	s.touch()
	return true, nil
}

// CompleteAnalysis stores the result and lands on the results view.
func (s *Session) CompleteAnalysis(result *AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = result
	s.view = ViewResults
	s.loading = false
	s.touch()
}

// FailAnalysis clears the loading flag and records the user-facing
// message. The session stays on its current view so the user may retry.
func (s *Session) FailAnalysis(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.lastError = message
	s.touch()
}

// BeginChat appends the user's turn and takes the loading flag for a
// conversational call. The turn is retracted by FailChat if the call
// does not complete.
func (s *Session) BeginChat(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewRefinement || s.role != RoleJobSeeker {
		return ErrInvalidTransition
	}
	if s.loading {
		return ErrSessionBusy
	}

	s.transcript.Append(ChatRoleUser, text)
	s.loading = true
	s.lastError = ""
	s.touch()
	return nil
}

func (s *Session) CompleteChat(reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript.Append(ChatRoleAssistant, reply)
	s.loading = false
	s.touch()
}

// FailChat rolls the transcript back to confirmed exchanges only: the
// user turn appended by BeginChat is removed.
func (s *Session) FailChat(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript.RetractLast()
	s.loading = false
	s.lastError = message
	s.touch()
}

// Reset returns the session to its starting defaults, including the
// synthetic greeting turn. Refused while a call is in flight because
// there is no cancellation for a request already sent.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return ErrSessionBusy
	}

	s.view = ViewLanding
	s.role = ""
	s.answers = AnswerSet{}
	s.document = nil
	s.transcript = NewTranscript()
	s.result = nil
	s.lastError = ""
	s.touch()
	return nil
}

func (s *Session) Result() *AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot copies the session fields for read-only use outside the
// lock (handlers, prompt building).
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		ID:         s.ID.String(),
		View:       s.view,
		Role:       s.role,
		Answers:    s.answers.Clone(),
		Transcript: s.transcript.Clone(),
		HasResult:  s.result != nil,
		Loading:    s.loading,
		LastError:  s.lastError,
	}
	if s.document != nil {
		doc := *s.document
		snap.Document = &doc
	}
	return snap
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}
