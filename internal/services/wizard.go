package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"smartbot/career-matcher/internal/models"
)

// User-facing banners for gateway failures. Underlying errors are
// logged, never shown.
const (
	MsgAnalysisFailed = "Ошибка при анализе данных. Убедитесь, что ваш файл содержит достаточно текста, и повторите попытку."
	MsgChatFailed     = "Ошибка связи с SmartBot. Пожалуйста, попробуйте позже."
)

// WizardService drives the view state machine. Handlers never mutate a
// session directly; everything goes through here so transition guards
// and the single-flight rule stay in one place.
type WizardService interface {
	SelectRole(session *models.Session, role models.Role) error
	SubmitAnswers(session *models.Session, answers map[string]string) error
	AttachDocument(session *models.Session, doc *models.UploadedDocument) error
	Advance(ctx context.Context, session *models.Session) error
	Back(session *models.Session) error
	SendChatMessage(ctx context.Context, session *models.Session, message string) (models.ChatTurn, error)
	Finalize(ctx context.Context, session *models.Session) error
	Reset(session *models.Session) error
}

type wizardService struct {
	analyzer AnalyzerService
	logger   *zap.Logger
}

func NewWizardService(analyzer AnalyzerService, logger *zap.Logger) WizardService {
	return &wizardService{
		analyzer: analyzer,
		logger:   logger,
	}
}

func (w *wizardService) SelectRole(session *models.Session, role models.Role) error {
	return session.SelectRole(role)
}

func (w *wizardService) SubmitAnswers(session *models.Session, answers map[string]string) error {
	return session.MergeAnswers(answers)
}

func (w *wizardService) AttachDocument(session *models.Session, doc *models.UploadedDocument) error {
	return session.AttachDocument(doc)
}

// Advance performs the forward transition for the current view. The
// recruiter path leaving Upload triggers the structured analysis; the
// job seeker path detours through the refinement chat.
func (w *wizardService) Advance(ctx context.Context, session *models.Session) error {
	switch session.View() {
	case models.ViewQuestionnaire:
		return session.AdvanceFromQuestionnaire()
	case models.ViewUpload:
		if session.Role() == models.RoleJobSeeker {
			return session.AdvanceToRefinement()
		}
		return w.runAnalysis(ctx, session, "")
	case models.ViewResults:
		// Replaying the forward transition on a finished session is a
		// no-op, same as re-entering the analysis trigger.
		return nil
	default:
		return models.ErrInvalidTransition
	}
}

func (w *wizardService) Back(session *models.Session) error {
	return session.Back()
}

// SendChatMessage appends the user's turn, performs one conversational
// call, and appends the assistant's reply. On failure the user turn is
// retracted so the transcript only holds confirmed exchanges.
func (w *wizardService) SendChatMessage(ctx context.Context, session *models.Session, message string) (models.ChatTurn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.ChatTurn{}, ErrEmptyMessage
	}

	if err := session.BeginChat(message); err != nil {
		return models.ChatTurn{}, err
	}

	snapshot := session.Snapshot()
	reply, err := w.analyzer.Converse(ctx, snapshot.Transcript)
	if err != nil {
		w.logger.Error("refinement chat failed",
			zap.String("session_id", snapshot.ID),
			zap.Error(err),
		)
		session.FailChat(MsgChatFailed)
		return models.ChatTurn{}, ErrChatFailed
	}

	session.CompleteChat(reply)
	return models.ChatTurn{Role: models.ChatRoleAssistant, Text: reply}, nil
}

// Finalize leaves the refinement chat and runs the structured analysis
// with the context built from the user's turns. On a session that
// already holds a result it is a no-op.
func (w *wizardService) Finalize(ctx context.Context, session *models.Session) error {
	switch session.View() {
	case models.ViewRefinement:
	case models.ViewResults:
		return nil
	default:
		return models.ErrInvalidTransition
	}

	chatContext := session.Snapshot().Transcript.UserContext(chatContextSeparator)
	return w.runAnalysis(ctx, session, chatContext)
}

func (w *wizardService) Reset(session *models.Session) error {
	return session.Reset()
}

// runAnalysis is the only caller of Analyze. BeginAnalysis decides
// atomically whether this invocation starts a call, so re-running the
// triggering transition cannot fire a duplicate request.
func (w *wizardService) runAnalysis(ctx context.Context, session *models.Session, chatContext string) error {
	started, err := session.BeginAnalysis()
	if err != nil {
		return err
	}
	if !started {
		return nil
	}

	snapshot := session.Snapshot()
	result, err := w.analyzer.Analyze(ctx, snapshot.Role, snapshot.Answers, snapshot.Document.RawText, chatContext)
	if err != nil {
		w.logger.Error("structured analysis failed",
			zap.String("session_id", snapshot.ID),
			zap.Error(err),
		)
		session.FailAnalysis(MsgAnalysisFailed)
		return ErrAnalysisFailed
	}

	session.CompleteAnalysis(result)
	return nil
}
