package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartbot/career-matcher/internal/models"
)

// stubAnalyzer counts calls and replays scripted outcomes.
type stubAnalyzer struct {
	analyzeCalls    int
	analyzeErr      error
	result          *models.AnalysisResult
	lastChatContext string

	converseCalls int
	converseErr   error
	reply         string
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ models.Role, _ models.AnswerSet, _ string, chatContext string) (*models.AnalysisResult, error) {
	s.analyzeCalls++
	s.lastChatContext = chatContext
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	return s.result, nil
}

func (s *stubAnalyzer) Converse(_ context.Context, _ models.Transcript) (string, error) {
	s.converseCalls++
	if s.converseErr != nil {
		return "", s.converseErr
	}
	return s.reply, nil
}

func stubResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		MatchPercentage: 87,
		MatchText:       "Высокое совпадение",
		Recommendations: []string{"Добавьте ключевые навыки"},
	}
}

func testDocument() *models.UploadedDocument {
	return &models.UploadedDocument{
		Name:      "resume.txt",
		SizeBytes: 42,
		RawText:   "Опытный разработчик на Go.",
	}
}

func jobSeekerAnswers() map[string]string {
	return map[string]string{
		"desiredSalary": "150 000 - 250 000",
		"relocation":    "Нет",
		"workFormat":    "Удаленно",
		"workSchedule":  "Полный день (Full-time)",
	}
}

func recruiterAnswers() map[string]string {
	return map[string]string{
		"offeredSalary":       "250 000 - 400 000",
		"candidateRelocation": "Только локальные",
		"offeredWorkFormat":   "Гибрид",
		"offeredWorkSchedule": "Полный день",
	}
}

func TestWizardJobSeekerFullFlow(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubResult(), reply: "Расскажите о желаемой отрасли."}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := models.NewSession()
	ctx := context.Background()

	require.NoError(t, wizard.SelectRole(session, models.RoleJobSeeker))
	require.NoError(t, wizard.SubmitAnswers(session, jobSeekerAnswers()))
	require.NoError(t, wizard.Advance(ctx, session))
	assert.Equal(t, models.ViewUpload, session.View())

	require.NoError(t, wizard.AttachDocument(session, testDocument()))
	require.NoError(t, wizard.Advance(ctx, session))
	assert.Equal(t, models.ViewRefinement, session.View())

	turn, err := wizard.SendChatMessage(ctx, session, "Интересует Fintech")
	require.NoError(t, err)
	assert.Equal(t, models.ChatRoleAssistant, turn.Role)
	assert.Equal(t, "Расскажите о желаемой отрасли.", turn.Text)

	require.NoError(t, wizard.Finalize(ctx, session))
	assert.Equal(t, models.ViewResults, session.View())
	assert.Equal(t, 87, session.Result().MatchPercentage)
	assert.Equal(t, 1, analyzer.analyzeCalls)
	assert.Equal(t, "Интересует Fintech", analyzer.lastChatContext)
}

func TestWizardRecruiterAdvanceTriggersAnalysisOnce(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubResult()}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := models.NewSession()
	ctx := context.Background()

	require.NoError(t, wizard.SelectRole(session, models.RoleRecruiter))
	require.NoError(t, wizard.SubmitAnswers(session, recruiterAnswers()))
	require.NoError(t, wizard.Advance(ctx, session))
	require.NoError(t, wizard.AttachDocument(session, testDocument()))

	require.NoError(t, wizard.Advance(ctx, session))
	assert.Equal(t, models.ViewResults, session.View())
	assert.Equal(t, 1, analyzer.analyzeCalls)
	assert.Empty(t, analyzer.lastChatContext, "recruiter path has no refinement context")

	// Replaying the transition must not fire a second call.
	require.NoError(t, wizard.Finalize(ctx, session))
	assert.Equal(t, 1, analyzer.analyzeCalls)
}

func TestWizardAdvanceAfterResultsIsNoOp(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubResult()}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := models.NewSession()
	ctx := context.Background()

	require.NoError(t, wizard.SelectRole(session, models.RoleRecruiter))
	require.NoError(t, wizard.SubmitAnswers(session, recruiterAnswers()))
	require.NoError(t, wizard.Advance(ctx, session))
	require.NoError(t, wizard.AttachDocument(session, testDocument()))
	require.NoError(t, wizard.Advance(ctx, session))
	require.Equal(t, models.ViewResults, session.View())

	require.NoError(t, wizard.Advance(ctx, session))
	require.NoError(t, wizard.Finalize(ctx, session))
	assert.Equal(t, models.ViewResults, session.View())
	assert.Equal(t, 1, analyzer.analyzeCalls)
}

func TestWizardRecruiterAdvanceWithoutDocument(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubResult()}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := models.NewSession()
	ctx := context.Background()

	require.NoError(t, wizard.SelectRole(session, models.RoleRecruiter))
	require.NoError(t, wizard.SubmitAnswers(session, recruiterAnswers()))
	require.NoError(t, wizard.Advance(ctx, session))

	err := wizard.Advance(ctx, session)
	assert.ErrorIs(t, err, models.ErrDocumentRequired)
	assert.Zero(t, analyzer.analyzeCalls)
}

func TestWizardAnalysisFailureLeavesSessionRetryable(t *testing.T) {
	analyzer := &stubAnalyzer{analyzeErr: ErrTransport}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := models.NewSession()
	ctx := context.Background()

	require.NoError(t, wizard.SelectRole(session, models.RoleRecruiter))
	require.NoError(t, wizard.SubmitAnswers(session, recruiterAnswers()))
	require.NoError(t, wizard.Advance(ctx, session))
	require.NoError(t, wizard.AttachDocument(session, testDocument()))

	err := wizard.Advance(ctx, session)
	assert.ErrorIs(t, err, ErrAnalysisFailed)

	snap := session.Snapshot()
	assert.Equal(t, models.ViewUpload, snap.View)
	assert.False(t, snap.Loading)
	assert.Equal(t, MsgAnalysisFailed, snap.LastError)

	// A later retry succeeds.
	analyzer.analyzeErr = nil
	analyzer.result = stubResult()
	require.NoError(t, wizard.Advance(ctx, session))
	assert.Equal(t, models.ViewResults, session.View())
	assert.Equal(t, 2, analyzer.analyzeCalls)
}

func TestWizardChatFailureRollsBackTranscript(t *testing.T) {
	analyzer := &stubAnalyzer{converseErr: ErrTransport}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := refinementSession(t, wizard)
	ctx := context.Background()

	before := session.Snapshot().Transcript

	_, err := wizard.SendChatMessage(ctx, session, "Интересует Fintech")
	assert.ErrorIs(t, err, ErrChatFailed)

	snap := session.Snapshot()
	assert.Equal(t, before, snap.Transcript, "failed exchange must leave no trace")
	assert.False(t, snap.Loading)
	assert.Equal(t, MsgChatFailed, snap.LastError)
}

func TestWizardChatRejectsBlankMessage(t *testing.T) {
	analyzer := &stubAnalyzer{}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := refinementSession(t, wizard)

	_, err := wizard.SendChatMessage(context.Background(), session, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, analyzer.converseCalls)
}

func TestWizardFinalizeOutsideRefinement(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubResult()}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := models.NewSession()

	err := wizard.Finalize(context.Background(), session)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Zero(t, analyzer.analyzeCalls)
}

func TestWizardResetReturnsToDefaults(t *testing.T) {
	analyzer := &stubAnalyzer{result: stubResult(), reply: "Хорошо."}
	wizard := NewWizardService(analyzer, zap.NewNop())
	session := refinementSession(t, wizard)
	ctx := context.Background()

	require.NoError(t, wizard.Finalize(ctx, session))
	require.NoError(t, wizard.Reset(session))

	snap := session.Snapshot()
	assert.Equal(t, models.ViewLanding, snap.View)
	assert.Empty(t, snap.Role)
	assert.Empty(t, snap.Answers)
	assert.Nil(t, snap.Document)
	assert.False(t, snap.HasResult)
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, models.GreetingText, snap.Transcript[0].Text)
}

// refinementSession walks a job seeker session to the refinement view.
func refinementSession(t *testing.T, wizard WizardService) *models.Session {
	t.Helper()

	session := models.NewSession()
	ctx := context.Background()
	require.NoError(t, wizard.SelectRole(session, models.RoleJobSeeker))
	require.NoError(t, wizard.SubmitAnswers(session, jobSeekerAnswers()))
	require.NoError(t, wizard.Advance(ctx, session))
	require.NoError(t, wizard.AttachDocument(session, testDocument()))
	require.NoError(t, wizard.Advance(ctx, session))
	return session
}
