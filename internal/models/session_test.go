package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedJobSeekerSession(t *testing.T) *Session {
	t.Helper()

	s := NewSession()
	require.NoError(t, s.SelectRole(RoleJobSeeker))
	require.NoError(t, s.MergeAnswers(map[string]string{
		"desiredSalary": "150000",
		"relocation":    "no",
		"workFormat":    "remote",
		"workSchedule":  "full",
	}))
	require.NoError(t, s.AdvanceFromQuestionnaire())
	require.NoError(t, s.AttachDocument(&UploadedDocument{
		Name:      "resume.txt",
		SizeBytes: 50,
		RawText:   "Опытный разработчик на Go и Python.",
	}))
	return s
}

func TestSelectRoleOnlyFromLanding(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SelectRole(RoleJobSeeker))
	assert.Equal(t, ViewQuestionnaire, s.View())

	// role is immutable once chosen
	assert.ErrorIs(t, s.SelectRole(RoleRecruiter), ErrInvalidTransition)
	assert.Equal(t, RoleJobSeeker, s.Role())
}

func TestSelectRoleRejectsUnknownRole(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.SelectRole(Role("manager")), ErrInvalidRole)
}

func TestAdvanceFromQuestionnaireGatesOnCompleteness(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SelectRole(RoleRecruiter))
	require.NoError(t, s.MergeAnswers(map[string]string{"offeredSalary": "200000"}))

	assert.ErrorIs(t, s.AdvanceFromQuestionnaire(), ErrIncompleteQuestionnaire)
	assert.Equal(t, ViewQuestionnaire, s.View())
}

func TestAdvanceToRefinementRequiresDocument(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SelectRole(RoleJobSeeker))
	require.NoError(t, s.MergeAnswers(map[string]string{
		"desiredSalary": "150000",
		"relocation":    "no",
		"workFormat":    "remote",
		"workSchedule":  "full",
	}))
	require.NoError(t, s.AdvanceFromQuestionnaire())

	assert.ErrorIs(t, s.AdvanceToRefinement(), ErrDocumentRequired)
}

func TestBackPreservesAnswers(t *testing.T) {
	s := completedJobSeekerSession(t)
	require.NoError(t, s.AdvanceToRefinement())

	require.NoError(t, s.Back())
	assert.Equal(t, ViewUpload, s.View())

	require.NoError(t, s.Back())
	assert.Equal(t, ViewQuestionnaire, s.View())
	assert.Equal(t, "remote", s.Snapshot().Answers.Get("workFormat"))

	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)
}

func TestBeginAnalysisSingleFlight(t *testing.T) {
	s := completedJobSeekerSession(t)

	const goroutines = 16
	var wg sync.WaitGroup
	started := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.BeginAnalysis()
			if err != nil {
				t.Error(err)
			}
			started <- ok
		}()
	}
	wg.Wait()
	close(started)

	winners := 0
	for ok := range started {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one caller may start the analysis")
}

func TestBeginAnalysisIdempotentAfterResult(t *testing.T) {
	s := completedJobSeekerSession(t)

	ok, err := s.BeginAnalysis()
	require.NoError(t, err)
	require.True(t, ok)

	s.CompleteAnalysis(&AnalysisResult{MatchPercentage: 70, MatchText: "ок"})
	assert.Equal(t, ViewResults, s.View())

	ok, err = s.BeginAnalysis()
	require.NoError(t, err)
	assert.False(t, ok, "a finished session must not start another analysis")
}

func TestFailAnalysisKeepsView(t *testing.T) {
	s := completedJobSeekerSession(t)

	ok, err := s.BeginAnalysis()
	require.NoError(t, err)
	require.True(t, ok)

	s.FailAnalysis("Ошибка при анализе данных.")

	snap := s.Snapshot()
	assert.Equal(t, ViewUpload, snap.View)
	assert.False(t, snap.Loading)
	assert.Equal(t, "Ошибка при анализе данных.", snap.LastError)

	// the user may retry after a failure
	ok, err = s.BeginAnalysis()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChatRollbackOnFailure(t *testing.T) {
	s := completedJobSeekerSession(t)
	require.NoError(t, s.AdvanceToRefinement())

	before := len(s.Snapshot().Transcript)

	require.NoError(t, s.BeginChat("Ищу работу в Fintech"))
	assert.ErrorIs(t, s.BeginChat("еще одно"), ErrSessionBusy)

	s.FailChat("Ошибка связи.")
	assert.Len(t, s.Snapshot().Transcript, before)
}

func TestResetReturnsToDefaults(t *testing.T) {
	s := completedJobSeekerSession(t)
	require.NoError(t, s.AdvanceToRefinement())
	require.NoError(t, s.BeginChat("Fintech"))
	s.CompleteChat("Понял!")

	require.NoError(t, s.Reset())

	snap := s.Snapshot()
	assert.Equal(t, ViewLanding, snap.View)
	assert.Empty(t, string(snap.Role))
	assert.Empty(t, snap.Answers)
	assert.Nil(t, snap.Document)
	assert.False(t, snap.HasResult)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.LastError)
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, GreetingText, snap.Transcript[0].Text)
}

func TestResetRefusedWhileLoading(t *testing.T) {
	s := completedJobSeekerSession(t)

	ok, err := s.BeginAnalysis()
	require.NoError(t, err)
	require.True(t, ok)

	assert.ErrorIs(t, s.Reset(), ErrSessionBusy)
}
