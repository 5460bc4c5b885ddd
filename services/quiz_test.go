package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/shared"
)

func twoQuestionQuiz() *model.Quiz {
	return &model.Quiz{
		ID:    "quiz-roles",
		Title: "Roles de Scrum",
		Questions: []model.QuizQuestion{
			{
				ID:                "quiz-roles-q1",
				Question:          "¿Quién gestiona el Product Backlog?",
				Options:           `["El Scrum Master","El Product Owner","El equipo"]`,
				CorrectIndex:      1,
				Feedback:          "Correcto",
				IncorrectFeedback: "Incorrecto",
			},
			{
				ID:           "quiz-roles-q2",
				Question:     "¿Quién facilita los eventos?",
				Options:      `["El Scrum Master","El Product Owner"]`,
				CorrectIndex: 0,
				Order:        1,
			},
		},
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	return appErr.StatusCode
}

func quizServiceWithSession(quiz *model.Quiz) (*QuizService, *quizSession) {
	session := &quizSession{
		id:        "sess-1",
		userID:    "user-1",
		quiz:      quiz,
		state:     QuizStateInProgress,
		touchedAt: time.Now(),
	}
	svc := &QuizService{
		studySvc: &StudyTimeService{trackers: map[string]*studyTracker{}},
		sessions: map[string]*quizSession{session.id: session},
	}
	return svc, session
}

func TestSelectAnswerValidatesRange(t *testing.T) {
	svc, _ := quizServiceWithSession(twoQuestionQuiz())

	assert.Error(t, svc.SelectAnswer("user-1", "sess-1", -1))
	assert.Error(t, svc.SelectAnswer("user-1", "sess-1", 3))
	assert.NoError(t, svc.SelectAnswer("user-1", "sess-1", 2))
}

func TestSubmitRequiresSelection(t *testing.T) {
	svc, _ := quizServiceWithSession(twoQuestionQuiz())

	_, err := svc.Submit("user-1", "sess-1")
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
}

func TestSubmitRevealsCorrectness(t *testing.T) {
	svc, session := quizServiceWithSession(twoQuestionQuiz())

	require.NoError(t, svc.SelectAnswer("user-1", "sess-1", 1))
	resp, err := svc.Submit("user-1", "sess-1")
	require.NoError(t, err)

	assert.True(t, resp.Correct)
	assert.Equal(t, 1, resp.CorrectIndex)
	assert.Equal(t, "Correcto", resp.Feedback)
	assert.Equal(t, QuizStateAwaitingFeedback, session.state)
	assert.Equal(t, 1, session.correct)
}

func TestSubmitWrongAnswerFeedback(t *testing.T) {
	svc, session := quizServiceWithSession(twoQuestionQuiz())

	require.NoError(t, svc.SelectAnswer("user-1", "sess-1", 0))
	resp, err := svc.Submit("user-1", "sess-1")
	require.NoError(t, err)

	assert.False(t, resp.Correct)
	assert.Equal(t, "Incorrecto", resp.Feedback)
	assert.Equal(t, 0, session.correct)
}

func TestSubmitIsFinal(t *testing.T) {
	svc, _ := quizServiceWithSession(twoQuestionQuiz())

	require.NoError(t, svc.SelectAnswer("user-1", "sess-1", 1))
	_, err := svc.Submit("user-1", "sess-1")
	require.NoError(t, err)

	// selection is locked in; a second submit has nothing to act on
	_, err = svc.Submit("user-1", "sess-1")
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))

	err = svc.SelectAnswer("user-1", "sess-1", 0)
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))
}

func TestAdvanceMovesToNextQuestion(t *testing.T) {
	svc, session := quizServiceWithSession(twoQuestionQuiz())

	require.NoError(t, svc.SelectAnswer("user-1", "sess-1", 1))
	_, err := svc.Submit("user-1", "sess-1")
	require.NoError(t, err)

	resp, err := svc.Advance("user-1", "sess-1")
	require.NoError(t, err)

	assert.False(t, resp.Completed)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "quiz-roles-q2", resp.Question.ID)
	assert.Equal(t, QuizStateInProgress, session.state)
	assert.Equal(t, 1, session.index)
}

func TestAdvanceWithoutSubmitConflicts(t *testing.T) {
	svc, _ := quizServiceWithSession(twoQuestionQuiz())

	_, err := svc.Advance("user-1", "sess-1")
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))
}

func TestSessionOwnership(t *testing.T) {
	svc, _ := quizServiceWithSession(twoQuestionQuiz())

	err := svc.SelectAnswer("user-2", "sess-1", 0)
	require.Error(t, err)
	assert.Equal(t, 403, statusOf(t, err))

	err = svc.SelectAnswer("user-1", "missing", 0)
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestQuestionViewHidesAnswer(t *testing.T) {
	quiz := twoQuestionQuiz()

	view := questionView(&quiz.Questions[0])

	assert.Equal(t, "quiz-roles-q1", view.ID)
	assert.Equal(t, []string{"El Scrum Master", "El Product Owner", "El equipo"}, view.Options)
}
