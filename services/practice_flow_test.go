package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/services/repositories"
)

func practiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserProgress{},
		&model.UserLesson{},
		&model.UserQuizAttempt{},
		&model.UserCaseAttempt{},
		&model.UserGameScore{},
		&model.ActivityLog{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func wiredProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{
		redisSvc:      &RedisService{},
		progressRepo:  repositories.NewProgressRepository(db),
		activityRepo:  repositories.NewActivityRepository(db),
		streakGapDays: DefaultStreakGapDays,
	}
}

func wiredQuizService(db *gorm.DB, progressSvc *ProgressService) *QuizService {
	return &QuizService{
		progressSvc:  progressSvc,
		studySvc:     &StudyTimeService{progressSvc: progressSvc, trackers: map[string]*studyTracker{}},
		progressRepo: repositories.NewProgressRepository(db),
		sessions:     map[string]*quizSession{},
	}
}

func wiredCaseService(db *gorm.DB, progressSvc *ProgressService) *CaseService {
	return &CaseService{
		progressSvc:  progressSvc,
		studySvc:     &StudyTimeService{progressSvc: progressSvc, trackers: map[string]*studyTracker{}},
		progressRepo: repositories.NewProgressRepository(db),
		sessions:     map[string]*caseSession{},
	}
}

func openQuizSession(svc *QuizService, userID string, quiz *model.Quiz) string {
	id, _ := uuid.NewV7()
	session := &quizSession{
		id:        id.String(),
		userID:    userID,
		quiz:      quiz,
		state:     QuizStateInProgress,
		answers:   make([]int, 0, len(quiz.Questions)),
		touchedAt: time.Now(),
	}
	svc.mu.Lock()
	svc.sessions[session.id] = session
	svc.mu.Unlock()
	return session.id
}

func openCaseSession(svc *CaseService, userID string, scenario *dto.CaseScenario) string {
	id, _ := uuid.NewV7()
	session := &caseSession{
		id:        id.String(),
		userID:    userID,
		caseID:    "case-sprint",
		title:     "Crisis en el Sprint",
		scenario:  scenario,
		state:     CaseStateChoosing,
		decisions: make([]int, 0, len(scenario.Steps)),
		touchedAt: time.Now(),
	}
	svc.mu.Lock()
	svc.sessions[session.id] = session
	svc.mu.Unlock()
	return session.id
}

func threeQuestionQuiz() *model.Quiz {
	return &model.Quiz{
		ID:    "quiz-eventos",
		Title: "Eventos de Scrum",
		Questions: []model.QuizQuestion{
			{
				ID:           "quiz-eventos-q1",
				Question:     "¿Cuánto dura la Daily?",
				Options:      `["15 minutos","1 hora"]`,
				CorrectIndex: 0,
			},
			{
				ID:           "quiz-eventos-q2",
				Question:     "¿Quién dirige la Sprint Review?",
				Options:      `["El equipo","El cliente"]`,
				CorrectIndex: 0,
				Order:        1,
			},
			{
				ID:           "quiz-eventos-q3",
				Question:     "¿Qué cierra el Sprint?",
				Options:      `["La Retrospectiva","La Planning"]`,
				CorrectIndex: 0,
				Order:        2,
			},
		},
	}
}

func twoStepScenario() *dto.CaseScenario {
	return &dto.CaseScenario{
		Steps: []dto.CaseStep{
			{
				Situation: "El equipo no llega al Sprint Goal.",
				Question:  "¿Qué haces?",
				Options: []dto.CaseOption{
					{Text: "Extender el Sprint", Feedback: "El Sprint nunca se extiende", Consequence: "Pierdes cadencia", Score: 2},
					{Text: "Renegociar el alcance", Feedback: "Bien", Consequence: "El equipo mantiene el foco", Score: 10},
				},
			},
			{
				Situation: "El cliente pide un cambio a mitad de Sprint.",
				Question:  "¿Cómo respondes?",
				Options: []dto.CaseOption{
					{Text: "Lo anotas para el siguiente Sprint", Feedback: "Aceptable", Consequence: "El cliente espera", Score: 7},
					{Text: "Lo llevas al Product Owner", Feedback: "Excelente", Consequence: "El PO prioriza", Score: 10},
				},
			},
		},
	}
}

// answerQuestion drives one full question: select, submit, advance.
func answerQuestion(t *testing.T, svc *QuizService, userID, sessionID string, index int) *dto.AdvanceQuizResponse {
	t.Helper()

	require.NoError(t, svc.SelectAnswer(userID, sessionID, index))
	_, err := svc.Submit(userID, sessionID)
	require.NoError(t, err)

	resp, err := svc.Advance(userID, sessionID)
	require.NoError(t, err)
	return resp
}

func TestQuizCompletionPersistsAttempt(t *testing.T) {
	db := practiceDB(t)
	progressSvc := wiredProgressService(db)
	quizSvc := wiredQuizService(db, progressSvc)
	repo := repositories.NewProgressRepository(db)

	_, err := repo.GetOrCreateProgress("user-1")
	require.NoError(t, err)

	sessionID := openQuizSession(quizSvc, "user-1", threeQuestionQuiz())

	answerQuestion(t, quizSvc, "user-1", sessionID, 0)
	answerQuestion(t, quizSvc, "user-1", sessionID, 1)
	final := answerQuestion(t, quizSvc, "user-1", sessionID, 0)

	require.True(t, final.Completed)
	require.NotNil(t, final.Result)
	assert.Equal(t, 67, final.Result.Score)
	assert.Equal(t, 2, final.Result.CorrectCount)
	assert.Equal(t, 3, final.Result.Total)
	assert.Equal(t, 134, final.Result.PointsEarned)
	assert.False(t, final.Result.MedalEarned)

	attempts, err := repo.GetQuizAttempts("user-1")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "quiz-eventos", attempts[0].QuizID)
	assert.Equal(t, 67, attempts[0].Score)
	assert.Equal(t, 2, attempts[0].CorrectAnswers)
	assert.Equal(t, 3, attempts[0].TotalQuestions)
	assert.Equal(t, "[0,1,0]", attempts[0].Answers)

	progress, err := repo.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 134, progress.TotalPoints)
	assert.Equal(t, 67, progress.AverageScore)
	assert.Equal(t, 0, progress.MedalsCount)
}

func TestQuizRetryAppendsIndependentAttempt(t *testing.T) {
	db := practiceDB(t)
	progressSvc := wiredProgressService(db)
	quizSvc := wiredQuizService(db, progressSvc)
	repo := repositories.NewProgressRepository(db)

	_, err := repo.GetOrCreateProgress("user-1")
	require.NoError(t, err)

	first := openQuizSession(quizSvc, "user-1", threeQuestionQuiz())
	answerQuestion(t, quizSvc, "user-1", first, 0)
	answerQuestion(t, quizSvc, "user-1", first, 1)
	answerQuestion(t, quizSvc, "user-1", first, 0)

	// a finished session stays finished
	_, err = quizSvc.Advance("user-1", first)
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))

	second := openQuizSession(quizSvc, "user-1", threeQuestionQuiz())
	answerQuestion(t, quizSvc, "user-1", second, 0)
	answerQuestion(t, quizSvc, "user-1", second, 0)
	final := answerQuestion(t, quizSvc, "user-1", second, 0)

	require.True(t, final.Completed)
	assert.Equal(t, 100, final.Result.Score)
	assert.True(t, final.Result.MedalEarned)

	attempts, err := repo.GetQuizAttempts("user-1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, 67, attempts[0].Score)
	assert.Equal(t, "[0,1,0]", attempts[0].Answers)
	assert.Equal(t, 100, attempts[1].Score)
	assert.Equal(t, "[0,0,0]", attempts[1].Answers)

	progress, err := repo.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 334, progress.TotalPoints)
	assert.Equal(t, 1, progress.MedalsCount)
	assert.Equal(t, 100, progress.AverageScore)
}

func TestCaseCompletionPersistsAttempt(t *testing.T) {
	db := practiceDB(t)
	progressSvc := wiredProgressService(db)
	caseSvc := wiredCaseService(db, progressSvc)
	repo := repositories.NewProgressRepository(db)

	_, err := repo.GetOrCreateProgress("user-1")
	require.NoError(t, err)

	sessionID := openCaseSession(caseSvc, "user-1", twoStepScenario())

	chosen, err := caseSvc.ChooseOption("user-1", sessionID, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, chosen.Score)
	assert.Equal(t, 10, chosen.MaxScore)
	assert.Equal(t, "Bien", chosen.Feedback)

	// the decision is final; choosing again on the same step conflicts
	_, err = caseSvc.ChooseOption("user-1", sessionID, 0)
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))

	next, err := caseSvc.Advance("user-1", sessionID)
	require.NoError(t, err)
	assert.False(t, next.Completed)
	require.NotNil(t, next.Step)
	assert.Equal(t, 1, next.Step.Index)

	chosen, err = caseSvc.ChooseOption("user-1", sessionID, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, chosen.Score)

	final, err := caseSvc.Advance("user-1", sessionID)
	require.NoError(t, err)
	require.True(t, final.Completed)
	require.NotNil(t, final.Result)
	assert.Equal(t, 85, final.Result.TotalScore)
	assert.Equal(t, 17, final.Result.Earned)
	assert.Equal(t, 20, final.Result.MaxPossible)
	assert.Equal(t, "Excelente", final.Result.Performance)
	assert.Equal(t, 255, final.Result.PointsEarned)
	assert.False(t, final.Result.MedalEarned)

	attempts, err := repo.GetCaseAttempts("user-1")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "case-sprint", attempts[0].CaseID)
	assert.Equal(t, 85, attempts[0].TotalScore)
	assert.Equal(t, "[1,0]", attempts[0].Decisions)

	progress, err := repo.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, 255, progress.TotalPoints)
}
