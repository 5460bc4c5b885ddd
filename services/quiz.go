package services

import (
	"math"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/services/repositories"
	"github.com/agile-academy/academy_api/shared"
)

// Quiz session states. A session only ever moves forward:
// InProgress -> AwaitingFeedback -> (next question | Completed).
const (
	QuizStateInProgress       = "in_progress"
	QuizStateAwaitingFeedback = "awaiting_feedback"
	QuizStateCompleted        = "completed"
)

const quizSessionTTL = 2 * time.Hour

type quizSession struct {
	id     string
	userID string
	quiz   *model.Quiz

	state     string
	index     int
	selected  int
	hasChoice bool
	answers   []int
	correct   int
	persisted bool

	touchedAt time.Time
}

// QuizService drives quiz sessions. Sessions live in memory; only the
// finished attempt is durable. Losing a session mid-quiz loses that
// attempt and nothing else.
type QuizService struct {
	context.DefaultService

	sqlSvc      *SqlService
	contentSvc  *ContentService
	progressSvc *ProgressService
	studySvc    *StudyTimeService

	progressRepo *repositories.ProgressRepository

	mu       sync.Mutex
	sessions map[string]*quizSession

	closed chan struct{}
}

const QUIZ_SVC = "quiz_svc"

func (svc QuizService) Id() string {
	return QUIZ_SVC
}

func (svc *QuizService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(SQL_SVC).(*SqlService)
	svc.contentSvc = ctx.Service(CONTENT_SVC).(*ContentService)
	svc.progressSvc = ctx.Service(PROGRESS_SVC).(*ProgressService)
	svc.studySvc = ctx.Service(STUDY_TIME_SVC).(*StudyTimeService)

	svc.sessions = make(map[string]*quizSession)
	svc.closed = make(chan struct{})
	return svc.DefaultService.Configure(ctx)
}

func (svc *QuizService) Start() error {
	svc.progressRepo = repositories.NewProgressRepository(svc.sqlSvc.Db())

	go svc.expireSessions()
	return nil
}

func (svc *QuizService) Shutdown() {
	close(svc.closed)
}

func (svc *QuizService) expireSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-quizSessionTTL)
			svc.mu.Lock()
			for id, s := range svc.sessions {
				if s.touchedAt.Before(cutoff) {
					delete(svc.sessions, id)
				}
			}
			svc.mu.Unlock()
		case <-svc.closed:
			return
		}
	}
}

// StartQuiz opens a fresh session on the quiz. Each call is an
// independent attempt; retaking never touches earlier attempts.
func (svc *QuizService) StartQuiz(userID, quizID string) (*dto.StartQuizResponse, error) {
	quiz, err := svc.contentSvc.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, shared.NewNotFoundError(nil, "Quiz has no questions")
	}

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

	svc.studySvc.Touch(userID)

	return &dto.StartQuizResponse{
		SessionID:     session.id,
		QuizID:        quiz.ID,
		Title:         quiz.Title,
		QuestionCount: len(quiz.Questions),
		Question:      questionView(&quiz.Questions[0]),
	}, nil
}

// SelectAnswer stores a provisional choice. Selecting again before
// submitting replaces it.
func (svc *QuizService) SelectAnswer(userID, sessionID string, index int) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	session, err := svc.session(userID, sessionID)
	if err != nil {
		return err
	}
	if session.state != QuizStateInProgress {
		return shared.NewConflictError(nil, "No question awaiting an answer")
	}

	q := &session.quiz.Questions[session.index]
	if index < 0 || index >= len(QuestionOptions(q)) {
		return shared.NewBadRequestError(nil, "Selected option out of range")
	}

	session.selected = index
	session.hasChoice = true
	session.touchedAt = time.Now()
	return nil
}

// Submit locks in the current selection and reveals correctness. The
// answer is final from here; correctness is informational only.
func (svc *QuizService) Submit(userID, sessionID string) (*dto.SubmitAnswerResponse, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	session, err := svc.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.state != QuizStateInProgress {
		return nil, shared.NewConflictError(nil, "No question awaiting an answer")
	}
	if !session.hasChoice {
		return nil, shared.NewBadRequestError(nil, "No option selected")
	}

	q := &session.quiz.Questions[session.index]
	correct := session.selected == q.CorrectIndex
	feedback := q.Feedback
	if !correct {
		feedback = q.IncorrectFeedback
	}

	session.answers = append(session.answers, session.selected)
	if correct {
		session.correct++
	}
	session.state = QuizStateAwaitingFeedback
	session.hasChoice = false
	session.touchedAt = time.Now()

	svc.studySvc.Touch(userID)

	return &dto.SubmitAnswerResponse{
		Correct:       correct,
		CorrectIndex:  q.CorrectIndex,
		Feedback:      feedback,
		QuestionIndex: session.index,
	}, nil
}

// Advance moves past the feedback screen: either to the next question
// or, after the last one, to completion and its side effects.
func (svc *QuizService) Advance(userID, sessionID string) (*dto.AdvanceQuizResponse, error) {
	svc.mu.Lock()

	session, err := svc.session(userID, sessionID)
	if err != nil {
		svc.mu.Unlock()
		return nil, err
	}
	if session.state != QuizStateAwaitingFeedback {
		svc.mu.Unlock()
		return nil, shared.NewConflictError(nil, "Nothing to advance past")
	}

	session.touchedAt = time.Now()

	if session.index+1 < len(session.quiz.Questions) {
		session.index++
		session.state = QuizStateInProgress
		q := questionView(&session.quiz.Questions[session.index])
		svc.mu.Unlock()
		return &dto.AdvanceQuizResponse{Question: &q}, nil
	}

	session.state = QuizStateCompleted
	svc.mu.Unlock()

	// Side effects run without the registry lock so one user's
	// persistence never stalls other sessions. The Completed state keeps
	// this path single-entry.
	result := svc.complete(session)
	return &dto.AdvanceQuizResponse{Completed: true, Result: &result}, nil
}

// complete runs exactly once per session. Persistence failure is logged
// and the result still reaches the user: an unsaved attempt beats a
// stuck session.
func (svc *QuizService) complete(session *quizSession) dto.QuizResult {
	total := len(session.quiz.Questions)
	score := int(math.Round(float64(session.correct) / float64(total) * 100))

	if !session.persisted {
		session.persisted = true

		answers, err := sonic.MarshalString(session.answers)
		if err != nil {
			answers = "[]"
		}

		if err := svc.progressRepo.CreateQuizAttempt(&model.UserQuizAttempt{
			UserID:         session.userID,
			QuizID:         session.quiz.ID,
			Score:          score,
			CorrectAnswers: session.correct,
			TotalQuestions: total,
			Answers:        answers,
			CompletedAt:    time.Now(),
		}); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id": session.userID,
				"quiz_id": session.quiz.ID,
			}).Error("Failed to persist quiz attempt")
		}
	}

	points, medal := svc.progressSvc.ApplyQuizResult(session.userID, session.quiz.Title, score)
	svc.studySvc.Flush(session.userID)

	return dto.QuizResult{
		QuizID:       session.quiz.ID,
		Score:        score,
		CorrectCount: session.correct,
		Total:        total,
		PointsEarned: points,
		MedalEarned:  medal,
	}
}

// session must be called with the mutex held.
func (svc *QuizService) session(userID, sessionID string) (*quizSession, error) {
	session, ok := svc.sessions[sessionID]
	if !ok {
		return nil, shared.NewNotFoundError(nil, "Quiz session not found")
	}
	if session.userID != userID {
		return nil, shared.NewForbiddenError(nil, "Session belongs to another user")
	}
	return session, nil
}

func questionView(q *model.QuizQuestion) dto.QuizQuestionResponse {
	return dto.QuizQuestionResponse{
		ID:       q.ID,
		Question: q.Question,
		Options:  QuestionOptions(q),
		Order:    q.Order,
	}
}
