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

const (
	CaseStateChoosing  = "choosing"
	CaseStateRevealed  = "revealed"
	CaseStateCompleted = "completed"
)

const caseSessionTTL = 2 * time.Hour

type caseSession struct {
	id       string
	userID   string
	caseID   string
	title    string
	scenario *dto.CaseScenario

	state     string
	index     int
	decisions []int
	earned    int
	persisted bool

	touchedAt time.Time
}

// CaseService drives case-simulation sessions: one decision per step,
// decisions are final the moment they're made.
type CaseService struct {
	context.DefaultService

	sqlSvc      *SqlService
	contentSvc  *ContentService
	progressSvc *ProgressService
	studySvc    *StudyTimeService

	progressRepo *repositories.ProgressRepository

	mu       sync.Mutex
	sessions map[string]*caseSession

	closed chan struct{}
}

const CASE_SVC = "case_svc"

func (svc CaseService) Id() string {
	return CASE_SVC
}

func (svc *CaseService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(SQL_SVC).(*SqlService)
	svc.contentSvc = ctx.Service(CONTENT_SVC).(*ContentService)
	svc.progressSvc = ctx.Service(PROGRESS_SVC).(*ProgressService)
	svc.studySvc = ctx.Service(STUDY_TIME_SVC).(*StudyTimeService)

	svc.sessions = make(map[string]*caseSession)
	svc.closed = make(chan struct{})
	return svc.DefaultService.Configure(ctx)
}

func (svc *CaseService) Start() error {
	svc.progressRepo = repositories.NewProgressRepository(svc.sqlSvc.Db())

	go svc.expireSessions()
	return nil
}

func (svc *CaseService) Shutdown() {
	close(svc.closed)
}

func (svc *CaseService) expireSessions() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-caseSessionTTL)
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

func (svc *CaseService) StartCase(userID, caseID string) (*dto.StartCaseResponse, error) {
	c, err := svc.contentSvc.GetCase(caseID)
	if err != nil {
		return nil, err
	}

	scenario, err := DecodeScenario(c)
	if err != nil {
		return nil, shared.NewInternalError(err, "Malformed case scenario")
	}
	if len(scenario.Steps) == 0 {
		return nil, shared.NewNotFoundError(nil, "Case has no steps")
	}

	id, _ := uuid.NewV7()
	session := &caseSession{
		id:        id.String(),
		userID:    userID,
		caseID:    c.ID,
		title:     c.Title,
		scenario:  scenario,
		state:     CaseStateChoosing,
		decisions: make([]int, 0, len(scenario.Steps)),
		touchedAt: time.Now(),
	}

	svc.mu.Lock()
	svc.sessions[session.id] = session
	svc.mu.Unlock()

	svc.studySvc.Touch(userID)

	return &dto.StartCaseResponse{
		SessionID: session.id,
		CaseID:    c.ID,
		Title:     c.Title,
		StepCount: len(scenario.Steps),
		Step:      stepView(scenario, 0),
	}, nil
}

// ChooseOption records the decision for the current step and reveals
// its feedback, consequence and score. A made choice cannot be changed.
func (svc *CaseService) ChooseOption(userID, sessionID string, optionIndex int) (*dto.ChooseOptionResponse, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	session, err := svc.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.state != CaseStateChoosing {
		return nil, shared.NewConflictError(nil, "Choice for this step already made")
	}

	step := session.scenario.Steps[session.index]
	if optionIndex < 0 || optionIndex >= len(step.Options) {
		return nil, shared.NewBadRequestError(nil, "Option out of range")
	}

	option := step.Options[optionIndex]
	session.decisions = append(session.decisions, optionIndex)
	session.earned += option.Score
	session.state = CaseStateRevealed
	session.touchedAt = time.Now()

	svc.studySvc.Touch(userID)

	return &dto.ChooseOptionResponse{
		StepIndex:   session.index,
		Feedback:    option.Feedback,
		Consequence: option.Consequence,
		Score:       option.Score,
		MaxScore:    maxOptionScore(step),
	}, nil
}

func (svc *CaseService) Advance(userID, sessionID string) (*dto.AdvanceCaseResponse, error) {
	svc.mu.Lock()

	session, err := svc.session(userID, sessionID)
	if err != nil {
		svc.mu.Unlock()
		return nil, err
	}
	if session.state != CaseStateRevealed {
		svc.mu.Unlock()
		return nil, shared.NewConflictError(nil, "Nothing to advance past")
	}

	session.touchedAt = time.Now()

	if session.index+1 < len(session.scenario.Steps) {
		session.index++
		session.state = CaseStateChoosing
		step := stepView(session.scenario, session.index)
		svc.mu.Unlock()
		return &dto.AdvanceCaseResponse{Step: &step}, nil
	}

	session.state = CaseStateCompleted
	svc.mu.Unlock()

	// Side effects run without the registry lock so one user's
	// persistence never stalls other sessions. The Completed state keeps
	// this path single-entry.
	result := svc.complete(session)
	return &dto.AdvanceCaseResponse{Completed: true, Result: &result}, nil
}

func (svc *CaseService) complete(session *caseSession) dto.CaseResult {
	totalScore := CaseScore(session.scenario, session.earned)

	if !session.persisted {
		session.persisted = true

		decisions, err := sonic.MarshalString(session.decisions)
		if err != nil {
			decisions = "[]"
		}

		if err := svc.progressRepo.CreateCaseAttempt(&model.UserCaseAttempt{
			UserID:      session.userID,
			CaseID:      session.caseID,
			TotalScore:  totalScore,
			Decisions:   decisions,
			CompletedAt: time.Now(),
		}); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id": session.userID,
				"case_id": session.caseID,
			}).Error("Failed to persist case attempt")
		}
	}

	points, medal := svc.progressSvc.ApplyCaseResult(session.userID, session.title, totalScore)
	svc.studySvc.Flush(session.userID)

	return dto.CaseResult{
		CaseID:       session.caseID,
		TotalScore:   totalScore,
		Earned:       session.earned,
		MaxPossible:  MaxScenarioScore(session.scenario),
		Performance:  PerformanceLabel(totalScore),
		PointsEarned: points,
		MedalEarned:  medal,
	}
}

// session must be called with the mutex held.
func (svc *CaseService) session(userID, sessionID string) (*caseSession, error) {
	session, ok := svc.sessions[sessionID]
	if !ok {
		return nil, shared.NewNotFoundError(nil, "Case session not found")
	}
	if session.userID != userID {
		return nil, shared.NewForbiddenError(nil, "Session belongs to another user")
	}
	return session, nil
}

// CaseScore converts earned option points into a 0-100 score. A
// scenario whose options carry no points scores 0, never NaN.
func CaseScore(scenario *dto.CaseScenario, earned int) int {
	max := MaxScenarioScore(scenario)
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(earned) / float64(max) * 100))
}

// MaxScenarioScore sums the best option of every step.
func MaxScenarioScore(scenario *dto.CaseScenario) int {
	total := 0
	for _, step := range scenario.Steps {
		total += maxOptionScore(step)
	}
	return total
}

func maxOptionScore(step dto.CaseStep) int {
	max := 0
	for _, o := range step.Options {
		if o.Score > max {
			max = o.Score
		}
	}
	return max
}

func stepView(scenario *dto.CaseScenario, index int) dto.CaseStepView {
	step := scenario.Steps[index]
	options := make([]string, 0, len(step.Options))
	for _, o := range step.Options {
		options = append(options, o.Text)
	}
	return dto.CaseStepView{
		Index:     index,
		Situation: step.Situation,
		Question:  step.Question,
		Options:   options,
	}
}
