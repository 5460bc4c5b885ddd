package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/services/repositories"
	"github.com/agile-academy/academy_api/shared"
)

// ContentService serves the static course catalog: lessons, quizzes,
// case simulations, drag-drop games and library resources.
type ContentService struct {
	context.DefaultService

	sqlSvc *SqlService

	contentRepo *repositories.ContentRepository
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	svc.sqlSvc = ctx.Service(SQL_SVC).(*SqlService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.contentRepo = repositories.NewContentRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *ContentService) Repo() *repositories.ContentRepository {
	return svc.contentRepo
}

// ==================== LESSONS ====================

func (svc *ContentService) GetLessons() ([]dto.LessonResponse, error) {
	lessons, err := svc.contentRepo.GetLessons()
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load lessons")
	}

	out := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		resp, err := svc.toLessonResponse(&lessons[i])
		if err != nil {
			log.WithError(err).WithField("lesson_id", lessons[i].ID).Warn("Skipping lesson with malformed content")
			continue
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (svc *ContentService) GetLesson(id string) (*dto.LessonResponse, error) {
	lesson, err := svc.contentRepo.GetLesson(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Lesson not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load lesson")
	}
	return svc.toLessonResponse(lesson)
}

func (svc *ContentService) CountLessons() (int64, error) {
	return svc.contentRepo.CountLessons()
}

func (svc *ContentService) CreateLesson(req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	content, err := sonic.MarshalString(req.Content)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid lesson content")
	}

	lesson, err := svc.contentRepo.CreateLesson(&model.Lesson{
		ID:                 req.ID,
		SectionID:          req.SectionID,
		SectionTitle:       req.SectionTitle,
		SectionDescription: req.SectionDescription,
		SectionIcon:        req.SectionIcon,
		SectionColor:       req.SectionColor,
		Title:              req.Title,
		Duration:           req.Duration,
		Order:              req.Order,
		Content:            content,
	})
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to create lesson")
	}
	return svc.toLessonResponse(lesson)
}

func (svc *ContentService) toLessonResponse(lesson *model.Lesson) (*dto.LessonResponse, error) {
	var content dto.LessonContent
	if lesson.Content != "" {
		if err := sonic.UnmarshalString(lesson.Content, &content); err != nil {
			return nil, shared.NewInternalError(err, "Malformed lesson content")
		}
	}

	return &dto.LessonResponse{
		ID:                 lesson.ID,
		SectionID:          lesson.SectionID,
		SectionTitle:       lesson.SectionTitle,
		SectionDescription: lesson.SectionDescription,
		SectionIcon:        lesson.SectionIcon,
		SectionColor:       lesson.SectionColor,
		Title:              lesson.Title,
		Duration:           lesson.Duration,
		Order:              lesson.Order,
		Content:            content,
	}, nil
}

// ==================== QUIZZES ====================

func (svc *ContentService) GetQuizzes() ([]dto.QuizResponse, error) {
	quizzes, err := svc.contentRepo.GetQuizzes()
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load quizzes")
	}

	out := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, dto.QuizResponse{
			ID:            quizzes[i].ID,
			Title:         quizzes[i].Title,
			Description:   quizzes[i].Description,
			Difficulty:    quizzes[i].Difficulty,
			QuestionCount: len(quizzes[i].Questions),
		})
	}
	return out, nil
}

func (svc *ContentService) GetQuiz(id string) (*model.Quiz, error) {
	quiz, err := svc.contentRepo.GetQuiz(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Quiz not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load quiz")
	}
	return quiz, nil
}

func (svc *ContentService) CreateQuiz(req dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	questions := make([]model.QuizQuestion, 0, len(req.Questions))
	for i, q := range req.Questions {
		if q.CorrectIndex >= len(q.Options) {
			return nil, shared.NewBadRequestError(nil, "Correct index out of range")
		}
		options, err := sonic.MarshalString(q.Options)
		if err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid question options")
		}
		questions = append(questions, model.QuizQuestion{
			Question:          q.Question,
			Options:           options,
			CorrectIndex:      q.CorrectIndex,
			Feedback:          q.Feedback,
			IncorrectFeedback: q.IncorrectFeedback,
			Order:             i,
		})
	}

	quiz, err := svc.contentRepo.CreateQuiz(&model.Quiz{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Questions:   questions,
	})
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to create quiz")
	}

	return &dto.QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		Difficulty:    quiz.Difficulty,
		QuestionCount: len(quiz.Questions),
	}, nil
}

// QuestionOptions decodes the stored options JSON for a question.
func QuestionOptions(q *model.QuizQuestion) []string {
	var options []string
	if err := sonic.UnmarshalString(q.Options, &options); err != nil {
		return nil
	}
	return options
}

// ==================== CASES ====================

func (svc *ContentService) GetCases() ([]dto.CaseResponse, error) {
	cases, err := svc.contentRepo.GetCases()
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load cases")
	}

	out := make([]dto.CaseResponse, 0, len(cases))
	for i := range cases {
		scenario, err := DecodeScenario(&cases[i])
		if err != nil {
			log.WithError(err).WithField("case_id", cases[i].ID).Warn("Skipping case with malformed scenario")
			continue
		}
		out = append(out, dto.CaseResponse{
			ID:          cases[i].ID,
			Title:       cases[i].Title,
			Description: cases[i].Description,
			Difficulty:  cases[i].Difficulty,
			StepCount:   len(scenario.Steps),
		})
	}
	return out, nil
}

func (svc *ContentService) GetCase(id string) (*model.CaseSimulation, error) {
	c, err := svc.contentRepo.GetCase(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Case not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load case")
	}
	return c, nil
}

func (svc *ContentService) CreateCase(req dto.CreateCaseRequest) (*dto.CaseResponse, error) {
	if len(req.Scenario.Steps) == 0 {
		return nil, shared.NewBadRequestError(nil, "Scenario must have at least one step")
	}

	scenario, err := sonic.MarshalString(req.Scenario)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid scenario")
	}

	c, err := svc.contentRepo.CreateCase(&model.CaseSimulation{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Scenario:    scenario,
	})
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to create case")
	}

	return &dto.CaseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  c.Difficulty,
		StepCount:   len(req.Scenario.Steps),
	}, nil
}

// DecodeScenario decodes the stored scenario JSON of a case simulation.
func DecodeScenario(c *model.CaseSimulation) (*dto.CaseScenario, error) {
	var scenario dto.CaseScenario
	if err := sonic.UnmarshalString(c.Scenario, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// ==================== GAMES ====================

func (svc *ContentService) GetGames() ([]dto.GameResponse, error) {
	games, err := svc.contentRepo.GetGames()
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load games")
	}

	out := make([]dto.GameResponse, 0, len(games))
	for i := range games {
		var data interface{}
		if err := sonic.UnmarshalString(games[i].GameData, &data); err != nil {
			log.WithError(err).WithField("game_id", games[i].ID).Warn("Skipping game with malformed data")
			continue
		}
		out = append(out, dto.GameResponse{
			ID:          games[i].ID,
			Title:       games[i].Title,
			Description: games[i].Description,
			Difficulty:  games[i].Difficulty,
			GameType:    games[i].GameType,
			GameData:    data,
		})
	}
	return out, nil
}

func (svc *ContentService) GetGame(id string) (*model.DragDropGame, error) {
	game, err := svc.contentRepo.GetGame(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Game not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load game")
	}
	return game, nil
}

func (svc *ContentService) CreateGame(req dto.CreateGameRequest) (*dto.GameResponse, error) {
	data, err := sonic.MarshalString(req.GameData)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid game data")
	}

	game, err := svc.contentRepo.CreateGame(&model.DragDropGame{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		GameType:    req.GameType,
		GameData:    data,
	})
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to create game")
	}

	return &dto.GameResponse{
		ID:          game.ID,
		Title:       game.Title,
		Description: game.Description,
		Difficulty:  game.Difficulty,
		GameType:    game.GameType,
		GameData:    req.GameData,
	}, nil
}

// ==================== RESOURCES ====================

func (svc *ContentService) GetResources(resourceType string) ([]dto.ResourceResponse, error) {
	resources, err := svc.contentRepo.GetResources(resourceType)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load resources")
	}

	out := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		out = append(out, toResourceResponse(&resources[i]))
	}
	return out, nil
}

func (svc *ContentService) GetResource(id string) (*model.Resource, error) {
	resource, err := svc.contentRepo.GetResource(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Resource not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load resource")
	}
	return resource, nil
}

func (svc *ContentService) CreateResource(req dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	resource, err := svc.contentRepo.CreateResource(&model.Resource{
		ID:          req.ID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Category:    req.Category,
		Pages:       req.Pages,
		Source:      req.Source,
		URL:         req.URL,
		ReadTime:    req.ReadTime,
		Term:        req.Term,
		Definition:  req.Definition,
		Format:      req.Format,
		Size:        req.Size,
	})
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to create resource")
	}

	resp := toResourceResponse(resource)
	return &resp, nil
}

func toResourceResponse(r *model.Resource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:          r.ID,
		Type:        r.Type,
		Title:       r.Title,
		Description: r.Description,
		Author:      r.Author,
		Category:    r.Category,
		Pages:       r.Pages,
		Source:      r.Source,
		URL:         r.URL,
		ReadTime:    r.ReadTime,
		Term:        r.Term,
		Definition:  r.Definition,
		Format:      r.Format,
		Size:        r.Size,
		CreatedAt:   r.CreatedAt,
	}
}
