package handlers

import (
	"mime/multipart"

	"github.com/agile-academy/academy_api/dto"
)

// Handlers depend on these slices of the service layer rather than the
// concrete services, which keeps them testable with fakes.

type AuthProvider interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

type ContentProvider interface {
	GetLessons() ([]dto.LessonResponse, error)
	GetLesson(id string) (*dto.LessonResponse, error)
	GetQuizzes() ([]dto.QuizResponse, error)
	GetCases() ([]dto.CaseResponse, error)
	GetGames() ([]dto.GameResponse, error)
	GetResources(resourceType string) ([]dto.ResourceResponse, error)
	CreateLesson(req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	CreateQuiz(req dto.CreateQuizRequest) (*dto.QuizResponse, error)
	CreateCase(req dto.CreateCaseRequest) (*dto.CaseResponse, error)
	CreateGame(req dto.CreateGameRequest) (*dto.GameResponse, error)
	CreateResource(req dto.CreateResourceRequest) (*dto.ResourceResponse, error)
}

type QuizRunner interface {
	StartQuiz(userID, quizID string) (*dto.StartQuizResponse, error)
	SelectAnswer(userID, sessionID string, index int) error
	Submit(userID, sessionID string) (*dto.SubmitAnswerResponse, error)
	Advance(userID, sessionID string) (*dto.AdvanceQuizResponse, error)
}

type CaseRunner interface {
	StartCase(userID, caseID string) (*dto.StartCaseResponse, error)
	ChooseOption(userID, sessionID string, optionIndex int) (*dto.ChooseOptionResponse, error)
	Advance(userID, sessionID string) (*dto.AdvanceCaseResponse, error)
}

type ProgressProvider interface {
	GetProgress(userID string) (*dto.ProgressResponse, error)
	CompleteLesson(userID, lessonID string) (*dto.CompleteLessonResponse, error)
	GetCompletedLessons(userID string) (*dto.CompletedLessonsResponse, error)
	SubmitGameScore(userID, gameID string, req dto.SubmitGameScoreRequest) (*dto.GameResult, error)
	GetDashboard(userID string) (*dto.DashboardResponse, error)
	EmptyDashboard() *dto.DashboardResponse
}

type StudyTimeProvider interface {
	Heartbeat(userID string) *dto.HeartbeatResponse
	Close(userID string) int
}

type ChatProvider interface {
	Answer(req dto.ChatRequest) (interface{}, error)
}

type MediaProvider interface {
	UploadTemplateFile(resourceID string, fileHeader *multipart.FileHeader) (string, error)
	DownloadURL(resourceID string) (string, error)
}
