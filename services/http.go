package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/agile-academy/academy_api/services/handlers"
	"github.com/agile-academy/academy_api/shared"
)

// authGuard is the slice of the auth middleware the router needs. It is
// looked up by service id to keep the middleware package importable
// from here without a cycle.
type authGuard interface {
	RequiredAuth() fiber.Handler
	OptionalAuth() fiber.Handler
}

type HttpService struct {
	context.DefaultService

	authSvc      *AuthService
	contentSvc   *ContentService
	progressSvc  *ProgressService
	quizSvc      *QuizService
	caseSvc      *CaseService
	studySvc     *StudyTimeService
	chatSvc      *ChatService
	mediaSvc     *MediaService
	rateLimitSvc *RateLimitService
	monitoring   *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.authSvc = ctx.Service(AUTH_SVC).(*AuthService)
	svc.contentSvc = ctx.Service(CONTENT_SVC).(*ContentService)
	svc.progressSvc = ctx.Service(PROGRESS_SVC).(*ProgressService)
	svc.quizSvc = ctx.Service(QUIZ_SVC).(*QuizService)
	svc.caseSvc = ctx.Service(CASE_SVC).(*CaseService)
	svc.studySvc = ctx.Service(STUDY_TIME_SVC).(*StudyTimeService)
	svc.chatSvc = ctx.Service(CHAT_SVC).(*ChatService)
	svc.mediaSvc = ctx.Service(MEDIA_SVC).(*MediaService)
	svc.rateLimitSvc = ctx.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoring = ctx.Service(MONITORING_SVC).(*MonitoringService)

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	auth := svc.Service("auth").(authGuard)

	app := fiber.New(fiber.Config{
		JSONEncoder:  shared.JSONEncoder,
		JSONDecoder:  shared.JSONDecoder,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoring))
	app.Use(svc.rateLimitSvc.Middleware())

	app.Get("/ping", svc.ping)

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	practiceHandler := handlers.NewPracticeHandler(svc.quizSvc, svc.caseSvc, svc.progressSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressSvc, svc.studySvc)
	chatHandler := handlers.NewChatHandler(svc.chatSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Post("/auth/register", authHandler.Register)
	v1.Post("/auth/login", authHandler.Login)

	v1.Get("/lessons", contentHandler.GetLessons)
	v1.Post("/lessons", auth.RequiredAuth(), contentHandler.CreateLesson)
	v1.Get("/lessons/completed", auth.RequiredAuth(), progressHandler.GetCompletedLessons)
	v1.Get("/lessons/:id", contentHandler.GetLesson)
	v1.Post("/lessons/:id/complete", auth.RequiredAuth(), progressHandler.CompleteLesson)

	v1.Get("/quizzes", contentHandler.GetQuizzes)
	v1.Post("/quizzes", auth.RequiredAuth(), contentHandler.CreateQuiz)
	v1.Post("/quizzes/sessions/:sid/answer", auth.RequiredAuth(), practiceHandler.SubmitAnswer)
	v1.Post("/quizzes/sessions/:sid/advance", auth.RequiredAuth(), practiceHandler.AdvanceQuiz)
	v1.Post("/quizzes/:id/start", auth.RequiredAuth(), practiceHandler.StartQuiz)

	v1.Get("/cases", contentHandler.GetCases)
	v1.Post("/cases", auth.RequiredAuth(), contentHandler.CreateCase)
	v1.Post("/cases/sessions/:sid/choose", auth.RequiredAuth(), practiceHandler.ChooseOption)
	v1.Post("/cases/sessions/:sid/advance", auth.RequiredAuth(), practiceHandler.AdvanceCase)
	v1.Post("/cases/:id/start", auth.RequiredAuth(), practiceHandler.StartCase)

	v1.Get("/games", contentHandler.GetGames)
	v1.Post("/games", auth.RequiredAuth(), contentHandler.CreateGame)
	v1.Post("/games/:id/score", auth.RequiredAuth(), practiceHandler.SubmitGameScore)

	v1.Get("/resources", contentHandler.GetResources)
	v1.Post("/resources", auth.RequiredAuth(), contentHandler.CreateResource)
	v1.Get("/resources/:id/download", mediaHandler.DownloadResource)
	v1.Post("/resources/:id/file", auth.RequiredAuth(), mediaHandler.UploadTemplateFile)

	v1.Get("/progress", auth.RequiredAuth(), progressHandler.GetProgress)
	v1.Get("/dashboard", auth.OptionalAuth(), progressHandler.GetDashboard)

	v1.Post("/study/heartbeat", auth.RequiredAuth(), progressHandler.Heartbeat)
	v1.Post("/study/close", auth.RequiredAuth(), progressHandler.CloseStudy)

	v1.Post("/chat", auth.RequiredAuth(), chatHandler.Chat)

	app.Use(func(c *fiber.Ctx) error {
		return svc.handleError(c, errors.New("page not found"))
	})

	svc.server = app
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	if err.Error() == "page not found" {
		return shared.ResponseNotFound(c)
	}

	return shared.ResponseInternalError(c, err)
}
