package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/shared"
)

type ContentHandler struct {
	contentSvc ContentProvider
}

func NewContentHandler(contentSvc ContentProvider) *ContentHandler {
	return &ContentHandler{contentSvc: contentSvc}
}

// GetLessons lists the course lessons grouped by section order
// @Summary List lessons
// @Tags content
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.LessonResponse}
// @Router /api/v1/lessons [get]
func (h *ContentHandler) GetLessons(c *fiber.Ctx) error {
	lessons, err := h.contentSvc.GetLessons()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, lessons)
}

// GetLesson returns one lesson with its full content
// @Summary Get a lesson
// @Tags content
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{id} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	lesson, err := h.contentSvc.GetLesson(c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, lesson)
}

// GetQuizzes lists available quizzes without their questions
// @Summary List quizzes
// @Tags content
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.QuizResponse}
// @Router /api/v1/quizzes [get]
func (h *ContentHandler) GetQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.contentSvc.GetQuizzes()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, quizzes)
}

// GetCases lists available case simulations
// @Summary List case simulations
// @Tags content
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.CaseResponse}
// @Router /api/v1/cases [get]
func (h *ContentHandler) GetCases(c *fiber.Ctx) error {
	cases, err := h.contentSvc.GetCases()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, cases)
}

// GetGames lists the drag-drop games with their board data
// @Summary List games
// @Tags content
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.GameResponse}
// @Router /api/v1/games [get]
func (h *ContentHandler) GetGames(c *fiber.Ctx) error {
	games, err := h.contentSvc.GetGames()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, games)
}

// GetResources lists library resources, optionally filtered by type
// @Summary List library resources
// @Tags content
// @Produce json
// @Param type query string false "Resource type" Enums(libro, articulo, glosario, plantilla)
// @Success 200 {object} shared.Response{data=[]dto.ResourceResponse}
// @Router /api/v1/resources [get]
func (h *ContentHandler) GetResources(c *fiber.Ctx) error {
	resourceType := c.Query("type")

	switch resourceType {
	case "", shared.ResourceTypeBook, shared.ResourceTypeArticle, shared.ResourceTypeGlossary, shared.ResourceTypeTemplate:
	default:
		return shared.ResponseBadRequest(c, "Unknown resource type")
	}

	resources, err := h.contentSvc.GetResources(resourceType)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resources)
}

// ==================== CONTENT CREATION ====================

// CreateLesson adds a lesson to the catalog
// @Summary Create a lesson
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateLessonRequest true "Lesson definition"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Security BearerAuth
// @Router /api/v1/lessons [post]
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	lesson, err := h.contentSvc.CreateLesson(req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, lesson)
}

// CreateQuiz adds a quiz with its questions
// @Summary Create a quiz
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz definition"
// @Success 201 {object} shared.Response{data=dto.QuizResponse}
// @Security BearerAuth
// @Router /api/v1/quizzes [post]
func (h *ContentHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	quiz, err := h.contentSvc.CreateQuiz(req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, quiz)
}

// CreateCase adds a case simulation with its scenario
// @Summary Create a case simulation
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateCaseRequest true "Case definition"
// @Success 201 {object} shared.Response{data=dto.CaseResponse}
// @Security BearerAuth
// @Router /api/v1/cases [post]
func (h *ContentHandler) CreateCase(c *fiber.Ctx) error {
	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	simulation, err := h.contentSvc.CreateCase(req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, simulation)
}

// CreateGame adds a drag-drop game
// @Summary Create a game
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateGameRequest true "Game definition"
// @Success 201 {object} shared.Response{data=dto.GameResponse}
// @Security BearerAuth
// @Router /api/v1/games [post]
func (h *ContentHandler) CreateGame(c *fiber.Ctx) error {
	var req dto.CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	game, err := h.contentSvc.CreateGame(req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, game)
}

// CreateResource adds a library resource
// @Summary Create a library resource
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.CreateResourceRequest true "Resource definition"
// @Success 201 {object} shared.Response{data=dto.ResourceResponse}
// @Security BearerAuth
// @Router /api/v1/resources [post]
func (h *ContentHandler) CreateResource(c *fiber.Ctx) error {
	var req dto.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resource, err := h.contentSvc.CreateResource(req)
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, resource)
}
