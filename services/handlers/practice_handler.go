package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/shared"
)

// PracticeHandler serves the interactive session flows: quizzes, case
// simulations and drag-drop game scores.
type PracticeHandler struct {
	quizSvc     QuizRunner
	caseSvc     CaseRunner
	progressSvc ProgressProvider
}

func NewPracticeHandler(quizSvc QuizRunner, caseSvc CaseRunner, progressSvc ProgressProvider) *PracticeHandler {
	return &PracticeHandler{
		quizSvc:     quizSvc,
		caseSvc:     caseSvc,
		progressSvc: progressSvc,
	}
}

// ==================== QUIZ SESSIONS ====================

// StartQuiz opens a new quiz attempt for the caller
// @Summary Start a quiz session
// @Tags practice
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 201 {object} shared.Response{data=dto.StartQuizResponse}
// @Security BearerAuth
// @Router /api/v1/quizzes/{id}/start [post]
func (h *PracticeHandler) StartQuiz(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.quizSvc.StartQuiz(userID, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, resp)
}

// SubmitAnswer locks in an answer for the current question
// @Summary Answer the current quiz question
// @Tags practice
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param request body dto.SubmitAnswerRequest true "Selected option"
// @Success 200 {object} shared.Response{data=dto.SubmitAnswerResponse}
// @Security BearerAuth
// @Router /api/v1/quizzes/sessions/{sid}/answer [post]
func (h *PracticeHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	sessionID := c.Params("sid")
	if err := h.quizSvc.SelectAnswer(userID, sessionID, req.SelectedIndex); err != nil {
		return err
	}

	resp, err := h.quizSvc.Submit(userID, sessionID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// AdvanceQuiz moves past the feedback screen
// @Summary Advance a quiz session
// @Tags practice
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.AdvanceQuizResponse}
// @Security BearerAuth
// @Router /api/v1/quizzes/sessions/{sid}/advance [post]
func (h *PracticeHandler) AdvanceQuiz(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.quizSvc.Advance(userID, c.Params("sid"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// ==================== CASE SESSIONS ====================

// StartCase opens a new case-simulation attempt for the caller
// @Summary Start a case simulation
// @Tags practice
// @Produce json
// @Param id path string true "Case ID"
// @Success 201 {object} shared.Response{data=dto.StartCaseResponse}
// @Security BearerAuth
// @Router /api/v1/cases/{id}/start [post]
func (h *PracticeHandler) StartCase(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.caseSvc.StartCase(userID, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseCreated(c, resp)
}

// ChooseOption records the decision for the current case step
// @Summary Choose an option in a case step
// @Tags practice
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param request body dto.ChooseOptionRequest true "Chosen option"
// @Success 200 {object} shared.Response{data=dto.ChooseOptionResponse}
// @Security BearerAuth
// @Router /api/v1/cases/sessions/{sid}/choose [post]
func (h *PracticeHandler) ChooseOption(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.ChooseOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.caseSvc.ChooseOption(userID, c.Params("sid"), req.OptionIndex)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// AdvanceCase moves past the revealed consequence
// @Summary Advance a case session
// @Tags practice
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.AdvanceCaseResponse}
// @Security BearerAuth
// @Router /api/v1/cases/sessions/{sid}/advance [post]
func (h *PracticeHandler) AdvanceCase(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.caseSvc.Advance(userID, c.Params("sid"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// ==================== GAMES ====================

// SubmitGameScore records a finished drag-drop game
// @Summary Submit a game score
// @Tags practice
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param request body dto.SubmitGameScoreRequest true "Game result"
// @Success 200 {object} shared.Response{data=dto.GameResult}
// @Security BearerAuth
// @Router /api/v1/games/{id}/score [post]
func (h *PracticeHandler) SubmitGameScore(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitGameScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.progressSvc.SubmitGameScore(userID, c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
