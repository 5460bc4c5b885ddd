package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressProvider
	studySvc    StudyTimeProvider
}

func NewProgressHandler(progressSvc ProgressProvider, studySvc StudyTimeProvider) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
		studySvc:    studySvc,
	}
}

// GetProgress returns the caller's aggregated learning stats
// @Summary Get progress
// @Tags progress
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Security BearerAuth
// @Router /api/v1/progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.GetProgress(userID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// CompleteLesson marks a lesson as finished for the caller
// @Summary Complete a lesson
// @Tags progress
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.CompleteLessonResponse}
// @Security BearerAuth
// @Router /api/v1/lessons/{id}/complete [post]
func (h *ProgressHandler) CompleteLesson(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.CompleteLesson(userID, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// GetCompletedLessons lists the lesson ids the caller has finished
// @Summary List completed lessons
// @Tags progress
// @Produce json
// @Success 200 {object} shared.Response{data=dto.CompletedLessonsResponse}
// @Security BearerAuth
// @Router /api/v1/lessons/completed [get]
func (h *ProgressHandler) GetCompletedLessons(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.GetCompletedLessons(userID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// GetDashboard assembles the home dashboard. Anonymous visitors get the
// empty variant instead of an auth error
// @Summary Get dashboard
// @Tags progress
// @Produce json
// @Success 200 {object} shared.Response{data=dto.DashboardResponse}
// @Router /api/v1/dashboard [get]
func (h *ProgressHandler) GetDashboard(c *fiber.Ctx) error {
	userID, _ := c.Locals(shared.UserID).(string)
	if userID == "" {
		return shared.ResponseOK(c, h.progressSvc.EmptyDashboard())
	}

	resp, err := h.progressSvc.GetDashboard(userID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// Heartbeat keeps the caller's study session alive
// @Summary Study heartbeat
// @Tags progress
// @Produce json
// @Success 200 {object} shared.Response{data=dto.HeartbeatResponse}
// @Security BearerAuth
// @Router /api/v1/study/heartbeat [post]
func (h *ProgressHandler) Heartbeat(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	return shared.ResponseOK(c, h.studySvc.Heartbeat(userID))
}

// CloseStudy ends the caller's study session, flushing whole minutes
// @Summary Close study session
// @Tags progress
// @Produce json
// @Success 200 {object} shared.Response{data=dto.HeartbeatResponse}
// @Security BearerAuth
// @Router /api/v1/study/close [post]
func (h *ProgressHandler) CloseStudy(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	minutes := h.studySvc.Close(userID)
	return shared.ResponseOK(c, dto.HeartbeatResponse{
		Active:         false,
		MinutesFlushed: minutes,
	})
}
