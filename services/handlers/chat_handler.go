package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/shared"
)

type ChatHandler struct {
	chatSvc ChatProvider
}

func NewChatHandler(chatSvc ChatProvider) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// Chat answers a tutor question
// @Summary Ask the tutor
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Conversation so far"
// @Success 200 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	resp, err := h.chatSvc.Answer(req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
