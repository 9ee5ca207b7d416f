package messages

import (
	msgsvc "souqah-backend/internal/application/messages"
	"souqah-backend/internal/middleware"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *msgsvc.Service
}

type sendRequest struct {
	AdID       string `json:"ad_id"`
	ReceiverID string `json:"receiver_id"`
	Body       string `json:"body"`
}

// Send POST /api/v1/messages
func (h *Handlers) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	adID, err := uuid.Parse(req.AdID)
	if err != nil {
		return response.Error(c, "Invalid ad_id", fiber.StatusBadRequest, nil)
	}
	in := msgsvc.SendInput{
		AdID:     adID,
		SenderID: middleware.ActorID(c),
		Body:     req.Body,
	}
	if req.ReceiverID != "" {
		receiverID, err := uuid.Parse(req.ReceiverID)
		if err != nil {
			return response.Error(c, "Invalid receiver_id", fiber.StatusBadRequest, nil)
		}
		in.ReceiverID = receiverID
	}
	msg, err := h.Service.Send(c.Context(), in)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.SuccessCreated(c, "Message sent", msg, nil)
}

// Conversations GET /api/v1/conversations — the caller's inbox, one entry
// per (ad, other user) pair.
func (h *Handlers) Conversations(c *fiber.Ctx) error {
	convos, err := h.Service.Conversations(c.Context(), middleware.ActorID(c))
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Conversations fetched", convos, nil)
}

// Thread GET /api/v1/conversations/:adId/:userId — one conversation, oldest
// first. Fetching marks the caller's received messages as read.
func (h *Handlers) Thread(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("adId"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	msgs, err := h.Service.Fetch(c.Context(), middleware.ActorID(c), adID, otherID)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.Success(c, "Messages fetched", msgs, nil)
}
