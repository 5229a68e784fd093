package server

import (
	"log"

	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMessageRequest is the body for POST /api/messages.
type CreateMessageRequest struct {
	Text string `json:"text"`
}

// CreateMessage posts a new message
// @Summary Post a message
// @Description Creates a message of up to 140 characters
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMessageRequest true "Message text"
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Router /api/messages [post]
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	message, err := s.messageService.CreateMessage(c.Context(), userID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.notifyFollowers(c, userID, func(followerIDs []uint) {
		if err := s.notifier.PublishNewMessage(c.Context(), followerIDs, message); err != nil {
			log.Printf("timeline publish for message %d failed: %v", message.ID, err)
		}
	})

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetMessages returns the message feed
// @Summary List messages
// @Description Newest first; messages from blocked users are hidden. Pass following=1 for a home timeline
// @Tags messages
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param following query bool false "Only messages from followed users"
// @Success 200 {array} models.Message
// @Router /api/messages [get]
func (s *Server) GetMessages(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)
	followingOnly := c.QueryBool("following")

	if followingOnly && viewerID == 0 {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required for the following feed"))
	}

	messages, err := s.messageService.ListMessages(c.Context(), service.ListMessagesInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: viewerID,
		FollowingOnly: followingOnly,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(messages)
}

// GetMessage returns a single message
// @Summary Get a message
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} models.Message
// @Failure 404 {object} models.ErrorResponse
// @Router /api/messages/{id} [get]
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	message, err := s.messageService.GetMessage(c.Context(), id, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(message)
}

// DeleteMessage removes a message authored by the viewer
// @Summary Delete a message
// @Description Only the author may delete a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/messages/{id} [delete]
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	if err := s.messageService.DeleteMessage(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}

	s.notifyFollowers(c, userID, func(followerIDs []uint) {
		if err := s.notifier.PublishMessageDeleted(c.Context(), followerIDs, id); err != nil {
			log.Printf("timeline publish for deleted message %d failed: %v", id, err)
		}
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Message deleted",
	})
}

// LikeMessage records a like on a message
// @Summary Like a message
// @Description Authors cannot like their own messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/messages/{id}/like [post]
func (s *Server) LikeMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.Like(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message liked",
	})
}

// UnlikeMessage removes a like; absent likes are a no-op
// @Summary Unlike a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]string
// @Router /api/messages/{id}/like [delete]
func (s *Server) UnlikeMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.Unlike(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Like removed",
	})
}

// notifyFollowers resolves the author's followers and hands them to publish.
// Fan-out is best-effort and never affects the HTTP response.
func (s *Server) notifyFollowers(c *fiber.Ctx, authorID uint, publish func(followerIDs []uint)) {
	if s.notifier == nil {
		return
	}
	followerIDs, err := s.relationshipService.FollowerIDs(c.Context(), authorID)
	if err != nil {
		log.Printf("follower lookup for user %d failed: %v", authorID, err)
		return
	}
	publish(followerIDs)
}
