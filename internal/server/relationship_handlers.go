package server

import (
	"chirp/internal/authz"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// requireRelationViewer checks the relation-view gate for the current viewer.
// AuthRequired already runs on these routes, so this only fails if the route
// table regresses.
func requireRelationViewer(c *fiber.Ctx) error {
	if !authz.CanViewRelations(currentUserID(c)) {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
		return errResponseWritten
	}
	return nil
}

// FollowUser creates a follow edge toward the target user
// @Summary Follow a user
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to follow"
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/users/{id}/follow [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.relationshipService.Follow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Now following",
	})
}

// UnfollowUser removes a follow edge; absent edges are a no-op
// @Summary Unfollow a user
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to unfollow"
// @Success 200 {object} map[string]string
// @Router /api/users/{id}/follow [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.relationshipService.Unfollow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Unfollowed",
	})
}

// BlockUser creates a block edge toward the target user
// @Summary Block a user
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to block"
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/users/{id}/block [post]
func (s *Server) BlockUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.relationshipService.Block(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User blocked",
	})
}

// UnblockUser removes a block edge; absent edges are a no-op
// @Summary Unblock a user
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID to unblock"
// @Success 200 {object} map[string]string
// @Router /api/users/{id}/block [delete]
func (s *Server) UnblockUser(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.relationshipService.Unblock(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User unblocked",
	})
}

// GetRelationship reports how the viewer relates to the target user
// @Summary Get relationship flags
// @Description Returns following, followed_by, and blocking flags
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Success 200 {object} service.RelationshipFlags
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id}/relationship [get]
func (s *Server) GetRelationship(c *fiber.Ctx) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	flags, err := s.relationshipService.Relationship(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(flags)
}

// GetFollowers lists a user's followers
// @Summary List followers
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id}/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	if err := requireRelationViewer(c); err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	users, err := s.relationshipService.Followers(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetFollowing lists the users someone follows
// @Summary List following
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id}/following [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	if err := requireRelationViewer(c); err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	users, err := s.relationshipService.Following(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetMyBlockedUsers lists the users the viewer has blocked
// @Summary List blocked users
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.User
// @Router /api/users/me/blocked [get]
func (s *Server) GetMyBlockedUsers(c *fiber.Ctx) error {
	if err := requireRelationViewer(c); err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	users, err := s.relationshipService.BlockedUsers(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}
