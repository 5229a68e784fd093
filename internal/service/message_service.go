package service

import (
	"context"
	"errors"
	"strings"

	"chirp/internal/authz"
	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
	"chirp/internal/validation"
)

// MessageService provides message lifecycle and like operations.
type MessageService struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
}

// ListMessagesInput carries feed query parameters.
type ListMessagesInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	FollowingOnly bool
}

// NewMessageService returns a new MessageService.
func NewMessageService(msgRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{msgRepo: msgRepo, userRepo: userRepo}
}

// CreateMessage stores a new message after text validation. The text is
// trimmed before storage.
func (s *MessageService) CreateMessage(ctx context.Context, userID uint, text string) (*models.Message, error) {
	if err := validation.ValidateMessageText(text); err != nil {
		if errors.Is(err, validation.ErrEmptyMessage) {
			return nil, models.NewEmptyTextError()
		}
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.Message{
		Text:   strings.TrimSpace(text),
		UserID: userID,
	}
	if err := s.msgRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	observability.MessagesCreated.Inc()

	return s.msgRepo.GetByID(ctx, message.ID, userID)
}

func (s *MessageService) GetMessage(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	return s.msgRepo.GetByID(ctx, id, currentUserID)
}

func (s *MessageService) ListMessages(ctx context.Context, in ListMessagesInput) ([]*models.Message, error) {
	return s.msgRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID, in.FollowingOnly)
}

func (s *MessageService) GetUserMessages(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.msgRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// DeleteMessage soft-deletes a message. Only the author may delete.
func (s *MessageService) DeleteMessage(ctx context.Context, requesterID, messageID uint) error {
	message, err := s.msgRepo.GetByID(ctx, messageID, requesterID)
	if err != nil {
		return err
	}
	if err := authz.AuthorizeDelete(requesterID, message.UserID); err != nil {
		return err
	}
	if err := s.msgRepo.Delete(ctx, messageID); err != nil {
		return err
	}
	observability.MessagesDeleted.Inc()
	return nil
}

// Like records a like. Authors cannot like their own messages; liking twice
// is rejected as a duplicate edge.
func (s *MessageService) Like(ctx context.Context, userID, messageID uint) error {
	message, err := s.msgRepo.GetByID(ctx, messageID, userID)
	if err != nil {
		return err
	}
	if err := authz.AuthorizeLike(userID, message.UserID); err != nil {
		return err
	}
	if err := s.msgRepo.Like(ctx, userID, messageID); err != nil {
		return err
	}
	observability.EdgeMutations.WithLabelValues("like", "create").Inc()
	return nil
}

// Unlike removes a like; removing an absent like is a no-op.
func (s *MessageService) Unlike(ctx context.Context, userID, messageID uint) error {
	if err := s.msgRepo.Unlike(ctx, userID, messageID); err != nil {
		return err
	}
	observability.EdgeMutations.WithLabelValues("like", "delete").Inc()
	return nil
}

// LikedMessages lists the messages a user liked, most recent like first.
func (s *MessageService) LikedMessages(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.msgRepo.LikedMessages(ctx, userID, limit, offset, currentUserID)
}
