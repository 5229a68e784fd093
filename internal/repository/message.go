// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for messages and likes.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error)
	List(ctx context.Context, limit, offset int, currentUserID uint, followingOnly bool) ([]*models.Message, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, messageID uint) (bool, error)
	Like(ctx context.Context, userID, messageID uint) error
	Unlike(ctx context.Context, userID, messageID uint) error
	LikedMessages(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// applyMessageDetails adds subqueries to fetch the like count and the
// viewer's liked status in a single query.
func (r *messageRepository) applyMessageDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "messages.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.message_id = messages.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.message_id = messages.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// applyBlockFilter excludes messages authored by anyone on either side of a
// block edge involving the viewer.
func (r *messageRepository) applyBlockFilter(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID == 0 {
		return db
	}
	return db.
		Where("messages.user_id NOT IN (SELECT blocked_id FROM blocks WHERE blocker_id = ?)", currentUserID).
		Where("messages.user_id NOT IN (SELECT blocker_id FROM blocks WHERE blocked_id = ?)", currentUserID)
}

func (r *messageRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	var message models.Message
	key := cache.MessageKey(id)

	fetch := func(db *gorm.DB) error {
		return r.applyMessageDetails(db, currentUserID).
			Preload("User").
			First(&message, id).Error
	}

	var err error
	if currentUserID == 0 {
		// Viewer-independent shape, safe to cache.
		err = cache.Aside(ctx, key, &message, cache.MessageTTL, func() error {
			return fetch(readDB(r.db).WithContext(ctx))
		})
	} else {
		err = fetch(readDB(r.db).WithContext(ctx))
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	var messages []*models.Message
	if err := r.applyMessageDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		Where("messages.user_id = ?", userID).
		Order("messages.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) List(ctx context.Context, limit, offset int, currentUserID uint, followingOnly bool) ([]*models.Message, error) {
	var messages []*models.Message
	query := r.applyMessageDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User")
	query = r.applyBlockFilter(query, currentUserID)

	if followingOnly && currentUserID != 0 {
		// Home feed: followed authors plus the viewer's own messages.
		query = query.Where(
			"messages.user_id IN (SELECT followed_id FROM follows WHERE follower_id = ?) OR messages.user_id = ?",
			currentUserID, currentUserID,
		)
	}

	if err := query.
		Order("messages.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Message{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, id)
	return nil
}

func (r *messageRepository) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like creates a like edge. The existence check and the insert run in the
// same transaction so concurrent duplicate attempts surface as DUPLICATE_EDGE
// rather than a raw constraint error.
func (r *messageRepository) Like(ctx context.Context, userID, messageID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Like{}).
			Where("user_id = ? AND message_id = ?", userID, messageID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return models.NewDuplicateEdgeError("Like")
		}
		if err := tx.Create(&models.Like{UserID: userID, MessageID: messageID}).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewDuplicateEdgeError("Like")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err == nil {
		cache.InvalidateMessage(ctx, messageID)
	}
	return err
}

// Unlike removes a like edge. Removing an absent edge is a no-op.
func (r *messageRepository) Unlike(ctx context.Context, userID, messageID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, messageID)
	return nil
}

// LikedMessages returns the messages a user has liked, most recent like
// first. Soft-deleted messages drop out of the result.
func (r *messageRepository) LikedMessages(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	var messages []*models.Message
	if err := r.applyMessageDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
