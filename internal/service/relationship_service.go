package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

// RelationshipService provides follow/block edge mutations and the
// relationship predicates between users.
type RelationshipService struct {
	relRepo  repository.RelationshipRepository
	userRepo repository.UserRepository
}

// RelationshipFlags describes how the viewer relates to a target user.
type RelationshipFlags struct {
	Following  bool `json:"following"`
	FollowedBy bool `json:"followed_by"`
	Blocking   bool `json:"blocking"`
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(relRepo repository.RelationshipRepository, userRepo repository.UserRepository) *RelationshipService {
	return &RelationshipService{relRepo: relRepo, userRepo: userRepo}
}

// Follow creates a follow edge from follower to target. Self-follows and
// duplicate edges are rejected.
func (s *RelationshipService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewSelfFollowError()
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.relRepo.Follow(ctx, followerID, targetID); err != nil {
		return err
	}
	observability.EdgeMutations.WithLabelValues("follow", "create").Inc()
	return nil
}

// Unfollow removes a follow edge; removing an absent edge is a no-op.
func (s *RelationshipService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if err := s.relRepo.Unfollow(ctx, followerID, targetID); err != nil {
		return err
	}
	observability.EdgeMutations.WithLabelValues("follow", "delete").Inc()
	return nil
}

// Block creates a block edge from blocker to target. Self-blocks and
// duplicate edges are rejected.
func (s *RelationshipService) Block(ctx context.Context, blockerID, targetID uint) error {
	if blockerID == targetID {
		return models.NewSelfBlockError()
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.relRepo.Block(ctx, blockerID, targetID); err != nil {
		return err
	}
	observability.EdgeMutations.WithLabelValues("block", "create").Inc()
	return nil
}

// Unblock removes a block edge; removing an absent edge is a no-op.
func (s *RelationshipService) Unblock(ctx context.Context, blockerID, targetID uint) error {
	if err := s.relRepo.Unblock(ctx, blockerID, targetID); err != nil {
		return err
	}
	observability.EdgeMutations.WithLabelValues("block", "delete").Inc()
	return nil
}

func (s *RelationshipService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.relRepo.IsFollowing(ctx, followerID, targetID)
}

// IsFollowedBy reports whether targetID follows userID.
func (s *RelationshipService) IsFollowedBy(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.relRepo.IsFollowing(ctx, targetID, userID)
}

func (s *RelationshipService) IsBlocking(ctx context.Context, blockerID, targetID uint) (bool, error) {
	return s.relRepo.IsBlocking(ctx, blockerID, targetID)
}

// Relationship resolves all viewer-to-target flags in one call.
func (s *RelationshipService) Relationship(ctx context.Context, viewerID, targetID uint) (*RelationshipFlags, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	following, err := s.relRepo.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	followedBy, err := s.relRepo.IsFollowing(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	blocking, err := s.relRepo.IsBlocking(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}

	return &RelationshipFlags{
		Following:  following,
		FollowedBy: followedBy,
		Blocking:   blocking,
	}, nil
}

func (s *RelationshipService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.relRepo.Followers(ctx, userID, limit, offset)
}

// FollowerIDs lists the IDs of everyone following userID, for timeline fan-out.
func (s *RelationshipService) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.relRepo.FollowerIDs(ctx, userID)
}

func (s *RelationshipService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.relRepo.Following(ctx, userID, limit, offset)
}

func (s *RelationshipService) BlockedUsers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.relRepo.BlockedUsers(ctx, userID, limit, offset)
}
