package service

import (
	"context"

	"chirp/internal/models"
)

type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	createFn            func(context.Context, *models.User) error
	updateFn            func(context.Context, *models.User) error
	deleteWithCascadeFn func(context.Context, uint) error
	listFn              func(context.Context, int, int) ([]models.User, error)
	searchFn            func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) DeleteWithCascade(ctx context.Context, id uint) error {
	return s.deleteWithCascadeFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:           func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:        func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:     func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:            func(context.Context, *models.User) error { return nil },
		updateFn:            func(context.Context, *models.User) error { return nil },
		deleteWithCascadeFn: func(context.Context, uint) error { return nil },
		listFn:              func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn:            func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
	}
}

type relationshipRepoStub struct {
	followFn       func(context.Context, uint, uint) error
	unfollowFn     func(context.Context, uint, uint) error
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	blockFn        func(context.Context, uint, uint) error
	unblockFn      func(context.Context, uint, uint) error
	isBlockingFn   func(context.Context, uint, uint) (bool, error)
	followersFn    func(context.Context, uint, int, int) ([]models.User, error)
	followerIDsFn  func(context.Context, uint) ([]uint, error)
	followingFn    func(context.Context, uint, int, int) ([]models.User, error)
	blockedUsersFn func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *relationshipRepoStub) Follow(ctx context.Context, followerID, followedID uint) error {
	return s.followFn(ctx, followerID, followedID)
}
func (s *relationshipRepoStub) Unfollow(ctx context.Context, followerID, followedID uint) error {
	return s.unfollowFn(ctx, followerID, followedID)
}
func (s *relationshipRepoStub) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followedID)
}
func (s *relationshipRepoStub) Block(ctx context.Context, blockerID, blockedID uint) error {
	return s.blockFn(ctx, blockerID, blockedID)
}
func (s *relationshipRepoStub) Unblock(ctx context.Context, blockerID, blockedID uint) error {
	return s.unblockFn(ctx, blockerID, blockedID)
}
func (s *relationshipRepoStub) IsBlocking(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	return s.isBlockingFn(ctx, blockerID, blockedID)
}
func (s *relationshipRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *relationshipRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *relationshipRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followingFn(ctx, userID, limit, offset)
}
func (s *relationshipRepoStub) BlockedUsers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.blockedUsersFn(ctx, userID, limit, offset)
}

func noopRelationshipRepo() *relationshipRepoStub {
	return &relationshipRepoStub{
		followFn:       func(context.Context, uint, uint) error { return nil },
		unfollowFn:     func(context.Context, uint, uint) error { return nil },
		isFollowingFn:  func(context.Context, uint, uint) (bool, error) { return false, nil },
		blockFn:        func(context.Context, uint, uint) error { return nil },
		unblockFn:      func(context.Context, uint, uint) error { return nil },
		isBlockingFn:   func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn:    func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		followerIDsFn:  func(context.Context, uint) ([]uint, error) { return nil, nil },
		followingFn:    func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		blockedUsersFn: func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
	}
}

type messageRepoStub struct {
	createFn        func(context.Context, *models.Message) error
	getByIDFn       func(context.Context, uint, uint) (*models.Message, error)
	getByUserIDFn   func(context.Context, uint, int, int, uint) ([]*models.Message, error)
	listFn          func(context.Context, int, int, uint, bool) ([]*models.Message, error)
	deleteFn        func(context.Context, uint) error
	isLikedFn       func(context.Context, uint, uint) (bool, error)
	likeFn          func(context.Context, uint, uint) error
	unlikeFn        func(context.Context, uint, uint) error
	likedMessagesFn func(context.Context, uint, int, int, uint) ([]*models.Message, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *messageRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *messageRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint, followingOnly bool) ([]*models.Message, error) {
	return s.listFn(ctx, limit, offset, currentUserID, followingOnly)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *messageRepoStub) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, messageID)
}
func (s *messageRepoStub) Like(ctx context.Context, userID, messageID uint) error {
	return s.likeFn(ctx, userID, messageID)
}
func (s *messageRepoStub) Unlike(ctx context.Context, userID, messageID uint) error {
	return s.unlikeFn(ctx, userID, messageID)
}
func (s *messageRepoStub) LikedMessages(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	return s.likedMessagesFn(ctx, userID, limit, offset, currentUserID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn: func(context.Context, *models.Message) error { return nil },
		getByIDFn: func(_ context.Context, id uint, _ uint) (*models.Message, error) {
			return &models.Message{ID: id}, nil
		},
		getByUserIDFn:   func(context.Context, uint, int, int, uint) ([]*models.Message, error) { return nil, nil },
		listFn:          func(context.Context, int, int, uint, bool) ([]*models.Message, error) { return nil, nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		isLikedFn:       func(context.Context, uint, uint) (bool, error) { return false, nil },
		likeFn:          func(context.Context, uint, uint) error { return nil },
		unlikeFn:        func(context.Context, uint, uint) error { return nil },
		likedMessagesFn: func(context.Context, uint, int, int, uint) ([]*models.Message, error) { return nil, nil },
	}
}
