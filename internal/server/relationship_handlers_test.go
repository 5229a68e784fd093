package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFollowUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "bob"}, nil)
	relRepo := new(MockRelationshipRepository)
	relRepo.On("Follow", mock.Anything, uint(1), uint(2)).Return(nil)

	s, app := newTestServer(t, userRepo, relRepo, new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/users/2/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	relRepo.AssertExpectations(t)
}

func TestFollowUser_Self(t *testing.T) {
	relRepo := new(MockRelationshipRepository)
	s, app := newTestServer(t, new(MockUserRepository), relRepo, new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/users/1/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSelfFollow, decodeError(t, resp).Code)
	relRepo.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowUser_Duplicate(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "bob"}, nil)
	relRepo := new(MockRelationshipRepository)
	relRepo.On("Follow", mock.Anything, uint(1), uint(2)).
		Return(models.NewDuplicateEdgeError("Follow"))

	s, app := newTestServer(t, userRepo, relRepo, new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/users/2/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeDuplicateEdge, decodeError(t, resp).Code)
}

func TestFollowUser_UnknownTarget(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("User", uint(99)))

	s, app := newTestServer(t, userRepo, new(MockRelationshipRepository), new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/users/99/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnfollowUser_Idempotent(t *testing.T) {
	relRepo := new(MockRelationshipRepository)
	relRepo.On("Unfollow", mock.Anything, uint(1), uint(2)).Return(nil)

	s, app := newTestServer(t, new(MockUserRepository), relRepo, new(MockMessageRepository))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/users/2/follow", nil)
		req.Header.Set("Authorization", authHeader(t, s, 1))
		resp := doRequest(t, app, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestBlockUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "bob"}, nil)
	relRepo := new(MockRelationshipRepository)
	relRepo.On("Block", mock.Anything, uint(1), uint(2)).Return(nil)

	s, app := newTestServer(t, userRepo, relRepo, new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/users/2/block", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestBlockUser_Self(t *testing.T) {
	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/users/1/block", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSelfBlock, decodeError(t, resp).Code)
}

func TestGetRelationship(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "bob"}, nil)
	relRepo := new(MockRelationshipRepository)
	relRepo.On("IsFollowing", mock.Anything, uint(1), uint(2)).Return(true, nil)
	relRepo.On("IsFollowing", mock.Anything, uint(2), uint(1)).Return(false, nil)
	relRepo.On("IsBlocking", mock.Anything, uint(1), uint(2)).Return(false, nil)

	s, app := newTestServer(t, userRepo, relRepo, new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/users/2/relationship", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var flags service.RelationshipFlags
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&flags))
	assert.True(t, flags.Following)
	assert.False(t, flags.FollowedBy)
	assert.False(t, flags.Blocking)
}

func TestGetFollowers(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "bob"}, nil)
	relRepo := new(MockRelationshipRepository)
	relRepo.On("Followers", mock.Anything, uint(2), 20, 0).
		Return([]models.User{{ID: 1, Username: "alice"}}, nil)

	s, app := newTestServer(t, userRepo, relRepo, new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/users/2/followers", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestGetMyBlockedUsers(t *testing.T) {
	relRepo := new(MockRelationshipRepository)
	relRepo.On("BlockedUsers", mock.Anything, uint(1), 20, 0).
		Return([]models.User{{ID: 3, Username: "spammer"}}, nil)

	s, app := newTestServer(t, new(MockUserRepository), relRepo, new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/blocked", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, "spammer", users[0].Username)
}
