package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateMessage(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Message).ID = 7
		}).Return(nil)
	msgRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Message{ID: 7, Text: "hello world", UserID: 1}, nil)

	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := postJSON(t, "/api/messages", CreateMessageRequest{Text: "hello world"})
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var message models.Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&message))
	assert.Equal(t, uint(7), message.ID)
	assert.Equal(t, "hello world", message.Text)
	msgRepo.AssertExpectations(t)
}

func TestCreateMessage_EmptyText(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	for _, text := range []string{"", "   ", "\n\t"} {
		req := postJSON(t, "/api/messages", CreateMessageRequest{Text: text})
		req.Header.Set("Authorization", authHeader(t, s, 1))
		resp := doRequest(t, app, req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, models.CodeEmptyText, decodeError(t, resp).Code)
	}
	msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMessage_TooLong(t *testing.T) {
	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), new(MockMessageRepository))

	req := postJSON(t, "/api/messages", CreateMessageRequest{Text: strings.Repeat("a", 141)})
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeValidation, decodeError(t, resp).Code)
}

func TestCreateMessage_RequiresAuth(t *testing.T) {
	_, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), new(MockMessageRepository))

	resp := doRequest(t, app, postJSON(t, "/api/messages", CreateMessageRequest{Text: "hi"}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMessages_Public(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("List", mock.Anything, 20, 0, uint(0), false).
		Return([]*models.Message{{ID: 1, Text: "first", UserID: 2}}, nil)

	_, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var messages []models.Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&messages))
	require.Len(t, messages, 1)
}

func TestGetMessages_FollowingFeedRequiresAuth(t *testing.T) {
	_, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), new(MockMessageRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/messages?following=1", nil)
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMessages_FollowingFeed(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("List", mock.Anything, 20, 0, uint(1), true).
		Return([]*models.Message{}, nil)

	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/messages?following=1", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	msgRepo.AssertExpectations(t)
}

func TestGetMessage_NotFound(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("GetByID", mock.Anything, uint(42), uint(0)).
		Return(nil, models.NewNotFoundError("Message", uint(42)))

	_, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/42", nil)
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeNotFound, decodeError(t, resp).Code)
}

func TestDeleteMessage_Author(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Message{ID: 7, Text: "mine", UserID: 1}, nil)
	msgRepo.On("Delete", mock.Anything, uint(7)).Return(nil)

	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := httptest.NewRequest(http.MethodDelete, "/api/messages/7", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	msgRepo.AssertExpectations(t)
}

func TestDeleteMessage_NotAuthor(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Message{ID: 7, Text: "someone else's", UserID: 2}, nil)

	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := httptest.NewRequest(http.MethodDelete, "/api/messages/7", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeNotAuthor, decodeError(t, resp).Code)
	msgRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLikeMessage(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Message{ID: 7, Text: "nice", UserID: 2}, nil)
	msgRepo.On("Like", mock.Anything, uint(1), uint(7)).Return(nil)

	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/messages/7/like", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	msgRepo.AssertExpectations(t)
}

func TestLikeMessage_OwnMessage(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Message{ID: 7, Text: "mine", UserID: 1}, nil)

	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/messages/7/like", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSelfLike, decodeError(t, resp).Code)
	msgRepo.AssertNotCalled(t, "Like", mock.Anything, mock.Anything, mock.Anything)
}

func TestLikeMessage_Duplicate(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(&models.Message{ID: 7, Text: "nice", UserID: 2}, nil)
	msgRepo.On("Like", mock.Anything, uint(1), uint(7)).
		Return(models.NewDuplicateEdgeError("Like"))

	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/messages/7/like", nil)
	req.Header.Set("Authorization", authHeader(t, s, 1))
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeDuplicateEdge, decodeError(t, resp).Code)
}

func TestUnlikeMessage_Idempotent(t *testing.T) {
	msgRepo := new(MockMessageRepository)
	msgRepo.On("Unlike", mock.Anything, uint(1), uint(7)).Return(nil)

	s, app := newTestServer(t, new(MockUserRepository), new(MockRelationshipRepository), msgRepo)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/messages/7/like", nil)
		req.Header.Set("Authorization", authHeader(t, s, 1))
		resp := doRequest(t, app, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
