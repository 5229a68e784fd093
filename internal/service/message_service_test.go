package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chirp/internal/models"
)

func TestMessageServiceCreateEmptyText(t *testing.T) {
	svc := NewMessageService(noopMessageRepo(), noopUserRepo())
	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateMessage(context.Background(), 1, text)
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeEmptyText {
			t.Fatalf("expected empty-text error for %q, got %#v", text, err)
		}
	}
}

func TestMessageServiceCreateTooLong(t *testing.T) {
	svc := NewMessageService(noopMessageRepo(), noopUserRepo())
	_, err := svc.CreateMessage(context.Background(), 1, strings.Repeat("a", 141))
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation error, got %#v", err)
	}
}

func TestMessageServiceCreateTrimsText(t *testing.T) {
	repo := noopMessageRepo()
	var stored *models.Message
	repo.createFn = func(_ context.Context, m *models.Message) error {
		m.ID = 10
		stored = m
		return nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	_, err := svc.CreateMessage(context.Background(), 1, "  hello world  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || stored.Text != "hello world" {
		t.Fatalf("expected trimmed text, got %#v", stored)
	}
}

func TestMessageServiceDeleteNotAuthor(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Message, error) {
		return &models.Message{ID: id, UserID: 1}, nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	err := svc.DeleteMessage(context.Background(), 2, 10)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotAuthor {
		t.Fatalf("expected not-author error, got %#v", err)
	}
}

func TestMessageServiceDeleteByAuthor(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Message, error) {
		return &models.Message{ID: id, UserID: 1}, nil
	}
	deleted := false
	repo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	if err := svc.DeleteMessage(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected repo delete to be called")
	}
}

func TestMessageServiceDeleteMissing(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Message, error) {
		return nil, models.NewNotFoundError("Message", id)
	}

	svc := NewMessageService(repo, noopUserRepo())
	err := svc.DeleteMessage(context.Background(), 1, 404)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestMessageServiceSelfLike(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Message, error) {
		return &models.Message{ID: id, UserID: 5}, nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	err := svc.Like(context.Background(), 5, 10)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeSelfLike {
		t.Fatalf("expected self-like error, got %#v", err)
	}
}

func TestMessageServiceDuplicateLike(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(_ context.Context, id uint, _ uint) (*models.Message, error) {
		return &models.Message{ID: id, UserID: 1}, nil
	}
	repo.likeFn = func(context.Context, uint, uint) error {
		return models.NewDuplicateEdgeError("Like")
	}

	svc := NewMessageService(repo, noopUserRepo())
	err := svc.Like(context.Background(), 2, 10)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeDuplicateEdge {
		t.Fatalf("expected duplicate edge error, got %#v", err)
	}
}

func TestMessageServiceUnlikeIdempotent(t *testing.T) {
	calls := 0
	repo := noopMessageRepo()
	repo.unlikeFn = func(context.Context, uint, uint) error {
		calls++
		return nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	for i := 0; i < 2; i++ {
		if err := svc.Unlike(context.Background(), 2, 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 repo calls, got %d", calls)
	}
}

func TestMessageServiceLikedMessagesUnknownUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewMessageService(noopMessageRepo(), userRepo)
	_, err := svc.LikedMessages(context.Background(), 99, 20, 0, 1)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}
