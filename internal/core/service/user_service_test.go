package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mercato/sales-api/internal/auth"
	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/ports"
)

func TestUserService_Create_Defaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Alice",
		Email:    "  Alice@X.COM ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if user.Email != "alice@x.com" {
		t.Fatalf("email = %q, want lowercased alice@x.com", user.Email)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("roles = %v, want default [user]", user.Roles)
	}
	if !user.IsActive {
		t.Fatalf("new accounts must be active")
	}
	if !auth.VerifyPassword("correct-horse", user.PasswordHash) {
		t.Fatalf("stored hash does not verify against the plaintext")
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Mallory",
		Email:    "m@x.com",
		Password: "correct-horse",
		Roles:    []string{"superuser"},
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Update_UnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user := seedUser(t, repo, "a@x.com", "correct-horse", []string{domain.RoleUser})

	_, err := svc.Update(context.Background(), user.ID, ports.UpdateUserRequest{
		Roles: []string{"root"},
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user := seedUser(t, repo, "a@x.com", "correct-horse", []string{domain.RoleUser})

	newPassword := "battery-staple"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserRequest{
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !auth.VerifyPassword(newPassword, updated.PasswordHash) {
		t.Fatalf("updated hash does not verify against the new password")
	}
	if auth.VerifyPassword("correct-horse", updated.PasswordHash) {
		t.Fatalf("old password still verifies after update")
	}
}
