package users

import (
	"context"
	"strings"
)

// Service contains business logic for users.
type Service struct {
	Repo        Repo
	AdminEmails []string
}

// SyncFromLogin upserts the user following a successful identity-provider
// login. Emails listed in ADMIN_EMAILS are granted the admin role.
func (s *Service) SyncFromLogin(ctx context.Context, id, email, fullName string) (User, error) {
	role := RoleEmployee
	if s.isAdminEmail(email) {
		role = RoleAdmin
	}
	user := User{
		ID:       id,
		Email:    email,
		FullName: fullName,
		Role:     role,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

// RoleByID resolves the stored role for a user. Unknown users default to the
// employee role so that a stale token can never escalate privileges.
func (s *Service) RoleByID(ctx context.Context, userID string) (string, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return RoleEmployee, err
	}
	if !ValidRole(user.Role) {
		return RoleEmployee, nil
	}
	return user.Role, nil
}

// List returns all known users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

func (s *Service) isAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, candidate := range s.AdminEmails {
		if strings.ToLower(strings.TrimSpace(candidate)) == email {
			return true
		}
	}
	return false
}
