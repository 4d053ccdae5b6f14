package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/usermenei/E-ses/internal/domain"
	"github.com/usermenei/E-ses/internal/repository"
	"github.com/usermenei/E-ses/pkg/auth"
)

type AuthSvc struct {
	users    *repository.UserRepo
	tokens   *auth.Manager
	tokenTTL time.Duration
}

func NewAuthSvc(r *repository.UserRepo, tokens *auth.Manager, tokenTTL time.Duration) *AuthSvc {
	return &AuthSvc{users: r, tokens: tokens, tokenTTL: tokenTTL}
}

func (s *AuthSvc) Register(ctx context.Context, name, email, tel, password string, role domain.Role) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser, domain.RoleAdmin:
	default:
		return nil, "", fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{Name: name, Email: email, TelephoneNumber: tel, Password: string(hash), Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.CreateAccessToken(u.ID, string(u.Role), u.Email, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: please provide an email and password", domain.ErrValidation)
	}
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthenticated
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", domain.ErrUnauthenticated
	}
	token, err := s.tokens.CreateAccessToken(u.ID, string(u.Role), u.Email, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Me returns the profile plus the loyalty tier for the confirmed entry count.
func (s *AuthSvc) Me(ctx context.Context, userID string) (*domain.User, domain.Rank, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, domain.Rank{}, err
	}
	return u, domain.RankForEntries(u.NumberOfEntries), nil
}
