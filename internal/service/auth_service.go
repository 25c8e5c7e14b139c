package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

type TokenIssuer interface {
	Issue(principal model.Principal) (string, time.Time, error)
}

type AuthService struct {
	users     *repository.UserRepository
	companies *repository.CompanyRepository
	tokens    TokenIssuer
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        model.User
}

type Profile struct {
	User    model.User    `json:"user"`
	Company model.Company `json:"company"`
}

func NewAuthService(users *repository.UserRepository, companies *repository.CompanyRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, companies: companies, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(model.Principal{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: *user}, nil
}

func (s *AuthService) Me(ctx context.Context, principal model.Principal) (*Profile, error) {
	user, err := s.users.Get(ctx, principal.CompanyID, principal.UserID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	company, err := s.companies.Get(ctx, principal.CompanyID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &Profile{User: *user, Company: *company}, nil
}
