package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/Hemali15f/BookNest/errors"
	"github.com/Hemali15f/BookNest/models"
	"github.com/Hemali15f/BookNest/repository"
)

// ITokenIssuer issues session tokens for authenticated identities.
type ITokenIssuer interface {
	Generate(userID, email, role string) (string, error)
}

// AuthResult is returned by both registration and login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	userRepo repository.UserRepository
	tokens   ITokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokens ITokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates a new user account and issues its first session token.
// Email uniqueness is enforced by the storage layer, not pre-checked, so two
// concurrent registrations for the same email cannot both succeed.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if email == "" || password == "" || name == "" {
		return nil, apperrors.Validation("email, password and name are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Storage("failed to hash password", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Role:     "user",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("email already exists")
		}
		return nil, apperrors.Storage("failed to create account", err)
	}

	token, err := s.tokens.Generate(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Storage("failed to generate token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password return the same generic error so accounts cannot be
// enumerated. bcrypt's comparison is constant-time.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthenticated("invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Storage("failed to generate token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}
