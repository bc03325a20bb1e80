package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/fintrack-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit
const maxPasswordBytes = 72

// RegisterInput represents the input for registering a user
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Session is a user together with a freshly issued token
type Session struct {
	User  *domain.User
	Token string
}

// AuthService handles registration, login and token authentication
type AuthService struct {
	UserRepo domain.UserRepository
	Tokens   *TokenService

	// HashCost is the bcrypt cost used for new password hashes
	HashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService instance
func NewAuthService(userRepo domain.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Tokens:   tokens,
		HashCost: bcrypt.DefaultCost,
	}
}

// Register creates a user and returns it with a token.
// Logic:
//  1. Normalize email (trim + lower-case) and name
//  2. Validate email, password policy and name
//  3. Hash the password; the plaintext is never stored
//  4. Save using UserRepo.Create (duplicate email -> ErrEmailTaken)
//  5. Issue a token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	email := domain.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(input.Password); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: token}, nil
}

// Login checks the credentials and returns the user with a new token.
// An unknown email and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("credentials", "email and password are required")
	}

	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Spend the same hashing time as a real comparison
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: token}, nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.UserRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password and stores a hash of the new one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrInvalidCredentials
	}

	if err := s.validatePassword(next); err != nil {
		return err
	}

	hash, err := s.hashPassword(next)
	if err != nil {
		return err
	}

	return s.UserRepo.UpdatePassword(ctx, userID, hash)
}

// Authenticate verifies a bearer token and returns the user id it carries
func (s *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	return s.Tokens.Verify(token)
}

func (s *AuthService) validatePassword(password string) error {
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}
	if len(password) > maxPasswordBytes {
		return domain.NewValidationError("password", "password must be at most 72 bytes")
	}
	return nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.HashCost)
	})
	return s.dummyHash
}
