package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mtran/inventory-web/internal/auth"
	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RefreshErrorMarker annotates a session whose transparent refresh did
// not succeed. The route guard treats such a session as no session.
const RefreshErrorMarker = "RefreshAccessTokenError"

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SessionUser is the user snapshot carried in the session wire shape.
// Fields are copies taken at token issuance and are not re-read from
// the database until the access token expires.
type SessionUser struct {
	ID       uint              `json:"id"`
	Username string            `json:"username"`
	Email    *string           `json:"email,omitempty"`
	Name     *string           `json:"name,omitempty"`
	Role     domain.Role       `json:"role"`
	Status   domain.UserStatus `json:"status,omitempty"`
}

// Session is the wire shape exchanged with the browser
type Session struct {
	User         SessionUser `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	TokenExpires int64       `json:"tokenExpires"`
	Error        string      `json:"error,omitempty"`
}

// Valid reports whether the session can authorize requests
func (s *Session) Valid() bool {
	return s != nil && s.Error == ""
}

// Login verifies credentials and opens a session. The freshly minted
// refresh token overwrites whatever the user record held before, so a
// login invalidates any earlier session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Status != domain.UserStatusActive {
		return nil, domain.ErrAccountNotActive
	}

	accessToken, refreshToken, err := s.mintTokens(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.RefreshToken = &refreshToken
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.newSession(user, accessToken, refreshToken), nil
}

// Refresh rotates the token pair. The presented refresh token must be
// the one most recently stored on the user record; anything older has
// been invalidated by a later login or refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	payload, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrRefreshInvalid
	}

	user, err := s.userRepo.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRefreshInvalid
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, domain.ErrRefreshInvalid
	}

	newAccess, newRefresh, err := s.mintTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &newRefresh); err != nil {
		return nil, err
	}

	return s.newSession(user, newAccess, newRefresh), nil
}

// SessionFromToken reconstructs the session for a request. A valid
// access token materializes the session from its claims without a
// database round trip. An expired access token triggers a transparent
// refresh when a refresh token is presented; a failed refresh returns
// a session annotated with the error marker so the guard can force
// re-authentication instead of silently serving the stale session.
// The second return value reports whether the token pair was rotated.
func (s *AuthService) SessionFromToken(ctx context.Context, accessToken, refreshToken string) (*Session, bool) {
	if accessToken == "" {
		return nil, false
	}

	payload, err := s.tokens.VerifyAccessToken(accessToken)
	if err == nil {
		return &Session{
			User: SessionUser{
				ID:       payload.UserID,
				Username: payload.Username,
				Role:     payload.Role,
			},
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenExpires: s.tokens.TokenExpiration(accessToken),
		}, false
	}

	if !errors.Is(err, auth.ErrTokenExpired) || refreshToken == "" {
		return nil, false
	}

	session, refreshErr := s.Refresh(ctx, refreshToken)
	if refreshErr != nil {
		if !errors.Is(refreshErr, domain.ErrRefreshInvalid) {
			log.Printf("ERROR [service.Auth] refresh failed: %v", refreshErr)
		}
		return &Session{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenExpires: s.tokens.TokenExpiration(accessToken),
			Error:        RefreshErrorMarker,
		}, false
	}

	return session, true
}

// Logout revokes the stored refresh token so the pair presented by the
// client can no longer be refreshed
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil)
}

// GetUserByID fetches a user record
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all user accounts (admin view)
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *AuthService) mintTokens(user *domain.User) (string, string, error) {
	payload := auth.TokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	accessToken, err := s.tokens.IssueAccessToken(payload)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(payload)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *AuthService) newSession(user *domain.User, accessToken, refreshToken string) *Session {
	return &Session{
		User: SessionUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Name:     user.Name,
			Role:     user.Role,
			Status:   user.Status,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenExpires: s.tokens.TokenExpiration(accessToken),
	}
}
