package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mtran/inventory-web/internal/domain"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token is expired")
)

// TokenPayload is the claim set shared by access and refresh tokens
type TokenPayload struct {
	UserID   uint
	Username string
	Role     domain.Role
}

// Manager issues and verifies the two token classes. Access and refresh
// tokens are signed with distinct secrets so one can never stand in for
// the other.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived access token
func (m *Manager) IssueAccessToken(payload TokenPayload) (string, error) {
	return m.issue(payload, m.accessSecret, m.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token
func (m *Manager) IssueRefreshToken(payload TokenPayload) (string, error) {
	return m.issue(payload, m.refreshSecret, m.refreshTTL)
}

func (m *Manager) issue(payload TokenPayload, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", payload.UserID),
		"username": payload.Username,
		"role":     string(payload.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken validates signature and expiry of an access token
func (m *Manager) VerifyAccessToken(token string) (*TokenPayload, error) {
	return m.verify(token, m.accessSecret)
}

// VerifyRefreshToken validates signature and expiry of a refresh token
func (m *Manager) VerifyRefreshToken(token string) (*TokenPayload, error) {
	return m.verify(token, m.refreshSecret)
}

func (m *Manager) verify(tokenString string, secret []byte) (*TokenPayload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return payloadFromClaims(claims)
}

func payloadFromClaims(claims jwt.MapClaims) (*TokenPayload, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrTokenInvalid
	}

	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil {
		return nil, ErrTokenInvalid
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &TokenPayload{
		UserID:   userID,
		Username: username,
		Role:     domain.Role(role),
	}, nil
}

// TokenExpiration decodes a token without verifying its signature and
// returns the expiry as epoch milliseconds, or 0 when the token carries
// no usable expiry. Used only for client-side expiry bookkeeping.
func (m *Manager) TokenExpiration(tokenString string) int64 {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return exp.UnixMilli()
}
