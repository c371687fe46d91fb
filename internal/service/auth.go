package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/session"
	"github.com/tastebook/backend/internal/types"
)

// ErrDuplicateIdentity is returned when signup collides with an existing
// username or email.
var ErrDuplicateIdentity = errors.New("username or email already taken")

type AuthService struct {
	db         *gorm.DB
	sessions   session.Store
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(db *gorm.DB, sessions session.Store, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

// Signup hashes the password and creates the user. A unique-constraint
// violation on username or email maps to ErrDuplicateIdentity and leaves
// no row behind.
func (s *AuthService) Signup(ctx context.Context, firstName, lastName, username, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate looks the user up by username and verifies the password.
// A missing username and a wrong password are indistinguishable: both
// return a nil user without an error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return &user, nil
}

// IssueSession registers a new session for the user and returns a signed
// token carrying the session id.
func (s *AuthService) IssueSession(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.NewString()

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     sessionID,
		"exp":     time.Now().Add(s.sessionTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Create(ctx, sessionID, userID, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken verifies the token signature and checks that its session
// is still registered. A revoked or expired session fails validation.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	sessionID, ok := claims["jti"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	registered, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if registered != userID {
		return nil, session.ErrNotFound
	}

	return &types.TokenClaims{UserID: userID, SessionID: sessionID}, nil
}

// RevokeSession removes the session from the registry.
func (s *AuthService) RevokeSession(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}
