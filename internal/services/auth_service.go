package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bookworm-labs/bookstore-backend/internal/models"
	"github.com/bookworm-labs/bookstore-backend/internal/session"
	"github.com/bookworm-labs/bookstore-backend/internal/token"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and inactive
	// account at login. One error for all three so nothing leaks.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized covers every token failure on authenticated calls:
	// missing, expired, malformed, revoked, wrong kind, superseded refresh
	// token, unknown or inactive subject.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means authenticated but not admin.
	ErrForbidden = errors.New("admin access required")
)

// AuthService orchestrates login, bearer validation, refresh rotation and
// logout over the credential store and the session cache.
type AuthService struct {
	db       *gorm.DB
	codec    *token.Codec
	sessions *session.Store
}

func NewAuthService(db *gorm.DB, codec *token.Codec, sessions *session.Store) *AuthService {
	return &AuthService{db: db, codec: codec, sessions: sessions}
}

// Login checks credentials and issues a fresh access/refresh pair. The new
// refresh token overwrites whatever was live for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !user.Active {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issuePair(ctx, &user)
	if err != nil {
		return nil, "", "", err
	}
	return &user, access, refresh, nil
}

// Authenticate validates a bearer access token and returns its subject.
// This is the capability behind every protected route.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	revoked, err := s.sessions.IsAccessTokenRevoked(ctx, raw)
	if err != nil {
		return nil, err
	}
	if revoked {
		slog.Info("rejected revoked access token")
		return nil, ErrUnauthorized
	}

	claims, err := s.codec.Decode(raw)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims.Kind != token.KindAccess {
		return nil, ErrUnauthorized
	}

	return s.activeUser(ctx, claims)
}

// AuthenticateAdmin validates the token and additionally requires the admin
// role.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, raw string) (*models.User, error) {
	user, err := s.Authenticate(ctx, raw)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return user, nil
}

// Refresh exchanges a refresh token for a new access/refresh pair. The
// presented token must byte-for-byte match the cached live token; a
// superseded token never matches again, which is the anti-replay guarantee.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*models.User, string, string, error) {
	claims, err := s.codec.Decode(raw)
	if err != nil {
		return nil, "", "", ErrUnauthorized
	}
	if claims.Kind != token.KindRefresh {
		return nil, "", "", ErrUnauthorized
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, "", "", ErrUnauthorized
	}

	live, err := s.sessions.RefreshToken(ctx, userID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, "", "", ErrUnauthorized
		}
		return nil, "", "", err
	}
	if live != raw {
		slog.Info("rejected superseded refresh token", "user_id", userID.String())
		return nil, "", "", ErrUnauthorized
	}

	user, err := s.activeUser(ctx, claims)
	if err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Logout drops the subject's live refresh session and deny-lists the access
// token for its remaining lifetime, so neither half of the pair survives. A
// token that fails to decode means there is nothing to revoke; logout still
// succeeds.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, err := s.codec.DecodeExpired(raw)
	if err != nil {
		return nil
	}

	if userID, uidErr := claims.UserID(); uidErr == nil {
		if err := s.sessions.DeleteRefreshToken(ctx, userID); err != nil {
			return err
		}
	}

	if claims.ExpiresAt == nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return s.sessions.RevokeAccessToken(ctx, raw, remaining)
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (string, string, error) {
	access, err := s.codec.IssueAccess(user.ID, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.codec.IssueRefresh(user.ID, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.sessions.SaveRefreshToken(ctx, user.ID, refresh, s.codec.RefreshTTL()); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) activeUser(ctx context.Context, claims *token.Claims) (*models.User, error) {
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrUnauthorized
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.Active {
		return nil, ErrUnauthorized
	}
	return &user, nil
}
