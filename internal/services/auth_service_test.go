package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookworm-labs/bookstore-backend/internal/models"
	"github.com/bookworm-labs/bookstore-backend/internal/session"
	"github.com/bookworm-labs/bookstore-backend/internal/token"
)

type authEnv struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	codec *token.Codec
	auth  *AuthService
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	codec := token.NewCodec("test-secret", 15*time.Minute, 168*time.Hour)
	sessions := session.NewStore(client, time.Second)

	return &authEnv{
		db:    db,
		mr:    mr,
		codec: codec,
		auth:  NewAuthService(db, codec, sessions),
	}
}

func (e *authEnv) createUser(t *testing.T, email, password, role string, active bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		FullName:     "Test User",
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return &user
}

func TestLoginIssuesValidPair(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	seeded := env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	user, access, refresh, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	authenticated, err := env.auth.Authenticate(ctx, access)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, authenticated.ID)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)
	env.createUser(t, "inactive@x.test", "pw12345678", models.RoleUser, false)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@x.test", "pw12345678"},
		{"wrong password", "a@x.test", "wrong-password"},
		{"inactive user", "inactive@x.test", "pw12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := env.auth.Login(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	_, _, refresh, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)

	_, err = env.auth.Authenticate(ctx, refresh)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	expiredCodec := token.NewCodec("test-secret", -1*time.Minute, 168*time.Hour)
	expired, err := expiredCodec.IssueAccess(user.ID, user.Role)
	require.NoError(t, err)

	_, err = env.auth.Authenticate(ctx, expired)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	_, access, _, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)

	require.NoError(t, env.db.Model(user).Update("active", false).Error)

	_, err = env.auth.Authenticate(ctx, access)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateAdmin(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.createUser(t, "admin@x.test", "pw12345678", models.RoleAdmin, true)
	env.createUser(t, "user@x.test", "pw12345678", models.RoleUser, true)

	_, adminAccess, _, err := env.auth.Login(ctx, "admin@x.test", "pw12345678")
	require.NoError(t, err)
	_, userAccess, _, err := env.auth.Login(ctx, "user@x.test", "pw12345678")
	require.NoError(t, err)

	admin, err := env.auth.AuthenticateAdmin(ctx, adminAccess)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, admin.Role)

	_, err = env.auth.AuthenticateAdmin(ctx, userAccess)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	seeded := env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	_, firstAccess, firstRefresh, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)

	// iat has second granularity; without this the rotated pair could
	// be byte-identical to the first one.
	time.Sleep(1100 * time.Millisecond)

	user, newAccess, newRefresh, err := env.auth.Refresh(ctx, firstRefresh)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.NotEqual(t, firstRefresh, newRefresh)

	// Both access tokens stay valid until their own expiry; the
	// access and refresh lifecycles are independent.
	_, err = env.auth.Authenticate(ctx, firstAccess)
	require.NoError(t, err)
	_, err = env.auth.Authenticate(ctx, newAccess)
	require.NoError(t, err)

	// The superseded refresh token no longer matches the cache.
	_, _, _, err = env.auth.Refresh(ctx, firstRefresh)
	require.ErrorIs(t, err, ErrUnauthorized)

	// The new one works exactly once more.
	_, _, _, err = env.auth.Refresh(ctx, newRefresh)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	_, access, _, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)

	_, _, _, err = env.auth.Refresh(ctx, access)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshRejectsInactiveUser(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	_, _, refresh, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)

	require.NoError(t, env.db.Model(user).Update("active", false).Error)

	_, _, _, err = env.auth.Refresh(ctx, refresh)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshWithoutSession(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	// A well-formed refresh token with no cache entry behind it.
	refresh, err := env.codec.IssueRefresh(user.ID, user.Role)
	require.NoError(t, err)

	_, _, _, err = env.auth.Refresh(ctx, refresh)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	_, access, _, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)

	_, err = env.auth.Authenticate(ctx, access)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, access))

	_, err = env.auth.Authenticate(ctx, access)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutEndsRefreshSession(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	_, access, refresh, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, access))

	// The refresh token that was live at logout time is gone with it.
	_, _, _, err = env.auth.Refresh(ctx, refresh)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutToleratesInvalidTokens(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.Logout(ctx, "not-a-token"))
	require.NoError(t, env.auth.Logout(ctx, ""))

	expiredCodec := token.NewCodec("test-secret", -1*time.Minute, 168*time.Hour)
	expired, err := expiredCodec.IssueAccess(env.createUser(t, "a@x.test", "pw", models.RoleUser, true).ID, models.RoleUser)
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(ctx, expired))
}

func TestCacheOutageIsNotUnauthorized(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()
	env.createUser(t, "a@x.test", "pw12345678", models.RoleUser, true)

	_, access, refresh, err := env.auth.Login(ctx, "a@x.test", "pw12345678")
	require.NoError(t, err)

	env.mr.Close()

	_, err = env.auth.Authenticate(ctx, access)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, session.ErrCacheUnavailable)

	_, _, _, err = env.auth.Refresh(ctx, refresh)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnauthorized)
}
