package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return NewCodec("test-secret", 15*time.Minute, 168*time.Hour)
}

func TestIssueAndDecodeAccess(t *testing.T) {
	codec := newTestCodec()
	userID := uuid.New()

	raw, err := codec.IssueAccess(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, KindAccess, claims.Kind)
	require.Equal(t, "admin", claims.Role)

	decoded, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, userID, decoded)

	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssueAndDecodeRefresh(t *testing.T) {
	codec := newTestCodec()

	raw, err := codec.IssueRefresh(uuid.New(), "user")
	require.NoError(t, err)

	claims, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, KindRefresh, claims.Kind)
	require.WithinDuration(t, time.Now().Add(168*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAccessAndRefreshTokensDiffer(t *testing.T) {
	codec := newTestCodec()
	userID := uuid.New()

	access, err := codec.IssueAccess(userID, "user")
	require.NoError(t, err)
	refresh, err := codec.IssueRefresh(userID, "user")
	require.NoError(t, err)

	require.NotEqual(t, access, refresh)
}

func TestDecodeExpiredToken(t *testing.T) {
	codec := NewCodec("test-secret", -1*time.Minute, 168*time.Hour)

	raw, err := codec.IssueAccess(uuid.New(), "user")
	require.NoError(t, err)

	_, err = codec.Decode(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestDecodeMalformed(t *testing.T) {
	codec := newTestCodec()
	userID := uuid.New()

	valid, err := codec.IssueAccess(userID, "user")
	require.NoError(t, err)

	otherSecret := NewCodec("other-secret", 15*time.Minute, 168*time.Hour)
	wrongKey, err := otherSecret.IssueAccess(userID, "user")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"truncated", valid[:len(valid)/2]},
		{"wrong secret", wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.raw)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeExpiredSkipsExpiry(t *testing.T) {
	codec := NewCodec("test-secret", -1*time.Minute, 168*time.Hour)
	userID := uuid.New()

	raw, err := codec.IssueAccess(userID, "user")
	require.NoError(t, err)

	claims, err := codec.DecodeExpired(raw)
	require.NoError(t, err)
	require.Equal(t, KindAccess, claims.Kind)

	decoded, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, userID, decoded)
}

func TestDecodeExpiredStillChecksSignature(t *testing.T) {
	codec := newTestCodec()
	other := NewCodec("other-secret", 15*time.Minute, 168*time.Hour)

	raw, err := other.IssueAccess(uuid.New(), "user")
	require.NoError(t, err)

	_, err = codec.DecodeExpired(raw)
	require.ErrorIs(t, err, ErrMalformed)
}
