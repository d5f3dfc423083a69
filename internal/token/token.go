// Package token encodes and decodes the signed access/refresh token pair.
// Token kind is embedded in the claims so an access token can never be
// replayed as a refresh token and vice versa; callers must check Kind.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var (
	ErrExpired   = errors.New("token expired")
	ErrMalformed = errors.New("token malformed")
)

// Claims is the decoded claim set of both token kinds:
// {sub, role, type, exp}.
type Claims struct {
	Role string `json:"role"`
	Kind string `json:"type"`
	jwt.RegisteredClaims
}

// UserID returns the user id carried in the sub claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.RegisteredClaims.Subject)
}

// Codec issues and verifies HS256-signed tokens. The secret and TTLs are
// fixed at construction and never mutated.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

func (c *Codec) IssueAccess(userID uuid.UUID, role string) (string, error) {
	return c.issue(userID, role, KindAccess, c.accessTTL)
}

func (c *Codec) IssueRefresh(userID uuid.UUID, role string) (string, error) {
	return c.issue(userID, role, KindRefresh, c.refreshTTL)
}

func (c *Codec) issue(userID uuid.UUID, role, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry. Expiry failures surface as
// ErrExpired; every other structural or signature failure as ErrMalformed.
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	return claims, nil
}

// DecodeExpired verifies the signature but skips claim validation, so an
// already-expired token still yields its claims. Logout uses this to
// deny-list whatever lifetime remains.
func (c *Codec) DecodeExpired(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	claims := &Claims{}
	if _, err := parser.ParseWithClaims(raw, claims, c.keyFunc); err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	return c.secret, nil
}
