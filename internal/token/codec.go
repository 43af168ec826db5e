// Package token implements the signed-token codec: issuing and verifying the
// short-lived access token and the longer-lived refresh token. The two token
// classes are signed with different secrets and both pin issuer and audience.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"posadmin/internal/config"
	"posadmin/internal/model"
)

const (
	Issuer   = "pos-admin"
	Audience = "pos-users"
)

// Verification failures are split into exactly two kinds so callers can
// decide whether a silent refresh is appropriate.
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the identity payload embedded in every access token and
// reconstructed on each authenticated request. Never stored server-side.
type Claims struct {
	UserID     string  `json:"user_id"`
	BusinessID *string `json:"business_id,omitempty"`
	Role       string  `json:"role"`
	Email      string  `json:"email"`
	jwt.RegisteredClaims
}

// refreshClaims carries only the token owner; everything else is looked up
// fresh at refresh time.
type refreshClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec issues and verifies both token classes. It is pure: secrets and
// lifetimes are fixed at construction and never mutated.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCodec(cfg *config.Config) *Codec {
	return &Codec{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     time.Duration(cfg.AccessTTLMin) * time.Minute,
		refreshTTL:    time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
	}
}

// AccessTTL reports the configured access-token lifetime (exposed for the
// expires_in response field).
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL reports the configured refresh-token lifetime, which is also the
// expiry of the persisted token row.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccessToken signs an HS256 access token carrying the user's full
// identity claims.
func (c *Codec) IssueAccessToken(u *model.User) (string, error) {
	now := time.Now().UTC()
	var businessID *string
	if u.BusinessID != nil {
		s := u.BusinessID.String()
		businessID = &s
	}
	claims := Claims{
		UserID:     u.ID.String(),
		BusinessID: businessID,
		Role:       u.Role,
		Email:      u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.accessSecret)
}

// IssueRefreshToken signs a refresh token carrying only the user id, with the
// refresh-specific secret and the longer lifetime.
func (c *Codec) IssueRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := refreshClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.refreshSecret)
}

// VerifyAccessToken validates signature, issuer, audience and expiry and
// returns the embedded claims.
func (c *Codec) VerifyAccessToken(raw string) (*Claims, error) {
	claims := &Claims{}
	if err := c.verify(raw, claims, c.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken validates a refresh token and returns the owning user id.
func (c *Codec) VerifyRefreshToken(raw string) (uuid.UUID, error) {
	claims := &refreshClaims{}
	if err := c.verify(raw, claims, c.refreshSecret); err != nil {
		return uuid.Nil, err
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return uid, nil
}

func (c *Codec) verify(raw string, claims jwt.Claims, secret []byte) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !tok.Valid {
		return ErrTokenInvalid
	}
	return nil
}

// ExtractBearerToken pulls the token out of an Authorization header value.
// Only the exact scheme "Bearer <token>" is accepted — exactly two
// space-separated parts with a case-sensitive scheme keyword. Anything else
// yields "no token" rather than an error.
func ExtractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
