package token_test

import (
	"testing"
	"time"

	"posadmin/internal/config"
	"posadmin/internal/model"
	"posadmin/internal/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCfg() *config.Config {
	return &config.Config{
		JWTAccessSecret:  "test_access_secret_32_chars_min!",
		JWTRefreshSecret: "test_refresh_secret_32_chars_ok!",
		AccessTTLMin:     15,
		RefreshTTLDays:   7,
	}
}

func testUser() *model.User {
	bid := uuid.New()
	return &model.User{
		ID:         uuid.New(),
		BusinessID: &bid,
		Email:      "owner@example.com",
		Role:       model.RoleOwner,
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	codec := token.NewCodec(newTestCfg())
	u := testUser()

	signed, err := codec.IssueAccessToken(u)
	require.NoError(t, err)

	claims, err := codec.VerifyAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, model.RoleOwner, claims.Role)
	require.NotNil(t, claims.BusinessID)
	assert.Equal(t, u.BusinessID.String(), *claims.BusinessID)
	assert.Equal(t, token.Issuer, claims.Issuer)
}

func TestAccessToken_NoBusiness(t *testing.T) {
	codec := token.NewCodec(newTestCfg())
	u := testUser()
	u.BusinessID = nil
	u.Role = model.RoleSuperAdmin

	signed, err := codec.IssueAccessToken(u)
	require.NoError(t, err)

	claims, err := codec.VerifyAccessToken(signed)
	require.NoError(t, err)
	assert.Nil(t, claims.BusinessID)
}

func TestAccessToken_Expired(t *testing.T) {
	cfg := newTestCfg()
	cfg.AccessTTLMin = 0 // expires immediately
	codec := token.NewCodec(cfg)

	signed, err := codec.IssueAccessToken(testUser())
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // jwt exp has second precision
	_, err = codec.VerifyAccessToken(signed)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	codec := token.NewCodec(newTestCfg())
	signed, err := codec.IssueAccessToken(testUser())
	require.NoError(t, err)

	otherCfg := newTestCfg()
	otherCfg.JWTAccessSecret = "a_completely_different_secret_!!"
	other := token.NewCodec(otherCfg)

	_, err = other.VerifyAccessToken(signed)
	assert.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestRefreshToken_NotValidAsAccess(t *testing.T) {
	// The two token classes use different secrets, so a refresh token must
	// never pass access-token verification.
	codec := token.NewCodec(newTestCfg())
	refresh, err := codec.IssueRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = codec.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	codec := token.NewCodec(newTestCfg())
	uid := uuid.New()

	signed, err := codec.IssueRefreshToken(uid)
	require.NoError(t, err)

	got, err := codec.VerifyRefreshToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uid, got)
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"empty", "", "", false},
		{"no scheme", "abc.def.ghi", "", false},
		{"wrong scheme", "Token abc123", "", false},
		{"lowercase scheme", "bearer abc123", "", false},
		{"extra parts", "Bearer abc def", "", false},
		{"scheme only", "Bearer", "", false},
		{"empty token", "Bearer ", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := token.ExtractBearerToken(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
