package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"posadmin/internal/config"
	"posadmin/internal/middleware"
	"posadmin/internal/model"
	"posadmin/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *token.Codec {
	return token.NewCodec(&config.Config{
		JWTAccessSecret:  "test_access_secret_32_chars_min!",
		JWTRefreshSecret: "test_refresh_secret_32_chars_ok!",
		AccessTTLMin:     15,
		RefreshTTLDays:   7,
	})
}

func signFor(t *testing.T, codec *token.Codec, role string, businessID *uuid.UUID) string {
	t.Helper()
	signed, err := codec.IssueAccessToken(&model.User{
		ID:         uuid.New(),
		BusinessID: businessID,
		Email:      "user@test",
		Role:       role,
	})
	require.NoError(t, err)
	return signed
}

func doGet(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	r.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAuthenticate_HeaderHandling(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := newTestCodec()
	r := gin.New()
	r.GET("/protected", middleware.Authenticate(codec), okHandler)

	valid := signFor(t, codec, model.RoleCashier, nil)

	cases := []struct {
		name   string
		bearer string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", valid, http.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doGet(r, "/protected", tc.bearer)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	// A refresh token must never grant API access.
	gin.SetMode(gin.TestMode)
	codec := newTestCodec()
	r := gin.New()
	r.GET("/protected", middleware.Authenticate(codec), okHandler)

	refresh, err := codec.IssueRefreshToken(uuid.New())
	require.NoError(t, err)

	w := doGet(r, "/protected", "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := newTestCodec()
	r := gin.New()
	r.GET("/open", middleware.OptionalAuthenticate(codec), func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": claims != nil})
	})

	w := doGet(r, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")

	w = doGet(r, "/open", "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code, "invalid token is treated as anonymous")
	assert.Contains(t, w.Body.String(), "false")

	w = doGet(r, "/open", "Bearer "+signFor(t, codec, model.RoleCashier, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}

// ── Role hierarchy ───────────────────────────────────────────────────────────

func TestRequireRoleAtLeast_Hierarchy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := newTestCodec()

	roles := []string{model.RoleCashier, model.RoleManager, model.RoleOwner, model.RoleSuperAdmin}
	for _, floor := range roles {
		r := gin.New()
		r.GET("/gated", middleware.Authenticate(codec), middleware.RequireRoleAtLeast(floor), okHandler)

		for _, have := range roles {
			w := doGet(r, "/gated", "Bearer "+signFor(t, codec, have, nil))
			if model.RoleLevel(have) >= model.RoleLevel(floor) {
				assert.Equal(t, http.StatusOK, w.Code, "%s should pass floor %s", have, floor)
			} else {
				assert.Equal(t, http.StatusForbidden, w.Code, "%s should fail floor %s", have, floor)
			}
		}

		// Unknown roles rank below every floor.
		w := doGet(r, "/gated", "Bearer "+signFor(t, codec, "janitor", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}

func TestRequireRole_ExactList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := newTestCodec()
	r := gin.New()
	r.GET("/admin", middleware.Authenticate(codec), middleware.RequireSuperAdmin(), okHandler)

	w := doGet(r, "/admin", "Bearer "+signFor(t, codec, model.RoleOwner, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doGet(r, "/admin", "Bearer "+signFor(t, codec, model.RoleSuperAdmin, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// ── Tenant isolation ─────────────────────────────────────────────────────────

func tenantRouter(codec *token.Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/businesses/:id", middleware.Authenticate(codec), middleware.RequireBusinessAccess("id"), okHandler)
	r.GET("/reports", middleware.Authenticate(codec), middleware.RequireBusinessAccess("id"), okHandler)
	return r
}

func TestRequireBusinessAccess(t *testing.T) {
	codec := newTestCodec()
	r := tenantRouter(codec)
	mine, other := uuid.New(), uuid.New()

	ownToken := "Bearer " + signFor(t, codec, model.RoleOwner, &mine)

	w := doGet(r, "/businesses/"+mine.String(), ownToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/businesses/"+other.String(), ownToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Falls back to the query parameter when no route param is present.
	w = doGet(r, "/reports?business_id="+mine.String(), ownToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/reports", ownToken)
	assert.Equal(t, http.StatusBadRequest, w.Code, "no target business id to check")
}

func TestRequireBusinessAccess_SuperAdminBypass(t *testing.T) {
	codec := newTestCodec()
	r := tenantRouter(codec)
	adminToken := "Bearer " + signFor(t, codec, model.RoleSuperAdmin, nil)

	w := doGet(r, "/businesses/"+uuid.New().String(), adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/reports", adminToken)
	assert.Equal(t, http.StatusOK, w.Code, "super_admin skips the tenant check entirely")
}

func TestRequireBusinessAccess_NoTenantClaim(t *testing.T) {
	codec := newTestCodec()
	r := tenantRouter(codec)

	// Non-super_admin with no business claim can never match a target.
	w := doGet(r, "/businesses/"+uuid.New().String(), "Bearer "+signFor(t, codec, model.RoleOwner, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
