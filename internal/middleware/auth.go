package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"posadmin/internal/apierror"
	"posadmin/internal/model"
	"posadmin/internal/token"

	"github.com/gin-gonic/gin"
)

const ClaimsKey = "claims"

// Authenticate validates the Bearer access token on every protected route and
// stores the decoded claims in the request context. A missing header and an
// unparseable one fail the same way; expiry gets its own message so clients
// know a silent refresh is worth attempting.
func Authenticate(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := token.ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Fail(apierror.ErrAuthenticationRequired.Message))
			return
		}
		claims, err := codec.VerifyAccessToken(raw)
		if err != nil {
			msg := apierror.ErrAuthenticationFailed.Message
			if err == token.ErrTokenExpired {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Fail(msg))
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuthenticate decodes claims when a valid token is present and
// otherwise lets the request through anonymously. Invalid tokens are treated
// as absent, never rejected.
func OptionalAuthenticate(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := token.ExtractBearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := codec.VerifyAccessToken(raw); err == nil {
				c.Set(ClaimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireRole rejects requests whose role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.Fail(apierror.ErrInsufficientPermissions.Message))
			return
		}
		c.Next()
	}
}

// RequireRoleAtLeast admits any role at or above the given one in the
// hierarchy cashier < manager < owner < super_admin. Unknown roles rank
// below everything and are always rejected.
func RequireRoleAtLeast(minimum string) gin.HandlerFunc {
	floor := model.RoleLevel(minimum)
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || model.RoleLevel(claims.Role) < floor || model.RoleLevel(claims.Role) == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.Fail(apierror.ErrInsufficientPermissions.Message))
			return
		}
		c.Next()
	}
}

func RequireSuperAdmin() gin.HandlerFunc     { return RequireRole(model.RoleSuperAdmin) }
func RequireOwnerOrAbove() gin.HandlerFunc   { return RequireRoleAtLeast(model.RoleOwner) }
func RequireManagerOrAbove() gin.HandlerFunc { return RequireRoleAtLeast(model.RoleManager) }

// RequireAnyRole admits any authenticated user with a known role.
func RequireAnyRole() gin.HandlerFunc { return RequireRoleAtLeast(model.RoleCashier) }

// RequireBusinessAccess confines the request to the caller's own tenant. The
// target business id is read from the named route parameter, falling back to
// the business_id query value and finally a business_id body field. super_admin
// bypasses the tenant check entirely; everyone else must match exactly.
func RequireBusinessAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Fail(apierror.ErrAuthenticationRequired.Message))
			return
		}
		if claims.Role == model.RoleSuperAdmin {
			c.Next()
			return
		}

		target := c.Param(param)
		if target == "" {
			target = c.Query("business_id")
		}
		if target == "" {
			target = businessIDFromBody(c)
		}
		if target == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.Fail(apierror.ErrBusinessIDRequired.Message))
			return
		}
		if claims.BusinessID == nil || *claims.BusinessID != target {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.Fail(apierror.ErrAccessDenied.Message))
			return
		}
		c.Next()
	}
}

// businessIDFromBody peeks at a JSON body for a business_id field, restoring
// the body so the handler can still bind it.
func businessIDFromBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	var probe struct {
		BusinessID string `json:"business_id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return ""
	}
	return probe.BusinessID
}

// GetClaims retrieves typed claims from the Gin context, or nil when the
// request is unauthenticated.
func GetClaims(c *gin.Context) *token.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}
