package middleware

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"comply/media-api/pkg/security"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	claimsKey  = "claims"
	cookieName = "auth_token"
)

type TokenVerifier interface {
	Verify(token string) (*security.Claims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticate accepts a bearer token from the Authorization header or the
// auth_token cookie. On success the claims are stored under "claims" and the
// user ID under "userID".
func Authenticate(tokens TokenVerifier, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abort(c, http.StatusUnauthorized, "Authorization token missing")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Authorization token invalid")
			return
		}

		if revocations != nil && claims.ID != "" {
			revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				abort(c, http.StatusInternalServerError, "Internal server error")

				zap.L().Error("Failed to check token revocation", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
				return
			}

			if revoked {
				abort(c, http.StatusUnauthorized, "Authorization token invalid")
				return
			}
		}

		c.Set(claimsKey, claims)
		c.Set("userID", claims.UserID())
		c.Next()
	}
}

// RequireRole must run after Authenticate
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := security.Authorize(Claims(c), role)
		if err != nil {
			if errors.Is(err, errs.ErrUnauthenticated) {
				abort(c, http.StatusUnauthorized, "Authorization token missing")
				return
			}

			abort(c, http.StatusForbidden, "You don't have permission to do this")
			return
		}

		c.Next()
	}
}

// Claims returns the claims set by Authenticate or nil
func Claims(c *gin.Context) *security.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}

	claims, _ := v.(*security.Claims)
	return claims
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	if token, err := c.Cookie(cookieName); err == nil {
		return token
	}

	return ""
}
