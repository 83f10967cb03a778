package middleware

import (
	"net/http"
	"strings"

	"github.com/edustack/academy-api/internal/constants"
	apperrors "github.com/edustack/academy-api/internal/errors"
	"github.com/edustack/academy-api/internal/model"
	"github.com/edustack/academy-api/internal/revocation"
	"github.com/edustack/academy-api/internal/service"
	"github.com/edustack/academy-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware is the single chokepoint every protected route goes
// through: bearer extraction, revocation check, signature/expiry check, then
// role enforcement where a route asks for it.
type AuthMiddleware struct {
	tokens   *service.TokenService
	registry revocation.Registry
}

func NewAuthMiddleware(tokens *service.TokenService, registry revocation.Registry) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		registry: registry,
	}
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, detail))
	c.Abort()
}

// bearerToken extracts the token from the Authorization header, aborting the
// request when the header is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		logger.GetLogger().Warn("Missing Authorization header",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		abortUnauthorized(c, "missing bearer token")
		return "", false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		logger.GetLogger().Warn("Invalid Authorization header format",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		abortUnauthorized(c, "malformed authorization header")
		return "", false
	}

	return tokenParts[1], true
}

// RequireAuth validates the bearer token and attaches the resolved subject
// id, role and the raw token string to the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		// Revocation is checked first: a logged-out token is rejected even
		// while its claims would still verify
		revoked, err := m.registry.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			logger.GetLogger().Error("Revocation registry unavailable",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(apperrors.ErrInternal.Message, nil))
			c.Abort()
			return
		}
		if revoked {
			logger.GetLogger().Warn("Revoked token presented",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			abortUnauthorized(c, apperrors.ErrTokenRevoked.Message)
			return
		}

		userID, role, err := m.tokens.Verify(tokenString)
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(constants.GinKeyUserID, userID)
		c.Set(constants.GinKeyRole, role)
		c.Set(constants.GinKeyToken, tokenString)

		c.Next()
	}
}

// RequireSignedToken validates signature and expiry without consulting the
// revocation registry. The logout route uses it: logging out a token that was
// already revoked still succeeds, so repeated logouts stay idempotent at the
// HTTP boundary.
func (m *AuthMiddleware) RequireSignedToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		userID, role, err := m.tokens.Verify(tokenString)
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(constants.GinKeyUserID, userID)
		c.Set(constants.GinKeyRole, role)
		c.Set(constants.GinKeyToken, tokenString)

		c.Next()
	}
}

// RequireRole enforces a role on top of RequireAuth. Identity is known here,
// so a mismatch is 403 rather than 401.
func (m *AuthMiddleware) RequireRole(required model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.GinKeyRole)
		if !exists {
			// Route misconfiguration: RequireRole without RequireAuth
			abortUnauthorized(c, "missing bearer token")
			return
		}

		role, ok := value.(model.Role)
		if !ok || role != required {
			logger.GetLogger().Warn("Role check failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("required", string(required)),
				zap.Any("actual", value),
			)
			c.JSON(http.StatusForbidden, constants.BuildErrorResponse(apperrors.ErrForbidden.Message, nil))
			c.Abort()
			return
		}

		c.Next()
	}
}

// SubjectFromContext reads the middleware-attached identity
func SubjectFromContext(c *gin.Context) (uint, model.Role, bool) {
	idValue, ok := c.Get(constants.GinKeyUserID)
	if !ok {
		return 0, "", false
	}
	roleValue, ok := c.Get(constants.GinKeyRole)
	if !ok {
		return 0, "", false
	}

	id, okID := idValue.(uint)
	role, okRole := roleValue.(model.Role)
	if !okID || !okRole {
		return 0, "", false
	}
	return id, role, true
}

// TokenFromContext reads the raw bearer token attached by RequireAuth
func TokenFromContext(c *gin.Context) (string, bool) {
	value, ok := c.Get(constants.GinKeyToken)
	if !ok {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
