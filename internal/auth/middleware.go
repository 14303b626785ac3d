package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
)

// ContextUserKey is the gin context key holding the resolved local user.
const ContextUserKey = "authUser"

// UserResolver looks up or lazily provisions the local user record for a
// verified subject id.
type UserResolver interface {
	GetOrCreate(ctx context.Context, u core.User) (core.User, error)
}

// Middleware verifies the bearer credential, provisions the local user on
// first sight, and attaches it to the request context for owner scoping.
func Middleware(verifier TokenVerifier, users UserResolver, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authorized, no token",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.WarnContext(c.Request.Context(), "Token verification failed",
				log.FieldError, err,
				log.FieldOperation, log.OpVerify)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authorized, token failed",
			})
			return
		}

		user, err := users.GetOrCreate(c.Request.Context(), core.User{
			FirebaseUID: identity.UID,
			Email:       identity.Email,
			DisplayName: identity.DisplayName,
			PhotoURL:    identity.PhotoURL,
		})
		if err != nil {
			logger.ErrorContext(c.Request.Context(), "Failed to resolve local user",
				log.FieldError, err,
				log.FieldUserID, identity.UID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Server Error",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// UserFrom returns the authenticated local user attached by Middleware.
func UserFrom(c *gin.Context) (core.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return core.User{}, false
	}
	user, ok := v.(core.User)
	return user, ok
}

// UIDFrom returns the authenticated caller's subject id, the key every
// owner-scoped store operation filters on.
func UIDFrom(c *gin.Context) string {
	user, ok := UserFrom(c)
	if !ok {
		return ""
	}
	return user.FirebaseUID
}
