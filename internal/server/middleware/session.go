package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dealyield/internal/domain/models"
	"github.com/mamadbah2/dealyield/pkg/clients/auth"
)

const sessionKey = "session"

// Session resolves the bearer token into a platform session and aborts with
// 401 when that fails.
func Session(client auth.Client, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := client.CurrentSession(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthorized) {
				logger.Error("session resolution failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		SetSession(c, session)
		c.Next()
	}
}

// SetSession stores session on the request context.
func SetSession(c *gin.Context, session models.Session) {
	c.Set(sessionKey, session)
}

// SessionFrom returns the session stored by Session.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
