package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/auth"
	"github.com/khoahotran/credably/pkg/logger"
)

const (
	GinContextKeyUserID = "userID"
	SessionCookieName   = "credably_session"
)

// AuthMiddleware accepts a Bearer token and falls back to the session cookie.
func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			c.Error(apperror.NewUnauthorized("authorization token is required", nil))
			c.Abort()
			return
		}

		userID, err := jwtSvc.ParseUserID(tokenString)
		if err != nil {
			log.Debug("Rejected token", zap.Error(err))
			details := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				details = "token expired"
			}
			c.Error(apperror.NewUnauthorized(details, err))
			c.Abort()
			return
		}

		c.Set(GinContextKeyUserID, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// ErrorMiddleware renders the last error a handler attached as {error, details}.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		appErr := apperror.From(c.Errors.Last().Err)
		status := apperror.ToHTTPStatus(appErr)
		if status >= 500 {
			log.Error("Request failed", appErr,
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()))
		}
		if !c.Writer.Written() {
			c.JSON(status, appErr.ToJSON())
		}
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return id, true
}

// currentUser attaches a 401 when the auth middleware did not run.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("user not found in context", nil))
	}
	return id, ok
}

// pathID parses the :id route parameter, attaching a 400 on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid id", err))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON attaches a 400 when the body does not bind.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return false
	}
	return true
}
