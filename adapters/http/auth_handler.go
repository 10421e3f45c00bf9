package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/credably/internal/application/usecase/auth"
	"github.com/khoahotran/credably/pkg/logger"
)

type AuthHandler struct {
	loginUseCase *auth.LoginUseCase
	meUseCase    *auth.CurrentUserUseCase
	secureCookie bool
	logger       logger.Logger
}

func NewAuthHandler(loginUC *auth.LoginUseCase, meUC *auth.CurrentUserUseCase, secureCookie bool, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUC,
		meUseCase:    meUC,
		secureCookie: secureCookie,
		logger:       log,
	}
}

// Login returns the token and also sets it as the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setSession(c, output.AccessToken, int(time.Until(output.ExpiresAt).Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"access_token": output.AccessToken,
		"expires_at":   output.ExpiresAt,
		"user":         ToUserDTO(output.User),
	})
}

// Logout clears the session cookie. Bearer tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	u, err := h.meUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToUserDTO(u))
}

func (h *AuthHandler) setSession(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, value, maxAge, "/", "", h.secureCookie, true)
}
