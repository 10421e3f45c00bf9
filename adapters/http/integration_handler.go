package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	integrationUC "github.com/khoahotran/credably/internal/application/usecase/integration"
)

type IntegrationHandler struct {
	useCase *integrationUC.IntegrationUseCase
}

func NewIntegrationHandler(uc *integrationUC.IntegrationUseCase) *IntegrationHandler {
	return &IntegrationHandler{useCase: uc}
}

func (h *IntegrationHandler) ListIntegrations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	integrations, err := h.useCase.Statuses(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "integrations": integrations})
}

func (h *IntegrationHandler) Connect(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req ConnectRequest
	if !bindJSON(c, &req) {
		return
	}

	sp, err := h.useCase.Connect(c.Request.Context(), integrationUC.ConnectInput{
		UserID:      userID,
		Platform:    c.Param("platform"),
		Handle:      req.Handle,
		Connections: req.Connections,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "profile": sp})
}

func (h *IntegrationHandler) Sync(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	out, err := h.useCase.Sync(c.Request.Context(), integrationUC.SyncInput{
		UserID:   userID,
		Platform: c.Param("platform"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": out.Profile, "sync": out.Status})
}

func (h *IntegrationHandler) SyncAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := h.useCase.SyncAll(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"total":     out.Total,
		"succeeded": out.Succeeded,
		"failed":    out.Failed,
		"results":   out.Results,
	})
}

func (h *IntegrationHandler) Disconnect(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.useCase.Disconnect(c.Request.Context(), userID, c.Param("platform")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
