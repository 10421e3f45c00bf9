package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	certUC "github.com/khoahotran/credably/internal/application/usecase/certification"
)

type CertificationHandler struct {
	useCase *certUC.CertificationUseCase
}

func NewCertificationHandler(uc *certUC.CertificationUseCase) *CertificationHandler {
	return &CertificationHandler{useCase: uc}
}

func (h *CertificationHandler) ListCertifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	certs, err := h.useCase.ExecuteList(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "certifications": certs})
}

func (h *CertificationHandler) AddCertification(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddCertificationRequest
	if !bindJSON(c, &req) {
		return
	}

	cert, err := h.useCase.ExecuteAdd(c.Request.Context(), certUC.AddCertificationInput{
		UserID:        userID,
		Name:          req.Name,
		Issuer:        req.Issuer,
		IssueDate:     req.IssueDate,
		ExpiryDate:    req.ExpiryDate,
		CredentialURL: req.CredentialURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "certification": cert})
}

func (h *CertificationHandler) DeleteCertification(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.useCase.ExecuteDelete(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
