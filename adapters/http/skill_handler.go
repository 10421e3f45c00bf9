package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/credably/internal/application/usecase/skill"
)

type SkillHandler struct {
	addUseCase    *skillUC.AddSkillUseCase
	listUseCase   *skillUC.ListSkillsUseCase
	updateUseCase *skillUC.UpdateSkillUseCase
	deleteUseCase *skillUC.DeleteSkillUseCase
}

func NewSkillHandler(
	addUC *skillUC.AddSkillUseCase,
	listUC *skillUC.ListSkillsUseCase,
	updateUC *skillUC.UpdateSkillUseCase,
	deleteUC *skillUC.DeleteSkillUseCase,
) *SkillHandler {
	return &SkillHandler{
		addUseCase:    addUC,
		listUseCase:   listUC,
		updateUseCase: updateUC,
		deleteUseCase: deleteUC,
	}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	output, err := h.listUseCase.Execute(c.Request.Context(), skillUC.ListSkillsInput{
		UserID: userID,
		Source: c.Query("source"),
		Level:  c.Query("level"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "skills": output.Skills})
}

func (h *SkillHandler) AddSkill(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.addUseCase.Execute(c.Request.Context(), skillUC.AddSkillInput{
		UserID:      userID,
		Name:        req.Name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Level:       req.Level,
		Source:      req.Source,
		Verified:    req.Verified,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "skill": output.Skill})
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateSkillRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.updateUseCase.Execute(c.Request.Context(), skillUC.UpdateSkillInput{
		UserID:      userID,
		ID:          id,
		Proficiency: req.Proficiency,
		Level:       req.Level,
		Verified:    req.Verified,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "skill": output.Skill})
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), skillUC.DeleteSkillInput{UserID: userID, ID: id}); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
