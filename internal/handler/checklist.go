package handler

import (
	"net/http"
	"strconv"

	"github.com/careerladder/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ChecklistHandler struct {
	service *service.ChecklistService
}

// NewChecklistHandler creates the template catalog handler.
func NewChecklistHandler(service *service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{service: service}
}

// List returns a page of checklist templates.
func (h *ChecklistHandler) List(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip"})
		return
	}
	take, err := strconv.Atoi(c.DefaultQuery("take", "100"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid take"})
		return
	}

	page, err := h.service.List(skip, take)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns one template version with its items.
func (h *ChecklistHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	checklist, err := h.service.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checklist)
}

// Publish creates a new template version. Admin only.
func (h *ChecklistHandler) Publish(c *gin.Context) {
	var req struct {
		Name    string                       `json:"name" binding:"required"`
		Version string                       `json:"version" binding:"required"`
		Items   []service.ChecklistItemInput `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checklist, err := h.service.Publish(req.Name, req.Version, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, checklist)
}
