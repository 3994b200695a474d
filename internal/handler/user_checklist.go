package handler

import (
	"net/http"
	"strconv"

	"github.com/careerladder/backend/internal/middleware"
	"github.com/careerladder/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type UserChecklistHandler struct {
	service *service.UserChecklistService
}

// NewUserChecklistHandler creates the user progress handler.
func NewUserChecklistHandler(service *service.UserChecklistService) *UserChecklistHandler {
	return &UserChecklistHandler{service: service}
}

// GetForName resolves the caller's instance for a checklist name, creating
// it from the latest template version on first access.
func (h *UserChecklistHandler) GetForName(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	resolution, err := h.service.GetOrCreateForName(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolution)
}

// Upgrade explicitly binds the caller to the latest template version.
func (h *UserChecklistHandler) Upgrade(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	userChecklist, err := h.service.UpgradeToLatest(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userChecklist)
}

// History lists all of the caller's instances for a checklist name.
func (h *UserChecklistHandler) History(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	history, err := h.service.History(userID, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// ToggleItem updates one item's completion state for its owner.
func (h *UserChecklistHandler) ToggleItem(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	// Pointer binding so an explicit false is distinguishable from a
	// missing field.
	var req struct {
		IsComplete *bool `json:"is_complete" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.ToggleItem(c.Request.Context(), userID, uint(itemID), *req.IsComplete)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetShared returns the read-only public view of a shared instance.
func (h *UserChecklistHandler) GetShared(c *gin.Context) {
	userChecklist, err := h.service.GetByShareToken(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userChecklist)
}
