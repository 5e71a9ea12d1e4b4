package handlers

import (
	"errors"
	"net/http"

	packingRepo "voyago/database/repository/packing"
	"voyago/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PackingHandler serves the durable packing-list endpoints for signed-in users.
type PackingHandler struct {
	Repo packingRepo.PackingListRepository
}

// NewPackingHandler returns a PackingHandler over the given repository.
func NewPackingHandler(repo packingRepo.PackingListRepository) *PackingHandler {
	return &PackingHandler{Repo: repo}
}

// GetPackingListHandler fetches the stored list for the composite trip key.
func (h *PackingHandler) GetPackingListHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	destination := c.Query("destination")
	startDate := c.Query("startDate")
	if destination == "" || startDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination and startDate query parameters are required"})
		return
	}

	list, err := h.Repo.GetByTripKey(c.Request.Context(), userID, destination, startDate)
	if err != nil {
		if errors.Is(err, packingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No packing list stored for this trip"})
			return
		}
		getLogger(c).Error("Failed to load packing list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load packing list"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// SetItemPackedRequest toggles the packed flag of one packing item.
type SetItemPackedRequest struct {
	Destination string `json:"destination" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Item        string `json:"item" binding:"required"`
	Packed      bool   `json:"packed"`
}

// SetItemPackedHandler flips a single item's packed state.
func (h *PackingHandler) SetItemPackedHandler(c *gin.Context) {
	var req SetItemPackedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	err := h.Repo.SetItemPacked(c.Request.Context(), userID, req.Destination, req.StartDate, req.Category, req.Item, req.Packed)
	if err != nil {
		if errors.Is(err, packingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No packing list stored for this trip"})
			return
		}
		getLogger(c).Error("Failed to update packing item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update packing item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeletePackingListHandler removes the stored list for the composite trip key.
func (h *PackingHandler) DeletePackingListHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	destination := c.Query("destination")
	startDate := c.Query("startDate")
	if destination == "" || startDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination and startDate query parameters are required"})
		return
	}

	err := h.Repo.DeleteByTripKey(c.Request.Context(), userID, destination, startDate)
	if err != nil {
		if errors.Is(err, packingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No packing list stored for this trip"})
			return
		}
		getLogger(c).Error("Failed to delete packing list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete packing list"})
		return
	}
	c.Status(http.StatusNoContent)
}
