package handlers

import (
	"errors"
	"net/http"

	itineraryRepo "voyago/database/repository/itinerary"
	"voyago/middleware"
	"voyago/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItineraryHandler serves saved-itinerary CRUD for signed-in users.
type ItineraryHandler struct {
	Repo itineraryRepo.SavedItineraryRepository
}

// NewItineraryHandler returns an ItineraryHandler over the given repository.
func NewItineraryHandler(repo itineraryRepo.SavedItineraryRepository) *ItineraryHandler {
	return &ItineraryHandler{Repo: repo}
}

// SaveItineraryRequest is the payload for keeping a generated plan.
type SaveItineraryRequest struct {
	Destination string                `json:"destination" binding:"required"`
	Date        string                `json:"date" binding:"required"`
	Places      []string              `json:"places"`
	Hotel       string                `json:"hotel"`
	Itinerary   []models.ItineraryDay `json:"itinerary" binding:"required"`
}

// SaveItineraryHandler stores a generated plan under an opaque id.
func (h *ItineraryHandler) SaveItineraryHandler(c *gin.Context) {
	var req SaveItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	id, err := h.Repo.Save(c.Request.Context(), models.SavedItinerary{
		UserID:      userID,
		Destination: req.Destination,
		Date:        req.Date,
		Places:      req.Places,
		Hotel:       req.Hotel,
		Itinerary:   req.Itinerary,
	})
	if err != nil {
		getLogger(c).Error("Failed to save itinerary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save itinerary"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListItinerariesHandler returns all plans the user has saved, newest first.
func (h *ItineraryHandler) ListItinerariesHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	itineraries, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to list itineraries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list itineraries"})
		return
	}
	if itineraries == nil {
		itineraries = []models.SavedItinerary{}
	}
	c.JSON(http.StatusOK, itineraries)
}

// GetItineraryHandler returns one saved plan by id.
func (h *ItineraryHandler) GetItineraryHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	itinerary, err := h.Repo.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, itineraryRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
			return
		}
		getLogger(c).Error("Failed to load itinerary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load itinerary"})
		return
	}
	c.JSON(http.StatusOK, itinerary)
}

// DeleteItineraryHandler removes one saved plan by id.
func (h *ItineraryHandler) DeleteItineraryHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	err := h.Repo.DeleteByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, itineraryRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
			return
		}
		getLogger(c).Error("Failed to delete itinerary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete itinerary"})
		return
	}
	c.Status(http.StatusNoContent)
}
