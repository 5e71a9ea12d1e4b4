package handlers

import (
	"errors"
	"net/http"

	"voyago/middleware"
	"voyago/models"
	"voyago/services/trip"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TripHandler exposes wizard trip-context endpoints.
type TripHandler struct {
	Service trip.Service
}

// NewTripHandler returns a TripHandler backed by the given service.
func NewTripHandler(svc trip.Service) *TripHandler {
	return &TripHandler{Service: svc}
}

// GetContextHandler returns the session's accumulated trip answers.
func (h *TripHandler) GetContextHandler(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	tripCtx, err := h.Service.GetContext(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("Failed to load trip context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trip context"})
		return
	}
	c.JSON(http.StatusOK, tripCtx)
}

// UpdateContextHandler merges a partial update into the trip context.
func (h *TripHandler) UpdateContextHandler(c *gin.Context) {
	var patch trip.ContextPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	sessionID := middleware.SessionID(c)
	tripCtx, err := h.Service.UpdateContext(c.Request.Context(), sessionID, patch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tripCtx)
}

// ClearContextHandler wipes the session when the traveler returns home.
func (h *TripHandler) ClearContextHandler(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if err := h.Service.ClearContext(c.Request.Context(), sessionID); err != nil {
		getLogger(c).Error("Failed to clear trip context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear trip context"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ValidateStepRequest names the wizard step being validated.
type ValidateStepRequest struct {
	Step int `json:"step" binding:"required"`
}

// ValidateStepHandler checks the stored context against the step requirement
// table. Missing fields come back enumerated so the UI can highlight them.
func (h *TripHandler) ValidateStepHandler(c *gin.Context) {
	var req ValidateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	sessionID := middleware.SessionID(c)
	err := h.Service.ValidateStep(c.Request.Context(), sessionID, req.Step)
	if err != nil {
		var verr *trip.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   verr.Error(),
				"missing": verr.Missing,
			})
			return
		}
		getLogger(c).Error("Step validation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Step validation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// GetSelectionsHandler returns the traveler's current place and hotel picks.
func (h *TripHandler) GetSelectionsHandler(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	sel, err := h.Service.GetSelections(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("Failed to load selections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load selections"})
		return
	}
	c.JSON(http.StatusOK, sel)
}

// UpdateSelectionsHandler replaces the selection set.
func (h *TripHandler) UpdateSelectionsHandler(c *gin.Context) {
	var sel models.SelectionSet
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	sessionID := middleware.SessionID(c)
	if err := h.Service.UpdateSelections(c.Request.Context(), sessionID, sel); err != nil {
		getLogger(c).Error("Failed to save selections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save selections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetPackingItemRequest toggles one packing item inside the wizard session.
type SetPackingItemRequest struct {
	Category string `json:"category" binding:"required"`
	Item     string `json:"item" binding:"required"`
	Packed   bool   `json:"packed"`
}

// SetPackingItemHandler flips the packed flag of one item in the session's
// trip context. Works for anonymous sessions; durable lists have their own
// endpoint.
func (h *TripHandler) SetPackingItemHandler(c *gin.Context) {
	var req SetPackingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	sessionID := middleware.SessionID(c)
	tripCtx, err := h.Service.GetContext(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("Failed to load trip context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trip context"})
		return
	}

	items := tripCtx.PackingItems
	if items == nil {
		items = map[string]map[string]bool{}
	}
	if items[req.Category] == nil {
		items[req.Category] = map[string]bool{}
	}
	items[req.Category][req.Item] = req.Packed

	updated, err := h.Service.UpdateContext(c.Request.Context(), sessionID, trip.ContextPatch{PackingItems: &items})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated.PackingItems)
}

// ProgressionHandler reports whether itinerary generation is unlocked.
func (h *TripHandler) ProgressionHandler(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	ok, err := h.Service.CanProceedToItinerary(c.Request.Context(), sessionID)
	if err != nil {
		getLogger(c).Error("Failed to evaluate progression", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate progression"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"canProceedToItinerary": ok})
}
