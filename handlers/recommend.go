package handlers

import (
	"errors"
	"net/http"

	"voyago/middleware"
	"voyago/models"
	"voyago/services/recommend"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendationHandler drives the four recommendation fetch endpoints.
type RecommendationHandler struct {
	Service recommend.RecommendationService
}

// NewRecommendationHandler returns a handler backed by the orchestrator.
func NewRecommendationHandler(svc recommend.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{Service: svc}
}

// FetchRequest optionally carries a follow-up instruction such as excluding
// names the traveler has already seen ("Show More").
type FetchRequest struct {
	Extra string `json:"extra,omitempty"`
}

func (h *RecommendationHandler) fetch(c *gin.Context, kind models.RecommendationKind) {
	var req FetchRequest
	// The body is optional; a bare POST fetches with no follow-up.
	_ = c.ShouldBindJSON(&req)

	sessionID := middleware.SessionID(c)
	userID, _ := middleware.UserID(c)

	set, err := h.Service.Fetch(c.Request.Context(), sessionID, userID, kind, req.Extra)
	if err != nil {
		h.writeError(c, kind, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

func (h *RecommendationHandler) writeError(c *gin.Context, kind models.RecommendationKind, err error) {
	logger := getLogger(c)

	if errors.Is(err, recommend.ErrFetchInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	var gerr *recommend.GatewayError
	if errors.As(err, &gerr) {
		logger.Error("Recommendation fetch failed at gateway",
			zap.String("kind", string(kind)), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": recommend.UserMessage(kind, gerr)})
		return
	}

	var xerr *recommend.ExtractionError
	if errors.As(err, &xerr) {
		logger.Error("Recommendation fetch failed at extraction",
			zap.String("kind", string(kind)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": recommend.UserMessage(kind, xerr)})
		return
	}

	logger.Error("Recommendation fetch failed",
		zap.String("kind", string(kind)), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": recommend.UserMessage(kind, err)})
}

// FetchPlacesHandler regenerates or reuses place suggestions.
func (h *RecommendationHandler) FetchPlacesHandler(c *gin.Context) {
	h.fetch(c, models.KindPlaces)
}

// FetchHotelsHandler regenerates or reuses hotel suggestions.
func (h *RecommendationHandler) FetchHotelsHandler(c *gin.Context) {
	h.fetch(c, models.KindHotels)
}

// FetchItineraryHandler generates the day-by-day plan.
func (h *RecommendationHandler) FetchItineraryHandler(c *gin.Context) {
	h.fetch(c, models.KindItinerary)
}

// FetchPackingHandler fetches the packing list, consulting durable storage
// for signed-in travelers before any model call.
func (h *RecommendationHandler) FetchPackingHandler(c *gin.Context) {
	h.fetch(c, models.KindPacking)
}
