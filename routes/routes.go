package routes

import (
	"net/http"
	"time"

	"voyago/handlers"
	"voyago/middleware"
	"voyago/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handler sets the router wires up.
type HandlerBundle struct {
	Trip           *handlers.TripHandler
	Recommendation *handlers.RecommendationHandler
	Chat           *handlers.ChatHandler
	Packing        *handlers.PackingHandler
	Itinerary      *handlers.ItineraryHandler
}

// RegisterTripRoutes registers the wizard trip-context endpoints.
func RegisterTripRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/trip")
	{
		api.Use(middleware.SessionMiddleware())
		api.GET("/context", hb.Trip.GetContextHandler)
		api.PATCH("/context", hb.Trip.UpdateContextHandler)
		api.DELETE("/context", hb.Trip.ClearContextHandler)
		api.POST("/validate", hb.Trip.ValidateStepHandler)
		api.GET("/selections", hb.Trip.GetSelectionsHandler)
		api.PUT("/selections", hb.Trip.UpdateSelectionsHandler)
		api.PATCH("/packing/item", hb.Trip.SetPackingItemHandler)
		api.GET("/progression", hb.Trip.ProgressionHandler)
	}
}

// RegisterRecommendationRoutes registers the four fetch endpoints. Identity is
// optional: anonymous sessions fetch fine, signed-in travelers additionally
// get durable packing-list caching.
func RegisterRecommendationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/recommendations")
	{
		api.Use(middleware.RequireSessionMiddleware())
		api.Use(middleware.OptionalAuthMiddleware())
		api.POST("/places", hb.Recommendation.FetchPlacesHandler)
		api.POST("/hotels", hb.Recommendation.FetchHotelsHandler)
		api.POST("/itinerary", hb.Recommendation.FetchItineraryHandler)
		api.POST("/packing", hb.Recommendation.FetchPackingHandler)
	}
}

// RegisterChatRoutes registers the pass-through proxy to the provider.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/chat", hb.Chat.ChatProxyHandler)
}

// RegisterPackingRoutes registers the durable packing-list endpoints.
func RegisterPackingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/packing")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Packing.GetPackingListHandler)
		api.PATCH("/item", hb.Packing.SetItemPackedHandler)
		api.DELETE("", hb.Packing.DeletePackingListHandler)
	}
}

// RegisterItineraryRoutes registers saved-itinerary CRUD.
func RegisterItineraryRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/itineraries")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Itinerary.SaveItineraryHandler)
		api.GET("", hb.Itinerary.ListItinerariesHandler)
		api.GET("/:id", hb.Itinerary.GetItineraryHandler)
		api.DELETE("/:id", hb.Itinerary.DeleteItineraryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", utils.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterTripRoutes(r, hb)
	RegisterRecommendationRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterPackingRoutes(r, hb)
	RegisterItineraryRoutes(r, hb)
	RegisterHealthRoute(r)
}
