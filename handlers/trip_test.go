package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voyago/middleware"
	"voyago/models"
	"voyago/services/trip"
	"voyago/utils"

	"github.com/gin-gonic/gin"
)

func newTripRouter() (*gin.Engine, trip.Store) {
	gin.SetMode(gin.TestMode)
	store := trip.NewMemoryStore()
	h := NewTripHandler(&trip.DefaultTripService{Store: store})

	r := gin.New()
	api := r.Group("/api/trip")
	api.Use(middleware.SessionMiddleware())
	api.GET("/context", h.GetContextHandler)
	api.PATCH("/context", h.UpdateContextHandler)
	api.DELETE("/context", h.ClearContextHandler)
	api.POST("/validate", h.ValidateStepHandler)
	api.PUT("/selections", h.UpdateSelectionsHandler)
	api.PATCH("/packing/item", h.SetPackingItemHandler)
	api.GET("/progression", h.ProgressionHandler)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(utils.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateContextHandlerDerivesDates(t *testing.T) {
	r, _ := newTripRouter()

	w := doJSON(t, r, http.MethodPatch, "/api/trip/context", "s1",
		`{"destination":"Goa","startDate":"2024-06-01","numberOfDays":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var tc models.TripContext
	if err := json.Unmarshal(w.Body.Bytes(), &tc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tc.EndDate != "2024-06-03" {
		t.Errorf("endDate = %q, want 2024-06-03", tc.EndDate)
	}
}

func TestUpdateContextHandlerRejectsInvalidDays(t *testing.T) {
	r, _ := newTripRouter()

	w := doJSON(t, r, http.MethodPatch, "/api/trip/context", "s1", `{"numberOfDays":0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSessionMintedWhenHeaderMissing(t *testing.T) {
	r, _ := newTripRouter()

	w := doJSON(t, r, http.MethodGet, "/api/trip/context", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get(utils.SessionHeader) == "" {
		t.Error("fresh session ID must be echoed back")
	}
}

func TestValidateStepHandlerMissingFields(t *testing.T) {
	r, _ := newTripRouter()

	w := doJSON(t, r, http.MethodPost, "/api/trip/validate", "s1", `{"step":2}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Missing) != 2 {
		t.Errorf("missing = %v, want startDate and numberOfDays", resp.Missing)
	}
}

func TestProgressionHandler(t *testing.T) {
	r, _ := newTripRouter()

	w := doJSON(t, r, http.MethodPut, "/api/trip/selections", "s1",
		`{"selectedPlaces":["a","b","c","d"],"selectedHotels":["h"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("selections status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/trip/progression", "s1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("progression status = %d", w.Code)
	}
	var resp struct {
		CanProceed bool `json:"canProceedToItinerary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.CanProceed {
		t.Error("one hotel and four places must unlock the itinerary")
	}
}

func TestSetPackingItemHandler(t *testing.T) {
	r, store := newTripRouter()

	w := doJSON(t, r, http.MethodPatch, "/api/trip/packing/item", "s1",
		`{"category":"Clothing","item":"shirts","packed":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	tc, err := store.Context(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if !tc.PackingItems["Clothing"]["shirts"] {
		t.Errorf("packingItems = %v, shirts must be packed", tc.PackingItems)
	}
}

func TestClearContextHandler(t *testing.T) {
	r, store := newTripRouter()

	doJSON(t, r, http.MethodPatch, "/api/trip/context", "s1", `{"destination":"Goa"}`)
	w := doJSON(t, r, http.MethodDelete, "/api/trip/context", "s1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	tc, err := store.Context(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if tc.Destination != "" {
		t.Errorf("destination = %q after clear", tc.Destination)
	}
}
