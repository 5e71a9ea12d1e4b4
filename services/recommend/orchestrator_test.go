package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	packingRepo "voyago/database/repository/packing"
	"voyago/models"
	"voyago/services/trip"

	gocache "github.com/patrickmn/go-cache"
)

// fakeGateway replays canned replies and counts round trips.
type fakeGateway struct {
	replies  []string
	err      error
	calls    int
	lastSent []models.ChatMessage
}

func (g *fakeGateway) Send(_ context.Context, messages []models.ChatMessage) (string, error) {
	g.calls++
	g.lastSent = messages
	if g.err != nil {
		return "", g.err
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

func (g *fakeGateway) SendRaw(_ context.Context, _ models.ChatRequest) (*models.ChatResponse, error) {
	return nil, errors.New("not used")
}

// fakePackingRepo is an in-memory PackingListRepository.
type fakePackingRepo struct {
	lists map[string]*models.PackingList
}

func newFakePackingRepo() *fakePackingRepo {
	return &fakePackingRepo{lists: make(map[string]*models.PackingList)}
}

func packingKey(userID, destination, startDate string) string {
	return userID + "|" + destination + "|" + startDate
}

func (r *fakePackingRepo) GetByTripKey(_ context.Context, userID, destination, startDate string) (*models.PackingList, error) {
	list, ok := r.lists[packingKey(userID, destination, startDate)]
	if !ok {
		return nil, packingRepo.ErrNotFound
	}
	return list, nil
}

func (r *fakePackingRepo) Upsert(_ context.Context, list models.PackingList) (*models.PackingList, error) {
	r.lists[packingKey(list.UserID, list.Destination, list.StartDate)] = &list
	return &list, nil
}

func (r *fakePackingRepo) SetItemPacked(_ context.Context, userID, destination, startDate, category, item string, packed bool) error {
	list, ok := r.lists[packingKey(userID, destination, startDate)]
	if !ok {
		return packingRepo.ErrNotFound
	}
	if list.Packed == nil {
		list.Packed = map[string]map[string]bool{}
	}
	if list.Packed[category] == nil {
		list.Packed[category] = map[string]bool{}
	}
	list.Packed[category][item] = packed
	return nil
}

func (r *fakePackingRepo) DeleteByTripKey(_ context.Context, userID, destination, startDate string) error {
	delete(r.lists, packingKey(userID, destination, startDate))
	return nil
}

func seedTrip(t *testing.T, store trip.Store, sessionID string) {
	t.Helper()
	ctx := context.Background()
	err := store.SaveContext(ctx, sessionID, &models.TripContext{
		Destination:        "Goa",
		StartDate:          "2024-06-01",
		EndDate:            "2024-06-03",
		NumberOfDays:       3,
		TravelMethod:       "car",
		Budget:             "medium",
		Companions:         "with family",
		MealPreferences:    []string{"veg"},
		SelectedCategories: []string{"beaches"},
	})
	if err != nil {
		t.Fatalf("SaveContext: %v", err)
	}
	err = store.SaveSelections(ctx, sessionID, &models.SelectionSet{
		SelectedPlaces: []string{"Baga Beach", "Fort Aguada", "Dudhsagar Falls", "Chapora Fort"},
		SelectedHotels: []string{"Taj Holiday Village"},
	})
	if err != nil {
		t.Fatalf("SaveSelections: %v", err)
	}
}

const placesReply = `Here you go:
[{"name":"Baga Beach","description":"Busy beach.","timing":"All day","ticket":"Free","who_can_visit":"Everyone","image_url":"http://img"}]`

func TestFetchStoresAndReusesCachedSet(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	gw := &fakeGateway{replies: []string{placesReply}}
	svc := NewDefaultRecommendationService(store, gw, nil)
	ctx := context.Background()

	set, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(set.Places) != 1 || set.Places[0].Name != "Baga Beach" {
		t.Fatalf("places = %+v", set.Places)
	}

	// Unchanged trip: the second fetch must not hit the gateway.
	if _, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, ""); err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.calls)
	}
}

func TestFetchRegeneratesAfterTripChange(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	gw := &fakeGateway{replies: []string{placesReply}}
	svc := NewDefaultRecommendationService(store, gw, nil)
	ctx := context.Background()

	if _, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, ""); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	tc, _ := store.Context(ctx, "s1")
	tc.Budget = "high"
	if err := store.SaveContext(ctx, "s1", tc); err != nil {
		t.Fatalf("SaveContext: %v", err)
	}

	if _, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, ""); err != nil {
		t.Fatalf("Fetch after change: %v", err)
	}
	if gw.calls != 2 {
		t.Errorf("gateway calls = %d, want 2", gw.calls)
	}
}

func TestFetchExtraForcesRegeneration(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	gw := &fakeGateway{replies: []string{placesReply}}
	svc := NewDefaultRecommendationService(store, gw, nil)
	ctx := context.Background()

	if _, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, ""); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, "Exclude: Baga Beach."); err != nil {
		t.Fatalf("Fetch with extra: %v", err)
	}
	if gw.calls != 2 {
		t.Errorf("gateway calls = %d, want 2", gw.calls)
	}
}

// A failed regeneration must leave the previously cached set intact.
func TestFetchFailureKeepsPreviousSet(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	gw := &fakeGateway{replies: []string{placesReply}}
	svc := NewDefaultRecommendationService(store, gw, nil)
	ctx := context.Background()

	if _, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, ""); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	gw.err = &GatewayError{Status: 500, Body: "upstream down"}
	if _, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, "more please"); err == nil {
		t.Fatal("Fetch succeeded, want gateway error")
	}

	cached, err := store.CachedSet(ctx, "s1", models.KindPlaces)
	if err != nil {
		t.Fatalf("CachedSet: %v", err)
	}
	if cached == nil || len(cached.Places) != 1 {
		t.Errorf("cached set = %+v, previous result must survive a failed fetch", cached)
	}
}

func TestFetchExtractionFailureKeepsPreviousSet(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	gw := &fakeGateway{replies: []string{placesReply, "Sorry, I cannot help with that."}}
	svc := NewDefaultRecommendationService(store, gw, nil)
	ctx := context.Background()

	if _, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, ""); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	_, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, "more please")
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("err = %v, want *ExtractionError", err)
	}

	cached, _ := store.CachedSet(ctx, "s1", models.KindPlaces)
	if cached == nil || len(cached.Places) != 1 {
		t.Errorf("cached set = %+v, previous result must survive a failed parse", cached)
	}
}

func TestFetchInFlightGate(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	gw := &fakeGateway{replies: []string{placesReply}}
	svc := NewDefaultRecommendationService(store, gw, nil)

	if err := svc.inflight.Add("s1:"+string(models.KindPlaces), true, gocache.DefaultExpiration); err != nil {
		t.Fatalf("occupying gate: %v", err)
	}

	_, err := svc.Fetch(context.Background(), "s1", "", models.KindPlaces, "")
	if !errors.Is(err, ErrFetchInProgress) {
		t.Errorf("err = %v, want ErrFetchInProgress", err)
	}
	if gw.calls != 0 {
		t.Errorf("gateway calls = %d, want 0 while gated", gw.calls)
	}
}

func TestFetchItinerarySetsGeneratedFlag(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	reply := `[{"day":1,"title":"Beaches","hotel":"Taj Holiday Village","image":"http://img","description":"Beach day","activities":[]}]`
	gw := &fakeGateway{replies: []string{reply}}
	svc := NewDefaultRecommendationService(store, gw, nil)
	ctx := context.Background()

	set, err := svc.Fetch(ctx, "s1", "", models.KindItinerary, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(set.Itinerary) != 1 {
		t.Fatalf("itinerary = %+v", set.Itinerary)
	}

	generated, err := store.ItineraryGenerated(ctx, "s1")
	if err != nil {
		t.Fatalf("ItineraryGenerated: %v", err)
	}
	if !generated {
		t.Error("itineraryGenerated not set after a successful itinerary fetch")
	}

	// The frozen snapshot carries the flag, so the next fetch reuses.
	if _, err := svc.Fetch(ctx, "s1", "", models.KindItinerary, ""); err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.calls)
	}
}

// When the traveler never answered the meals step, the default applies to the
// fetch snapshot only; the stored context must stay untouched.
func TestFetchDefaultsMealPreferencesInSnapshotOnly(t *testing.T) {
	store := trip.NewMemoryStore()
	ctx := context.Background()
	err := store.SaveContext(ctx, "s1", &models.TripContext{
		Destination:  "Goa",
		StartDate:    "2024-06-01",
		EndDate:      "2024-06-03",
		NumberOfDays: 3,
	})
	if err != nil {
		t.Fatalf("SaveContext: %v", err)
	}

	gw := &fakeGateway{replies: []string{placesReply}}
	svc := NewDefaultRecommendationService(store, gw, nil)

	set, err := svc.Fetch(ctx, "s1", "", models.KindPlaces, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	prefs := set.SourceSnapshot.Context.MealPreferences
	if len(prefs) != 1 || prefs[0] != models.MealPreferenceMixed {
		t.Errorf("snapshot mealPreferences = %v, want [mixed]", prefs)
	}
	if !strings.Contains(gw.lastSent[1].Content, models.MealPreferenceMixed) {
		t.Error("prompt does not carry the default meal preference")
	}

	stored, err := store.Context(ctx, "s1")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if len(stored.MealPreferences) != 0 {
		t.Errorf("stored mealPreferences = %v, fetch must not backfill the context", stored.MealPreferences)
	}
}

// snapshotFailStore fails the snapshot write to exercise the error branch of
// a fetch's store phase.
type snapshotFailStore struct {
	*trip.MemoryStore
}

func (s *snapshotFailStore) SaveSnapshot(context.Context, string, models.RecommendationKind, *models.TripSnapshot) error {
	return errors.New("snapshot write failed")
}

// A store failure after extraction must not leave the generated flag flipped.
func TestFetchItineraryFlagUntouchedOnStoreFailure(t *testing.T) {
	store := &snapshotFailStore{MemoryStore: trip.NewMemoryStore()}
	seedTrip(t, store.MemoryStore, "s1")
	reply := `[{"day":1,"title":"Beaches","hotel":"Taj Holiday Village","image":"http://img","description":"Beach day","activities":[]}]`
	gw := &fakeGateway{replies: []string{reply}}
	svc := NewDefaultRecommendationService(store, gw, nil)
	ctx := context.Background()

	if _, err := svc.Fetch(ctx, "s1", "", models.KindItinerary, ""); err == nil {
		t.Fatal("Fetch succeeded, want store failure")
	}

	generated, err := store.ItineraryGenerated(ctx, "s1")
	if err != nil {
		t.Fatalf("ItineraryGenerated: %v", err)
	}
	if generated {
		t.Error("itineraryGenerated flipped although the fetch never stored its result")
	}
}

const packingReply = `{"categories":[{"name":"Clothing","items":["shirts","shorts"]}],"tips":"pack light"}`

func TestFetchPackingPersistsForSignedInUser(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	gw := &fakeGateway{replies: []string{packingReply}}
	repo := newFakePackingRepo()
	svc := NewDefaultRecommendationService(store, gw, repo)
	ctx := context.Background()

	set, err := svc.Fetch(ctx, "s1", "user-1", models.KindPacking, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if set.Packing == nil || len(set.Packing.Categories) != 1 {
		t.Fatalf("packing = %+v", set.Packing)
	}

	list, err := repo.GetByTripKey(ctx, "user-1", "Goa", "2024-06-01")
	if err != nil {
		t.Fatalf("GetByTripKey: %v", err)
	}
	if len(list.Categories) != 1 || list.Categories[0].Name != "Clothing" {
		t.Errorf("persisted list = %+v", list)
	}
}

// A durable list for the same trip key short-circuits the model call even for
// a fresh session.
func TestFetchPackingDurableHitBypassesGateway(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s2")
	gw := &fakeGateway{}
	repo := newFakePackingRepo()
	repo.lists[packingKey("user-1", "Goa", "2024-06-01")] = &models.PackingList{
		UserID:      "user-1",
		Destination: "Goa",
		StartDate:   "2024-06-01",
		Categories:  []models.PackingCategory{{Name: "Clothing", Items: []string{"shirts"}}},
	}
	svc := NewDefaultRecommendationService(store, gw, repo)

	set, err := svc.Fetch(context.Background(), "s2", "user-1", models.KindPacking, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gw.calls != 0 {
		t.Errorf("gateway calls = %d, want 0 on durable hit", gw.calls)
	}
	if set.Packing == nil || len(set.Packing.Categories) != 1 {
		t.Errorf("packing = %+v", set.Packing)
	}
}

func TestFetchAnonymousPackingSkipsDurableStore(t *testing.T) {
	store := trip.NewMemoryStore()
	seedTrip(t, store, "s1")
	gw := &fakeGateway{replies: []string{packingReply}}
	repo := newFakePackingRepo()
	svc := NewDefaultRecommendationService(store, gw, repo)

	if _, err := svc.Fetch(context.Background(), "s1", "", models.KindPacking, ""); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.calls)
	}
	if len(repo.lists) != 0 {
		t.Errorf("durable lists = %d, anonymous fetches must not persist", len(repo.lists))
	}
}
