package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"voyago/models"

	"github.com/go-redis/redis/v8"
)

const tripKeyPrefix = "trip:"

// Session-store key names, one per trip context field plus the selection,
// cache and flag keys.
const (
	keyDestination         = "destination"
	keyStartDate           = "startDate"
	keyEndDate             = "endDate"
	keyNumberOfDays        = "numberOfDays"
	keyTravelMethod        = "travelMethod"
	keyBudget              = "budget"
	keyCompanions          = "companions"
	keyMealPreferences     = "mealPreferences"
	keySelectedCategories  = "selectedCategories"
	keySelectedPreferences = "selectedPreferences"
	keyPlacesPerDay        = "placesPerDay"
	keyPackingCategories   = "packingCategories"
	keyPackingItems        = "packingItems"
	keySelectedPlaces      = "selectedPlaces"
	keySelectedHotels      = "selectedHotels"
	keyItineraryGenerated  = "itineraryGenerated"
	keyCategoryPlaces      = "categoryPlaces"
	keyHotelOptions        = "hotelOptions"
	keyItineraryPlan       = "itineraryPlan"
	keyPackingList         = "packingList"
)

var allSessionKeys = []string{
	keyDestination, keyStartDate, keyEndDate, keyNumberOfDays, keyTravelMethod,
	keyBudget, keyCompanions, keyMealPreferences, keySelectedCategories,
	keySelectedPreferences, keyPlacesPerDay, keyPackingCategories, keyPackingItems,
	keySelectedPlaces, keySelectedHotels, keyItineraryGenerated,
	keyCategoryPlaces, keyHotelOptions, keyItineraryPlan, keyPackingList,
	"snapshot:places", "snapshot:hotels", "snapshot:itinerary", "snapshot:packing",
}

// RedisStore is the session-scoped trip store. Each trip field lives under its
// own key so writes stay single-key atomic.
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	listeners []Listener
}

// NewRedisStore returns a Store backed by the given Redis client. Session keys
// expire after ttl of inactivity.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Subscribe registers a mutation listener. Listeners fire synchronously at the
// point of mutation, replacing any polling-based change detection.
func (s *RedisStore) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *RedisStore) notify(sessionID string, fields []string, tripCtx *models.TripContext) {
	if len(fields) == 0 {
		return
	}
	for _, l := range s.listeners {
		l(sessionID, fields, tripCtx)
	}
}

func (s *RedisStore) key(sessionID, field string) string {
	return tripKeyPrefix + sessionID + ":" + field
}

func (s *RedisStore) getString(ctx context.Context, sessionID, field string) (string, error) {
	val, err := s.client.Get(ctx, s.key(sessionID, field)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) setString(ctx context.Context, sessionID, field, val string) error {
	return s.client.Set(ctx, s.key(sessionID, field), val, s.ttl).Err()
}

func (s *RedisStore) getJSON(ctx context.Context, sessionID, field string, v interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID, field)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", field, err)
	}
	return true, nil
}

func (s *RedisStore) setJSON(ctx context.Context, sessionID, field string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	return s.client.Set(ctx, s.key(sessionID, field), b, s.ttl).Err()
}

// Context assembles the trip context from its per-field keys. Absent keys
// yield zero values, so a fresh session decodes to an empty context.
func (s *RedisStore) Context(ctx context.Context, sessionID string) (*models.TripContext, error) {
	tc := &models.TripContext{}
	var err error

	if tc.Destination, err = s.getString(ctx, sessionID, keyDestination); err != nil {
		return nil, err
	}
	if tc.StartDate, err = s.getString(ctx, sessionID, keyStartDate); err != nil {
		return nil, err
	}
	if tc.EndDate, err = s.getString(ctx, sessionID, keyEndDate); err != nil {
		return nil, err
	}
	daysStr, err := s.getString(ctx, sessionID, keyNumberOfDays)
	if err != nil {
		return nil, err
	}
	if daysStr != "" {
		if tc.NumberOfDays, err = strconv.Atoi(daysStr); err != nil {
			return nil, fmt.Errorf("decode numberOfDays: %w", err)
		}
	}
	if tc.TravelMethod, err = s.getString(ctx, sessionID, keyTravelMethod); err != nil {
		return nil, err
	}
	if tc.Budget, err = s.getString(ctx, sessionID, keyBudget); err != nil {
		return nil, err
	}
	if tc.Companions, err = s.getString(ctx, sessionID, keyCompanions); err != nil {
		return nil, err
	}
	if _, err = s.getJSON(ctx, sessionID, keyMealPreferences, &tc.MealPreferences); err != nil {
		return nil, err
	}
	if _, err = s.getJSON(ctx, sessionID, keySelectedCategories, &tc.SelectedCategories); err != nil {
		return nil, err
	}
	if _, err = s.getJSON(ctx, sessionID, keySelectedPreferences, &tc.SelectedPreferences); err != nil {
		return nil, err
	}
	perDayStr, err := s.getString(ctx, sessionID, keyPlacesPerDay)
	if err != nil {
		return nil, err
	}
	if perDayStr != "" {
		if tc.PlacesPerDay, err = strconv.Atoi(perDayStr); err != nil {
			return nil, fmt.Errorf("decode placesPerDay: %w", err)
		}
	}
	if _, err = s.getJSON(ctx, sessionID, keyPackingCategories, &tc.PackingCategories); err != nil {
		return nil, err
	}
	if _, err = s.getJSON(ctx, sessionID, keyPackingItems, &tc.PackingItems); err != nil {
		return nil, err
	}

	return tc, nil
}

// SaveContext writes every trip field under its own key and notifies listeners
// with the set of fields that actually changed.
func (s *RedisStore) SaveContext(ctx context.Context, sessionID string, tripCtx *models.TripContext) error {
	old, err := s.Context(ctx, sessionID)
	if err != nil {
		return err
	}

	writes := []struct {
		field string
		write func() error
		dirty bool
	}{
		{keyDestination, func() error { return s.setString(ctx, sessionID, keyDestination, tripCtx.Destination) }, old.Destination != tripCtx.Destination},
		{keyStartDate, func() error { return s.setString(ctx, sessionID, keyStartDate, tripCtx.StartDate) }, old.StartDate != tripCtx.StartDate},
		{keyEndDate, func() error { return s.setString(ctx, sessionID, keyEndDate, tripCtx.EndDate) }, old.EndDate != tripCtx.EndDate},
		{keyNumberOfDays, func() error { return s.setString(ctx, sessionID, keyNumberOfDays, strconv.Itoa(tripCtx.NumberOfDays)) }, old.NumberOfDays != tripCtx.NumberOfDays},
		{keyTravelMethod, func() error { return s.setString(ctx, sessionID, keyTravelMethod, tripCtx.TravelMethod) }, old.TravelMethod != tripCtx.TravelMethod},
		{keyBudget, func() error { return s.setString(ctx, sessionID, keyBudget, tripCtx.Budget) }, old.Budget != tripCtx.Budget},
		{keyCompanions, func() error { return s.setString(ctx, sessionID, keyCompanions, tripCtx.Companions) }, old.Companions != tripCtx.Companions},
		{keyMealPreferences, func() error { return s.setJSON(ctx, sessionID, keyMealPreferences, tripCtx.MealPreferences) }, !sameJSON(old.MealPreferences, tripCtx.MealPreferences)},
		{keySelectedCategories, func() error { return s.setJSON(ctx, sessionID, keySelectedCategories, tripCtx.SelectedCategories) }, !sameJSON(old.SelectedCategories, tripCtx.SelectedCategories)},
		{keySelectedPreferences, func() error { return s.setJSON(ctx, sessionID, keySelectedPreferences, tripCtx.SelectedPreferences) }, !sameJSON(old.SelectedPreferences, tripCtx.SelectedPreferences)},
		{keyPlacesPerDay, func() error { return s.setString(ctx, sessionID, keyPlacesPerDay, strconv.Itoa(tripCtx.PlacesPerDay)) }, old.PlacesPerDay != tripCtx.PlacesPerDay},
		{keyPackingCategories, func() error { return s.setJSON(ctx, sessionID, keyPackingCategories, tripCtx.PackingCategories) }, !sameJSON(old.PackingCategories, tripCtx.PackingCategories)},
		{keyPackingItems, func() error { return s.setJSON(ctx, sessionID, keyPackingItems, tripCtx.PackingItems) }, !sameJSON(old.PackingItems, tripCtx.PackingItems)},
	}

	var changed []string
	for _, w := range writes {
		if err := w.write(); err != nil {
			return err
		}
		if w.dirty {
			changed = append(changed, w.field)
		}
	}

	s.notify(sessionID, changed, tripCtx)
	return nil
}

func sameJSON(a, b interface{}) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ab) == string(bb)
}

// Selections loads the traveler's current place/hotel picks.
func (s *RedisStore) Selections(ctx context.Context, sessionID string) (*models.SelectionSet, error) {
	sel := &models.SelectionSet{}
	if _, err := s.getJSON(ctx, sessionID, keySelectedPlaces, &sel.SelectedPlaces); err != nil {
		return nil, err
	}
	if _, err := s.getJSON(ctx, sessionID, keySelectedHotels, &sel.SelectedHotels); err != nil {
		return nil, err
	}
	return sel, nil
}

// SaveSelections stores the place and hotel picks under their own keys.
func (s *RedisStore) SaveSelections(ctx context.Context, sessionID string, sel *models.SelectionSet) error {
	if err := s.setJSON(ctx, sessionID, keySelectedPlaces, sel.SelectedPlaces); err != nil {
		return err
	}
	return s.setJSON(ctx, sessionID, keySelectedHotels, sel.SelectedHotels)
}

// ItineraryGenerated reads the generated flag; it is stored as text.
func (s *RedisStore) ItineraryGenerated(ctx context.Context, sessionID string) (bool, error) {
	val, err := s.getString(ctx, sessionID, keyItineraryGenerated)
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

// SetItineraryGenerated stores the generated flag as "true"/"false" text.
func (s *RedisStore) SetItineraryGenerated(ctx context.Context, sessionID string, generated bool) error {
	return s.setString(ctx, sessionID, keyItineraryGenerated, strconv.FormatBool(generated))
}

// Snapshot returns the frozen trip state for the last successful fetch of the
// kind, or nil when no fetch has happened yet.
func (s *RedisStore) Snapshot(ctx context.Context, sessionID string, kind models.RecommendationKind) (*models.TripSnapshot, error) {
	var snap models.TripSnapshot
	found, err := s.getJSON(ctx, sessionID, "snapshot:"+string(kind), &snap)
	if err != nil || !found {
		return nil, err
	}
	return &snap, nil
}

// SaveSnapshot stores the snapshot for a kind. Snapshots are only ever replaced
// whole, never mutated.
func (s *RedisStore) SaveSnapshot(ctx context.Context, sessionID string, kind models.RecommendationKind, snap *models.TripSnapshot) error {
	return s.setJSON(ctx, sessionID, "snapshot:"+string(kind), snap)
}

func cachedSetKey(kind models.RecommendationKind) string {
	switch kind {
	case models.KindPlaces:
		return keyCategoryPlaces
	case models.KindHotels:
		return keyHotelOptions
	case models.KindItinerary:
		return keyItineraryPlan
	default:
		return keyPackingList
	}
}

// CachedSet returns the last stored recommendation set for a kind, or nil.
func (s *RedisStore) CachedSet(ctx context.Context, sessionID string, kind models.RecommendationKind) (*models.RecommendationSet, error) {
	var set models.RecommendationSet
	found, err := s.getJSON(ctx, sessionID, cachedSetKey(kind), &set)
	if err != nil || !found {
		return nil, err
	}
	return &set, nil
}

// SaveCachedSet supersedes the stored set for a kind.
func (s *RedisStore) SaveCachedSet(ctx context.Context, sessionID string, kind models.RecommendationKind, set *models.RecommendationSet) error {
	return s.setJSON(ctx, sessionID, cachedSetKey(kind), set)
}

// Clear wipes every session key. Used when the traveler returns home.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	keys := make([]string, 0, len(allSessionKeys))
	for _, field := range allSessionKeys {
		keys = append(keys, s.key(sessionID, field))
	}
	return s.client.Del(ctx, keys...).Err()
}
