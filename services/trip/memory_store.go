package trip

import (
	"context"
	"encoding/json"
	"sync"

	"voyago/models"
)

// MemoryStore is an in-process Store used by tests and local development.
// Values round-trip through JSON so stored state is detached from callers,
// matching the Redis store's copy semantics.
type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]map[string][]byte
	listeners []Listener
}

// NewMemoryStore returns an empty in-memory trip store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *MemoryStore) put(sessionID, field string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sessionID] == nil {
		s.sessions[sessionID] = make(map[string][]byte)
	}
	s.sessions[sessionID][field] = b
	return nil
}

func (s *MemoryStore) get(sessionID, field string, v interface{}) (bool, error) {
	s.mu.Lock()
	b, ok := s.sessions[sessionID][field]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}

func (s *MemoryStore) Context(_ context.Context, sessionID string) (*models.TripContext, error) {
	tc := &models.TripContext{}
	if _, err := s.get(sessionID, "context", tc); err != nil {
		return nil, err
	}
	return tc, nil
}

func (s *MemoryStore) SaveContext(ctx context.Context, sessionID string, tripCtx *models.TripContext) error {
	old, err := s.Context(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.put(sessionID, "context", tripCtx); err != nil {
		return err
	}
	changed := diffFields(old, tripCtx)
	for _, l := range s.listeners {
		l(sessionID, changed, tripCtx)
	}
	return nil
}

func diffFields(old, cur *models.TripContext) []string {
	var changed []string
	if old.Destination != cur.Destination {
		changed = append(changed, keyDestination)
	}
	if old.StartDate != cur.StartDate {
		changed = append(changed, keyStartDate)
	}
	if old.EndDate != cur.EndDate {
		changed = append(changed, keyEndDate)
	}
	if old.NumberOfDays != cur.NumberOfDays {
		changed = append(changed, keyNumberOfDays)
	}
	if old.TravelMethod != cur.TravelMethod {
		changed = append(changed, keyTravelMethod)
	}
	if old.Budget != cur.Budget {
		changed = append(changed, keyBudget)
	}
	if old.Companions != cur.Companions {
		changed = append(changed, keyCompanions)
	}
	if !sameJSON(old.MealPreferences, cur.MealPreferences) {
		changed = append(changed, keyMealPreferences)
	}
	if !sameJSON(old.SelectedCategories, cur.SelectedCategories) {
		changed = append(changed, keySelectedCategories)
	}
	if !sameJSON(old.SelectedPreferences, cur.SelectedPreferences) {
		changed = append(changed, keySelectedPreferences)
	}
	if old.PlacesPerDay != cur.PlacesPerDay {
		changed = append(changed, keyPlacesPerDay)
	}
	if !sameJSON(old.PackingCategories, cur.PackingCategories) {
		changed = append(changed, keyPackingCategories)
	}
	if !sameJSON(old.PackingItems, cur.PackingItems) {
		changed = append(changed, keyPackingItems)
	}
	return changed
}

func (s *MemoryStore) Selections(_ context.Context, sessionID string) (*models.SelectionSet, error) {
	sel := &models.SelectionSet{}
	if _, err := s.get(sessionID, "selections", sel); err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *MemoryStore) SaveSelections(_ context.Context, sessionID string, sel *models.SelectionSet) error {
	return s.put(sessionID, "selections", sel)
}

func (s *MemoryStore) ItineraryGenerated(_ context.Context, sessionID string) (bool, error) {
	var generated bool
	if _, err := s.get(sessionID, keyItineraryGenerated, &generated); err != nil {
		return false, err
	}
	return generated, nil
}

func (s *MemoryStore) SetItineraryGenerated(_ context.Context, sessionID string, generated bool) error {
	return s.put(sessionID, keyItineraryGenerated, generated)
}

func (s *MemoryStore) Snapshot(_ context.Context, sessionID string, kind models.RecommendationKind) (*models.TripSnapshot, error) {
	snap := &models.TripSnapshot{}
	found, err := s.get(sessionID, "snapshot:"+string(kind), snap)
	if err != nil || !found {
		return nil, err
	}
	return snap, nil
}

func (s *MemoryStore) SaveSnapshot(_ context.Context, sessionID string, kind models.RecommendationKind, snap *models.TripSnapshot) error {
	return s.put(sessionID, "snapshot:"+string(kind), snap)
}

func (s *MemoryStore) CachedSet(_ context.Context, sessionID string, kind models.RecommendationKind) (*models.RecommendationSet, error) {
	set := &models.RecommendationSet{}
	found, err := s.get(sessionID, cachedSetKey(kind), set)
	if err != nil || !found {
		return nil, err
	}
	return set, nil
}

func (s *MemoryStore) SaveCachedSet(_ context.Context, sessionID string, kind models.RecommendationKind, set *models.RecommendationSet) error {
	return s.put(sessionID, cachedSetKey(kind), set)
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
