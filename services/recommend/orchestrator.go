package recommend

import (
	"context"
	"time"

	packingRepo "voyago/database/repository/packing"
	"voyago/models"
	"voyago/services/trip"
	"voyago/utils"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// systemPrompt frames every recommendation request.
const systemPrompt = "You are a travel planning assistant. Always respond in exactly the JSON format requested, with no surrounding commentary."

// inflightTTL bounds how long a fetch may hold the per-kind gate. A fetch that
// dies without cleanup releases the gate on expiry instead of wedging the kind.
const inflightTTL = 2 * time.Minute

// DefaultRecommendationService is the recommendation orchestrator.
type DefaultRecommendationService struct {
	Store       trip.Store
	Gateway     Gateway
	PackingRepo packingRepo.PackingListRepository

	inflight *gocache.Cache
}

// NewDefaultRecommendationService wires the orchestrator. PackingRepo may be
// nil when durable packing persistence is unavailable.
func NewDefaultRecommendationService(store trip.Store, gateway Gateway, repo packingRepo.PackingListRepository) *DefaultRecommendationService {
	return &DefaultRecommendationService{
		Store:       store,
		Gateway:     gateway,
		PackingRepo: repo,
		inflight:    gocache.New(inflightTTL, 5*time.Minute),
	}
}

// Fetch implements RecommendationService. On any failure the previously cached
// set is left untouched; writes happen only after the full chain succeeds.
func (s *DefaultRecommendationService) Fetch(ctx context.Context, sessionID, userID string, kind models.RecommendationKind, extra string) (*models.RecommendationSet, error) {
	logger := utils.GetLogger()

	current, err := s.currentSnapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Reuse check. A follow-up instruction always regenerates.
	if extra == "" {
		last, err := s.Store.Snapshot(ctx, sessionID, kind)
		if err != nil {
			return nil, err
		}
		if !ShouldRefresh(kind, current, last) {
			cached, err := s.Store.CachedSet(ctx, sessionID, kind)
			if err != nil {
				return nil, err
			}
			if cached != nil {
				logger.Debug("recommendation cache hit",
					zap.String("session", sessionID),
					zap.String("kind", string(kind)))
				return cached, nil
			}
		}
	}

	// Packing lists for signed-in travelers are looked up from durable storage
	// by (userId, destination, startDate) before any model call.
	if kind == models.KindPacking && userID != "" && s.PackingRepo != nil {
		list, err := s.PackingRepo.GetByTripKey(ctx, userID, current.Context.Destination, current.Context.StartDate)
		if err == nil {
			set := packingSetFromList(list, current)
			if err := s.storeResult(ctx, sessionID, kind, current, set); err != nil {
				return nil, err
			}
			return set, nil
		}
		if err != packingRepo.ErrNotFound {
			logger.Warn("packing list lookup failed, falling back to model call",
				zap.String("user", userID), zap.Error(err))
		}
	}

	// Per-(session, kind) in-flight gate against re-entrant triggers.
	gateKey := sessionID + ":" + string(kind)
	if err := s.inflight.Add(gateKey, true, gocache.DefaultExpiration); err != nil {
		return nil, ErrFetchInProgress
	}
	defer s.inflight.Delete(gateKey)

	prompt := BuildPrompt(kind, current, extra)
	reply, err := s.Gateway.Send(ctx, []models.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Warn("chat gateway call failed",
			zap.String("session", sessionID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, err
	}

	set, err := extractSet(kind, reply, current)
	if err != nil {
		// The raw text stays in the logs for diagnostics; the user only sees
		// the kind-specific parse message.
		logger.Warn("response extraction failed",
			zap.String("session", sessionID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, err
	}

	if kind == models.KindItinerary {
		current.ItineraryGenerated = true
		set.SourceSnapshot.ItineraryGenerated = true
	}

	if err := s.storeResult(ctx, sessionID, kind, current, set); err != nil {
		return nil, err
	}

	// The flag flips last: a failed store leaves it unset and the next fetch
	// simply regenerates.
	if kind == models.KindItinerary {
		if err := s.Store.SetItineraryGenerated(ctx, sessionID, true); err != nil {
			return nil, err
		}
	}

	if kind == models.KindPacking && userID != "" && s.PackingRepo != nil {
		_, err := s.PackingRepo.Upsert(ctx, models.PackingList{
			UserID:      userID,
			Destination: current.Context.Destination,
			StartDate:   current.Context.StartDate,
			Categories:  set.Packing.Categories,
			Tips:        set.Packing.Tips,
		})
		if err != nil {
			logger.Warn("failed to persist packing list",
				zap.String("user", userID), zap.Error(err))
		}
	}

	return set, nil
}

func (s *DefaultRecommendationService) currentSnapshot(ctx context.Context, sessionID string) (*models.TripSnapshot, error) {
	tripCtx, err := s.Store.Context(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel, err := s.Store.Selections(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	generated, err := s.Store.ItineraryGenerated(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	trip.Normalize(tripCtx)
	return &models.TripSnapshot{
		Context:            *tripCtx,
		Selections:         *sel,
		ItineraryGenerated: generated,
		TakenAt:            time.Now(),
	}, nil
}

// storeResult supersedes the cached set and freezes the snapshot, both only on
// success. Single-key writes; no partial overwrite of the previous set.
func (s *DefaultRecommendationService) storeResult(ctx context.Context, sessionID string, kind models.RecommendationKind, snap *models.TripSnapshot, set *models.RecommendationSet) error {
	if err := s.Store.SaveCachedSet(ctx, sessionID, kind, set); err != nil {
		return err
	}
	return s.Store.SaveSnapshot(ctx, sessionID, kind, snap)
}

// extractSet parses the model reply into a typed recommendation set. Items are
// never nil after a successful fetch; empty means "nothing found".
func extractSet(kind models.RecommendationKind, reply string, snap *models.TripSnapshot) (*models.RecommendationSet, error) {
	set := &models.RecommendationSet{
		Kind:           kind,
		SourceSnapshot: *snap,
		FetchedAt:      time.Now(),
	}

	switch kind {
	case models.KindPlaces:
		var places []models.Place
		if err := ExtractArray(reply, &places); err != nil {
			return nil, err
		}
		if places == nil {
			places = []models.Place{}
		}
		set.Places = places

	case models.KindHotels:
		var hotels []models.Hotel
		if err := ExtractArray(reply, &hotels); err != nil {
			return nil, err
		}
		if hotels == nil {
			hotels = []models.Hotel{}
		}
		set.Hotels = hotels

	case models.KindItinerary:
		var days []models.ItineraryDay
		if err := ExtractArray(reply, &days); err != nil {
			return nil, err
		}
		if days == nil {
			days = []models.ItineraryDay{}
		}
		set.Itinerary = days

	case models.KindPacking:
		var payload models.PackingListPayload
		if err := ExtractObject(reply, &payload, "categories"); err != nil {
			return nil, err
		}
		if payload.Categories == nil {
			payload.Categories = []models.PackingCategory{}
		}
		set.Packing = &payload
	}

	return set, nil
}

func packingSetFromList(list *models.PackingList, snap *models.TripSnapshot) *models.RecommendationSet {
	return &models.RecommendationSet{
		Kind: models.KindPacking,
		Packing: &models.PackingListPayload{
			Categories: list.Categories,
			Tips:       list.Tips,
		},
		SourceSnapshot: *snap,
		FetchedAt:      time.Now(),
	}
}
