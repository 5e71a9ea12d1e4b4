package trip

import (
	"context"

	"voyago/models"
)

// Listener is invoked synchronously whenever a trip context field mutates.
// Field names match the session-store key names.
type Listener func(sessionID string, fields []string, tripCtx *models.TripContext)

// Store is the session-scoped trip state store. All writes are single-key and
// atomic; there is no cross-key transaction because no reader observes partial
// state within one event-loop turn of the wizard.
type Store interface {
	Context(ctx context.Context, sessionID string) (*models.TripContext, error)
	SaveContext(ctx context.Context, sessionID string, tripCtx *models.TripContext) error

	Selections(ctx context.Context, sessionID string) (*models.SelectionSet, error)
	SaveSelections(ctx context.Context, sessionID string, sel *models.SelectionSet) error

	ItineraryGenerated(ctx context.Context, sessionID string) (bool, error)
	SetItineraryGenerated(ctx context.Context, sessionID string, generated bool) error

	Snapshot(ctx context.Context, sessionID string, kind models.RecommendationKind) (*models.TripSnapshot, error)
	SaveSnapshot(ctx context.Context, sessionID string, kind models.RecommendationKind, snap *models.TripSnapshot) error

	CachedSet(ctx context.Context, sessionID string, kind models.RecommendationKind) (*models.RecommendationSet, error)
	SaveCachedSet(ctx context.Context, sessionID string, kind models.RecommendationKind, set *models.RecommendationSet) error

	Clear(ctx context.Context, sessionID string) error

	Subscribe(l Listener)
}

// Service exposes the wizard-facing trip operations.
type Service interface {
	GetContext(ctx context.Context, sessionID string) (*models.TripContext, error)
	UpdateContext(ctx context.Context, sessionID string, patch ContextPatch) (*models.TripContext, error)
	ClearContext(ctx context.Context, sessionID string) error

	ValidateStep(ctx context.Context, sessionID string, step int) error

	GetSelections(ctx context.Context, sessionID string) (*models.SelectionSet, error)
	UpdateSelections(ctx context.Context, sessionID string, sel models.SelectionSet) error
	CanProceedToItinerary(ctx context.Context, sessionID string) (bool, error)
}
