package trip

import (
	"context"

	"voyago/models"
	"voyago/utils"

	"go.uber.org/zap"
)

// DefaultTripService implements Service over a session Store.
type DefaultTripService struct {
	Store Store
}

func (s *DefaultTripService) GetContext(ctx context.Context, sessionID string) (*models.TripContext, error) {
	return s.Store.Context(ctx, sessionID)
}

// UpdateContext merges the patch, re-derives the dependent date field and
// persists the result. The stored context holds only what the traveler
// actually answered; defaults are applied at fetch time, otherwise step
// validation could never see a field as missing.
func (s *DefaultTripService) UpdateContext(ctx context.Context, sessionID string, patch ContextPatch) (*models.TripContext, error) {
	tripCtx, err := s.Store.Context(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	changed, err := patch.Apply(tripCtx)
	if err != nil {
		return nil, err
	}

	if err := s.Store.SaveContext(ctx, sessionID, tripCtx); err != nil {
		return nil, err
	}

	utils.GetLogger().Debug("trip context updated",
		zap.String("session", sessionID),
		zap.Strings("fields", changed))
	return tripCtx, nil
}

// ClearContext wipes the whole session. Used when the traveler returns to the
// home screen.
func (s *DefaultTripService) ClearContext(ctx context.Context, sessionID string) error {
	return s.Store.Clear(ctx, sessionID)
}

// ValidateStep checks the stored context against the step requirement table.
func (s *DefaultTripService) ValidateStep(ctx context.Context, sessionID string, step int) error {
	tripCtx, err := s.Store.Context(ctx, sessionID)
	if err != nil {
		return err
	}
	return ValidateStepFields(step, tripCtx)
}

func (s *DefaultTripService) GetSelections(ctx context.Context, sessionID string) (*models.SelectionSet, error) {
	return s.Store.Selections(ctx, sessionID)
}

func (s *DefaultTripService) UpdateSelections(ctx context.Context, sessionID string, sel models.SelectionSet) error {
	if sel.SelectedPlaces == nil {
		sel.SelectedPlaces = []string{}
	}
	if sel.SelectedHotels == nil {
		sel.SelectedHotels = []string{}
	}
	return s.Store.SaveSelections(ctx, sessionID, &sel)
}

// CanProceedToItinerary applies the progression gate to the stored selections.
func (s *DefaultTripService) CanProceedToItinerary(ctx context.Context, sessionID string) (bool, error) {
	sel, err := s.Store.Selections(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return CanProceed(sel), nil
}
