package usecase

import (
	"context"
	"fmt"

	"IndexPulse/internal/domain/models"
	domrepo "IndexPulse/internal/domain/repository"
	domsvc "IndexPulse/internal/domain/service"
)

// ErrSymbolNotTracked is returned when no snapshot has been seen for a symbol.
var ErrSymbolNotTracked = fmt.Errorf("symbol not tracked")

// EvaluateUseCase scores the freshest snapshot of a single symbol.
type EvaluateUseCase struct {
	store     domrepo.SnapshotStore
	evaluator domsvc.SignalEvaluator
}

func NewEvaluateUseCase(store domrepo.SnapshotStore, evaluator domsvc.SignalEvaluator) *EvaluateUseCase {
	return &EvaluateUseCase{store: store, evaluator: evaluator}
}

func (uc *EvaluateUseCase) Evaluate(_ context.Context, symbol string) (*models.SignalResult, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	snap, ok := uc.store.Get(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotTracked, symbol)
	}
	r := uc.evaluator.Evaluate(*snap, uc.store.MarketStatus())
	return &r, nil
}

// MarketStatus exposes the current session state for handlers.
func (uc *EvaluateUseCase) MarketStatus() models.MarketStatus {
	return uc.store.MarketStatus()
}
