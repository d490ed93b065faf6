package service

import "IndexPulse/internal/domain/models"

// SignalEvaluator reduces an indicator snapshot to a trade signal. The
// canonical implementation is internal/engine; the interface exists so
// usecases and handlers can be exercised against a stub.
type SignalEvaluator interface {
	Evaluate(snap models.IndicatorSnapshot, status models.MarketStatus) models.SignalResult
}
