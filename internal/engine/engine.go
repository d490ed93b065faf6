// Package engine implements the multi-factor weighted signal-scoring engine
// behind every indicator card on the dashboard. It is a pure function of
// (snapshot, market status): no I/O, no clock, no state between evaluations.
package engine

import "IndexPulse/internal/domain/models"

// Engine evaluates indicator snapshots against a fixed parameter set.
// It is safe for concurrent use; evaluations share no mutable state.
type Engine struct {
	params Params
}

// New creates an engine with the given parameters.
func New(params Params) *Engine {
	return &Engine{params: params}
}

// Default creates an engine with the production parameter set.
func Default() *Engine {
	return New(DefaultParams())
}

// Params returns the parameter set the engine was built with.
func (e *Engine) Params() Params { return e.params }

// Evaluate runs the full pipeline: factor scoring, dual-timeframe trend
// reconciliation, score aggregation with the market-status discount, and the
// short-horizon prediction. The snapshot is taken by value and sanitized, so
// malformed input degrades toward NO_TRADE instead of corrupting the sum.
func (e *Engine) Evaluate(snap models.IndicatorSnapshot, status models.MarketStatus) models.SignalResult {
	snap.Sanitize()

	factors := e.ScoreFactors(&snap)
	t5 := e.DeriveTrend5Min(&snap)
	t15 := e.DeriveTrend15Min(&snap)
	action, confidence, total := e.Aggregate(factors, status)

	return models.SignalResult{
		Symbol:       snap.Symbol,
		Timestamp:    snap.Timestamp,
		MarketStatus: status,
		Action:       action,
		Confidence:   confidence,
		TotalScore:   total,
		Factors:      factors,
		Trend5Min:    t5,
		Trend15Min:   t15,
		Prediction:   e.ComposePrediction(t5, t15, confidence),
	}
}
