package engine

import "IndexPulse/internal/domain/models"

// Trend reconciliation: indicator availability varies by symbol and market
// phase, so each timeframe walks an ordered fallback chain and the first
// non-neutral verdict wins. An explicit backend override always takes
// precedence over anything derived.

// DeriveTrend5Min resolves the 5-minute directional call.
// Chain: explicit override, SuperTrend, 5m candle RSI, live momentum RSI,
// momentum score, day change.
func (e *Engine) DeriveTrend5Min(s *models.IndicatorSnapshot) models.TrendDirection {
	t := e.params.Trend
	if s.Trend5MinRaw == models.DirUp || s.Trend5MinRaw == models.DirDown {
		return s.Trend5MinRaw
	}
	switch s.SuperTrendTrend {
	case models.TrendBullish:
		return models.DirUp
	case models.TrendBearish:
		return models.DirDown
	}
	if d := bandVerdict(s.RSI5MinRaw, t.RSI5MinUp, t.RSI5MinDown); d != models.DirNeutral {
		return d
	}
	if d := bandVerdict(s.RSILive, t.RSILiveUp, t.RSILiveDown); d != models.DirNeutral {
		return d
	}
	if d := bandVerdict(s.Momentum, t.MomentumUp, t.MomentumDown); d != models.DirNeutral {
		return d
	}
	if s.ChangePercent > t.ChangePct {
		return models.DirUp
	}
	if s.ChangePercent < -t.ChangePct {
		return models.DirDown
	}
	return models.DirNeutral
}

// DeriveTrend15Min resolves the 15-minute directional call.
// Chain: explicit override, EMA alignment, swing structure, trend-color proxy,
// trend-mapped proxy, SAR confirmed by the day change.
func (e *Engine) DeriveTrend15Min(s *models.IndicatorSnapshot) models.TrendDirection {
	t := e.params.Trend
	if s.Trend15MinRaw == models.DirUp || s.Trend15MinRaw == models.DirDown {
		return s.Trend15MinRaw
	}
	switch s.EMAAlignment {
	case models.EMAAllBullish, models.EMAPartialBullish:
		return models.DirUp
	case models.EMAAllBearish, models.EMAPartialBearish:
		return models.DirDown
	}
	switch s.TrendStructure {
	case models.HigherHighsLows:
		return models.DirUp
	case models.LowerHighsLows:
		return models.DirDown
	}
	switch s.TrendColor {
	case models.TrendBullish:
		return models.DirUp
	case models.TrendBearish:
		return models.DirDown
	}
	switch s.TrendMapped {
	case models.MappedUptrend:
		return models.DirUp
	case models.MappedDowntrend:
		return models.DirDown
	}
	if s.SARTrend == models.TrendBullish && s.ChangePercent > t.SARChangePct {
		return models.DirUp
	}
	if s.SARTrend == models.TrendBearish && s.ChangePercent < -t.SARChangePct {
		return models.DirDown
	}
	return models.DirNeutral
}

func bandVerdict(v, up, down float64) models.TrendDirection {
	switch {
	case v >= up:
		return models.DirUp
	case v <= down:
		return models.DirDown
	default:
		return models.DirNeutral
	}
}
