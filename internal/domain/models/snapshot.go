package models

import (
	"math"
	"time"
)

// MarketStatus is the session state reported by the market-data backend.
type MarketStatus string

const (
	MarketLive    MarketStatus = "LIVE"
	MarketClosed  MarketStatus = "CLOSED"
	MarketOffline MarketStatus = "OFFLINE"
	MarketPreOpen MarketStatus = "PRE_OPEN"
	MarketFreeze  MarketStatus = "FREEZE"
)

// NormalizeMarketStatus maps raw backend strings to a known status.
// Unrecognized values degrade to OFFLINE, the most conservative session state.
func NormalizeMarketStatus(s string) MarketStatus {
	switch MarketStatus(s) {
	case MarketLive, MarketClosed, MarketOffline, MarketPreOpen, MarketFreeze:
		return MarketStatus(s)
	default:
		return MarketOffline
	}
}

// TrendState is a generic bull/bear/neutral indicator state (SuperTrend, SAR, trend color).
type TrendState string

const (
	TrendBullish TrendState = "BULLISH"
	TrendBearish TrendState = "BEARISH"
	TrendNeutral TrendState = "NEUTRAL"
)

// EMAAlignment describes the relative ordering of the EMA stack (e.g. 9/20/50).
type EMAAlignment string

const (
	EMAAllBullish     EMAAlignment = "ALL_BULLISH"
	EMAPartialBullish EMAAlignment = "PARTIAL_BULLISH"
	EMAAllBearish     EMAAlignment = "ALL_BEARISH"
	EMAPartialBearish EMAAlignment = "PARTIAL_BEARISH"
	EMANeutral        EMAAlignment = "NEUTRAL"
)

// VWAPPosition is the coarse price-vs-VWAP classification used when the VWAP level itself is unknown.
type VWAPPosition string

const (
	AboveVWAP VWAPPosition = "ABOVE_VWAP"
	BelowVWAP VWAPPosition = "BELOW_VWAP"
	AtVWAP    VWAPPosition = "AT_VWAP"
)

// TrendStructure classifies swing structure on the 15-minute frame.
type TrendStructure string

const (
	HigherHighsLows TrendStructure = "HIGHER_HIGHS_LOWS"
	LowerHighsLows  TrendStructure = "LOWER_HIGHS_LOWS"
	SidewaysRange   TrendStructure = "SIDEWAYS"
)

// MappedTrend is the backend's own trend classification, used as a 15m fallback proxy.
type MappedTrend string

const (
	MappedUptrend   MappedTrend = "UPTREND"
	MappedDowntrend MappedTrend = "DOWNTREND"
	MappedSideways  MappedTrend = "SIDEWAYS"
)

// ClassSignal is a pre-classified 5-level categorical signal (smart money, candle quality).
type ClassSignal string

const (
	ClassStrongBuy  ClassSignal = "STRONG_BUY"
	ClassBuy        ClassSignal = "BUY"
	ClassNeutral    ClassSignal = "NEUTRAL"
	ClassSell       ClassSignal = "SELL"
	ClassStrongSell ClassSignal = "STRONG_SELL"
)

// RSIMomentumStatus is the backend's explicit momentum-RSI classification.
// Empty string means not supplied.
type RSIMomentumStatus string

const (
	RSIStrong     RSIMomentumStatus = "STRONG"
	RSIOverbought RSIMomentumStatus = "OVERBOUGHT"
	RSINeutral    RSIMomentumStatus = "NEUTRAL"
	RSIWeak       RSIMomentumStatus = "WEAK"
	RSIOversold   RSIMomentumStatus = "OVERSOLD"
	RSIDivergence RSIMomentumStatus = "DIVERGENCE"
)

// TrendDirection is a directional call on a single timeframe.
type TrendDirection string

const (
	DirUp      TrendDirection = "UP"
	DirDown    TrendDirection = "DOWN"
	DirNeutral TrendDirection = "NEUTRAL"
)

// RSISentinel marks a candle-derived RSI with no candle cache behind it.
const RSISentinel = 50.0

// IndicatorSnapshot is the flat bundle of latest indicator values for one symbol.
// Every numeric field has a documented neutral sentinel (0, 50 or "") so the
// engine can evaluate partial data without failing.
type IndicatorSnapshot struct {
	Symbol    string
	Timestamp time.Time

	Price         float64
	ChangePercent float64

	RSILive           float64
	RSI5MinRaw        float64 // 50 = no candle cache yet
	RSI15MinRaw       float64 // 50 = no candle cache yet
	RSIMomentumStatus RSIMomentumStatus

	EMAAlignment EMAAlignment
	VWAP         float64 // 0 = unknown
	VWAPPosition VWAPPosition
	EMA200       float64 // 0 = unknown

	SuperTrendTrend TrendState
	SARTrend        TrendState
	TrendStructure  TrendStructure
	TrendColor      TrendState
	TrendMapped     MappedTrend

	SmartMoneySignal    ClassSignal
	CandleQualitySignal ClassSignal
	VolumeStrength      string // free-form; substrings STRONG/HIGH/WEAK/LOW/ABOVE carry meaning

	Support    float64 // 0 = unknown
	Resistance float64 // 0 = unknown
	Momentum   float64 // 0-100 scale, 50 = neutral

	// Explicit backend overrides for the dual-timeframe trend; "" when absent.
	Trend5MinRaw  TrendDirection
	Trend15MinRaw TrendDirection
}

// Sanitize normalizes a snapshot in place so the scoring engine only ever sees
// finite numbers and recognized enum values. Anything malformed collapses to
// its neutral sentinel rather than propagating through the factor sum.
func (s *IndicatorSnapshot) Sanitize() {
	s.Price = finiteOr(s.Price, 0)
	s.ChangePercent = finiteOr(s.ChangePercent, 0)
	s.VWAP = finiteOr(s.VWAP, 0)
	s.EMA200 = finiteOr(s.EMA200, 0)
	s.Support = finiteOr(s.Support, 0)
	s.Resistance = finiteOr(s.Resistance, 0)

	s.RSILive = sanitizeRSI(s.RSILive)
	s.RSI5MinRaw = sanitizeRSI(s.RSI5MinRaw)
	s.RSI15MinRaw = sanitizeRSI(s.RSI15MinRaw)
	s.Momentum = sanitizeRSI(s.Momentum)

	switch s.RSIMomentumStatus {
	case RSIStrong, RSIOverbought, RSINeutral, RSIWeak, RSIOversold, RSIDivergence, "":
	default:
		s.RSIMomentumStatus = ""
	}
	switch s.EMAAlignment {
	case EMAAllBullish, EMAPartialBullish, EMAAllBearish, EMAPartialBearish:
	default:
		s.EMAAlignment = EMANeutral
	}
	switch s.VWAPPosition {
	case AboveVWAP, BelowVWAP:
	default:
		s.VWAPPosition = AtVWAP
	}
	s.SuperTrendTrend = sanitizeTrendState(s.SuperTrendTrend)
	s.SARTrend = sanitizeTrendState(s.SARTrend)
	s.TrendColor = sanitizeTrendState(s.TrendColor)
	switch s.TrendStructure {
	case HigherHighsLows, LowerHighsLows:
	default:
		s.TrendStructure = SidewaysRange
	}
	switch s.TrendMapped {
	case MappedUptrend, MappedDowntrend:
	default:
		s.TrendMapped = MappedSideways
	}
	s.SmartMoneySignal = sanitizeClassSignal(s.SmartMoneySignal)
	s.CandleQualitySignal = sanitizeClassSignal(s.CandleQualitySignal)
	switch s.Trend5MinRaw {
	case DirUp, DirDown:
	default:
		s.Trend5MinRaw = ""
	}
	switch s.Trend15MinRaw {
	case DirUp, DirDown:
	default:
		s.Trend15MinRaw = ""
	}
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// sanitizeRSI maps a 0-100 oscillator value to its valid range. Non-finite or
// non-positive values collapse to the 50 neutral sentinel; a genuine RSI of
// exactly 0 does not occur on index data.
func sanitizeRSI(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return RSISentinel
	}
	if v > 100 {
		return 100
	}
	return v
}

func sanitizeTrendState(t TrendState) TrendState {
	switch t {
	case TrendBullish, TrendBearish:
		return t
	default:
		return TrendNeutral
	}
}

func sanitizeClassSignal(c ClassSignal) ClassSignal {
	switch c {
	case ClassStrongBuy, ClassBuy, ClassSell, ClassStrongSell:
		return c
	default:
		return ClassNeutral
	}
}
