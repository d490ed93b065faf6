package engine

import (
	"fmt"
	"math"
	"strings"

	"IndexPulse/internal/domain/models"
)

// Factor names, in the fixed display order the dashboard expects.
const (
	FactorSuperTrend    = "SuperTrend"
	FactorRSI           = "RSI Dual-TF"
	FactorEMAStack      = "EMA Stack"
	FactorVWAP          = "VWAP"
	FactorDayChange     = "Day Change"
	FactorEMA200        = "EMA-200"
	FactorSAR           = "Parabolic SAR"
	FactorSmartMoney    = "Smart Money"
	FactorCandleQuality = "Candle Quality"
	FactorVolume        = "Volume Conviction"
)

// ScoreFactors maps the snapshot to exactly 10 bounded factor votes.
// Order is fixed for display; the total is commutative so it only matters
// for the breakdown shown on the card.
func (e *Engine) ScoreFactors(s *models.IndicatorSnapshot) []models.Factor {
	return []models.Factor{
		e.scoreSuperTrend(s),
		e.scoreRSI(s),
		e.scoreEMAStack(s),
		e.scoreVWAP(s),
		e.scoreDayChange(s),
		e.scoreEMA200(s),
		e.scoreSAR(s),
		e.scoreSmartMoney(s),
		e.scoreCandleQuality(s),
		e.scoreVolume(s),
	}
}

func (e *Engine) scoreSuperTrend(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.SuperTrend
	f := models.Factor{Name: FactorSuperTrend, MaxAbs: w}
	switch s.SuperTrendTrend {
	case models.TrendBullish:
		f.Value = w
		f.Label = "SuperTrend bullish"
	case models.TrendBearish:
		f.Value = -w
		f.Label = "SuperTrend bearish"
	default:
		f.Label = "SuperTrend flat"
	}
	return f
}

// scoreRSI prefers the backend's explicit momentum classification and falls
// back to a dual-timeframe blend of the raw candle RSIs around the 50 line.
func (e *Engine) scoreRSI(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.RSI
	v := e.params.RSIVotes
	f := models.Factor{Name: FactorRSI, MaxAbs: w}
	switch s.RSIMomentumStatus {
	case models.RSIStrong:
		f.Value = clamp(v.Strong, w)
		f.Label = "RSI momentum strong"
		return f
	case models.RSIOverbought:
		f.Value = clamp(v.Overbought, w)
		f.Label = "RSI overbought"
		return f
	case models.RSIWeak:
		f.Value = clamp(v.Weak, w)
		f.Label = "RSI momentum weak"
		return f
	case models.RSIOversold:
		f.Value = clamp(v.Oversold, w)
		f.Label = "RSI oversold"
		return f
	}
	// NEUTRAL, DIVERGENCE and absent statuses fall through to the raw blend.
	blend := v.Blend5Min*(s.RSI5MinRaw-50) + v.Blend15Min*(s.RSI15MinRaw-50)
	f.Value = clamp(math.Round(blend*v.BlendGain), w)
	switch {
	case f.Value > 0:
		f.Label = fmt.Sprintf("RSI 5m/15m leaning up (%.0f/%.0f)", s.RSI5MinRaw, s.RSI15MinRaw)
	case f.Value < 0:
		f.Label = fmt.Sprintf("RSI 5m/15m leaning down (%.0f/%.0f)", s.RSI5MinRaw, s.RSI15MinRaw)
	default:
		f.Label = "RSI balanced"
	}
	return f
}

func (e *Engine) scoreEMAStack(s *models.IndicatorSnapshot) models.Factor {
	full := e.params.Weights.EMAStack
	part := e.params.Weights.EMAPartial
	f := models.Factor{Name: FactorEMAStack, MaxAbs: full}
	switch s.EMAAlignment {
	case models.EMAAllBullish:
		f.Value = full
		f.Label = "EMA stack fully bullish"
	case models.EMAPartialBullish:
		f.Value = part
		f.Label = "EMA stack partially bullish"
	case models.EMAAllBearish:
		f.Value = -full
		f.Label = "EMA stack fully bearish"
	case models.EMAPartialBearish:
		f.Value = -part
		f.Label = "EMA stack partially bearish"
	default:
		f.Label = "EMA stack mixed"
	}
	return f
}

// scoreVWAP uses the exact distance when the VWAP level is known, otherwise a
// coarse vote from the backend's position classification.
func (e *Engine) scoreVWAP(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.VWAP
	v := e.params.VWAPVotes
	f := models.Factor{Name: FactorVWAP, MaxAbs: w}
	if s.VWAP > 0 && s.Price > 0 {
		distPct := (s.Price - s.VWAP) / s.VWAP * 100
		f.Value = clamp(math.Round(distPct*v.DistanceGain), w)
		f.Label = fmt.Sprintf("%.2f%% from VWAP", distPct)
		return f
	}
	switch s.VWAPPosition {
	case models.AboveVWAP:
		f.Value = clamp(v.CoarseVote, w)
		f.Label = "trading above VWAP"
	case models.BelowVWAP:
		f.Value = clamp(-v.CoarseVote, w)
		f.Label = "trading below VWAP"
	default:
		f.Label = "at VWAP"
	}
	return f
}

func (e *Engine) scoreDayChange(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.DayChange
	d := e.params.DayChange
	f := models.Factor{Name: FactorDayChange, MaxAbs: w}
	ch := s.ChangePercent
	switch {
	case ch <= -d.StrongPct:
		f.Value = -d.StrongVote
	case ch <= -d.MediumPct:
		f.Value = -d.MediumVote
	case ch <= -d.LightPct:
		f.Value = -d.LightVote
	case ch >= d.StrongPct:
		f.Value = d.StrongVote
	case ch >= d.MediumPct:
		f.Value = d.MediumVote
	case ch >= d.LightPct:
		f.Value = d.LightVote
	default:
		f.Value = ch * d.Slope
	}
	f.Value = clamp(f.Value, w)
	f.Label = fmt.Sprintf("day change %+.2f%%", ch)
	return f
}

// scoreEMA200 only penalizes a confirmed break below the 200 EMA and only
// rewards a clear margin above it. Sitting just above, the common state for
// indices, scores zero so the factor does not structurally inflate bullish bias.
func (e *Engine) scoreEMA200(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.EMA200
	p := e.params.EMA200
	f := models.Factor{Name: FactorEMA200, MaxAbs: w}
	if s.EMA200 <= 0 || s.Price <= 0 {
		f.Label = "EMA-200 unavailable"
		return f
	}
	distPct := (s.Price - s.EMA200) / s.EMA200 * 100
	switch {
	case distPct <= -p.HardBreakPct:
		f.Value = clamp(-p.HardPenalty, w)
		f.Label = "broken below EMA-200"
	case distPct < 0:
		f.Value = clamp(-p.SoftPenalty, w)
		f.Label = "slipping under EMA-200"
	case distPct >= p.ClearAbovePct:
		f.Value = clamp(p.Reward, w)
		f.Label = "well above EMA-200"
	default:
		f.Label = "holding above EMA-200"
	}
	return f
}

func (e *Engine) scoreSAR(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.SAR
	f := models.Factor{Name: FactorSAR, MaxAbs: w}
	switch s.SARTrend {
	case models.TrendBullish:
		f.Value = w
		f.Label = "SAR bullish"
	case models.TrendBearish:
		f.Value = -w
		f.Label = "SAR bearish"
	default:
		f.Label = "SAR flat"
	}
	return f
}

func (e *Engine) scoreSmartMoney(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.SmartMoney
	lean := e.params.Weights.SmartMoneyLean
	f := models.Factor{Name: FactorSmartMoney, MaxAbs: w}
	f.Value = clamp(classVote(s.SmartMoneySignal, w, lean), w)
	f.Label = classLabel("smart money", s.SmartMoneySignal)
	return f
}

func (e *Engine) scoreCandleQuality(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.CandleQuality
	lean := e.params.Weights.CandleLean
	f := models.Factor{Name: FactorCandleQuality, MaxAbs: w}
	f.Value = clamp(classVote(s.CandleQualitySignal, w, lean), w)
	f.Label = classLabel("candle quality", s.CandleQualitySignal)
	return f
}

// scoreVolume confirms or opposes the day's move: strong volume backs the
// direction of changePercent, weak volume votes against its conviction.
func (e *Engine) scoreVolume(s *models.IndicatorSnapshot) models.Factor {
	w := e.params.Weights.Volume
	f := models.Factor{Name: FactorVolume, MaxAbs: w}
	dir := sign(s.ChangePercent)
	if dir == 0 {
		f.Label = "no directional move to confirm"
		return f
	}
	vs := strings.ToUpper(s.VolumeStrength)
	switch {
	case strings.Contains(vs, "STRONG") || strings.Contains(vs, "HIGH"):
		f.Value = clamp(dir*w, w)
		f.Label = "strong volume confirms move"
	case strings.Contains(vs, "ABOVE"):
		f.Value = clamp(dir*e.params.Weights.VolumeAbove, w)
		f.Label = "above-average volume"
	case strings.Contains(vs, "WEAK") || strings.Contains(vs, "LOW"):
		f.Value = clamp(-dir*e.params.Weights.VolumeOppose, w)
		f.Label = "weak volume undercuts move"
	default:
		f.Label = "volume unclassified"
	}
	return f
}

func classVote(c models.ClassSignal, full, lean float64) float64 {
	switch c {
	case models.ClassStrongBuy:
		return full
	case models.ClassBuy:
		return lean
	case models.ClassSell:
		return -lean
	case models.ClassStrongSell:
		return -full
	default:
		return 0
	}
}

func classLabel(kind string, c models.ClassSignal) string {
	switch c {
	case models.ClassStrongBuy:
		return kind + " strongly buying"
	case models.ClassBuy:
		return kind + " buying"
	case models.ClassSell:
		return kind + " selling"
	case models.ClassStrongSell:
		return kind + " strongly selling"
	default:
		return kind + " neutral"
	}
}

func clamp(v, maxAbs float64) float64 {
	if v > maxAbs {
		return maxAbs
	}
	if v < -maxAbs {
		return -maxAbs
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
