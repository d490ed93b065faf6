package engine

import (
	"math"
	"reflect"
	"testing"

	"IndexPulse/internal/domain/models"
)

func bullishSnapshot() models.IndicatorSnapshot {
	s := neutralSnapshot()
	s.SuperTrendTrend = models.TrendBullish   // +20
	s.RSIMomentumStatus = models.RSIStrong    // +15
	s.EMAAlignment = models.EMAAllBullish     // +15
	s.Price = 101
	s.VWAP = 100                              // +1.0% -> +12
	s.ChangePercent = 1.2                     // +12
	s.EMA200 = 95                             // well above -> +4
	s.SARTrend = models.TrendBullish          // +10
	s.SmartMoneySignal = models.ClassStrongBuy // +8
	s.CandleQualitySignal = models.ClassBuy   // +4
	s.VolumeStrength = "STRONG"               // +6
	return s
}

func bearishSnapshot() models.IndicatorSnapshot {
	s := neutralSnapshot()
	s.SuperTrendTrend = models.TrendBearish
	s.RSIMomentumStatus = models.RSIWeak
	s.EMAAlignment = models.EMAAllBearish
	s.Price = 99
	s.VWAP = 100
	s.ChangePercent = -1.2
	s.EMA200 = 105
	s.SARTrend = models.TrendBearish
	s.SmartMoneySignal = models.ClassStrongSell
	s.CandleQualitySignal = models.ClassSell
	s.VolumeStrength = "STRONG"
	return s
}

func TestEvaluateScenarioStrongBuy(t *testing.T) {
	e := Default()
	res := e.Evaluate(bullishSnapshot(), models.MarketLive)
	if res.TotalScore < 48 {
		t.Fatalf("expected total >= 48, got %v", res.TotalScore)
	}
	if res.Action != models.ActionStrongBuy {
		t.Fatalf("expected STRONG_BUY, got %s", res.Action)
	}
	if res.Confidence < 68 || res.Confidence > 95 {
		t.Fatalf("confidence %d outside [68,95]", res.Confidence)
	}
	if res.Trend5Min != models.DirUp || res.Trend15Min != models.DirUp {
		t.Fatalf("expected UP/UP trends, got %s/%s", res.Trend5Min, res.Trend15Min)
	}
	if res.Prediction.Direction != models.PredictUp {
		t.Fatalf("expected UP prediction, got %s", res.Prediction.Direction)
	}
	if res.Prediction.Confidence != res.Confidence {
		t.Fatalf("aligned timeframes must not discount prediction confidence")
	}
}

func TestEvaluateScenarioNeutral(t *testing.T) {
	e := Default()
	res := e.Evaluate(neutralSnapshot(), models.MarketLive)
	if res.TotalScore != 0 {
		t.Fatalf("expected total 0, got %v", res.TotalScore)
	}
	if res.Action != models.ActionNoTrade {
		t.Fatalf("expected NO_TRADE, got %s", res.Action)
	}
	if res.Confidence != 50 {
		t.Fatalf("expected confidence 50, got %d", res.Confidence)
	}

	res = e.Evaluate(neutralSnapshot(), models.MarketClosed)
	if res.Confidence != 35 {
		t.Fatalf("expected 50-15=35 off market, got %d", res.Confidence)
	}
}

func TestEvaluateScenarioStrongSell(t *testing.T) {
	e := Default()
	res := e.Evaluate(bearishSnapshot(), models.MarketLive)
	if res.TotalScore > -48 {
		t.Fatalf("expected total <= -48, got %v", res.TotalScore)
	}
	if res.Action != models.ActionStrongSell {
		t.Fatalf("expected STRONG_SELL, got %s", res.Action)
	}
	if res.Trend5Min != models.DirDown || res.Trend15Min != models.DirDown {
		t.Fatalf("expected DOWN/DOWN trends, got %s/%s", res.Trend5Min, res.Trend15Min)
	}
}

// Two evaluations of the same input must be bit-identical.
func TestEvaluateDeterministic(t *testing.T) {
	e := Default()
	for _, snap := range []models.IndicatorSnapshot{
		neutralSnapshot(), bullishSnapshot(), bearishSnapshot(),
	} {
		for _, st := range []models.MarketStatus{models.MarketLive, models.MarketFreeze} {
			a := e.Evaluate(snap, st)
			b := e.Evaluate(snap, st)
			if !reflect.DeepEqual(a, b) {
				t.Fatalf("evaluation not deterministic for %s/%s", snap.Symbol, st)
			}
		}
	}
}

// NaN and Inf inputs must degrade to sentinels, never reach the sum.
func TestEvaluateSanitizesNonFiniteInput(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	s.Price = math.NaN()
	s.ChangePercent = math.Inf(1)
	s.RSILive = math.NaN()
	s.RSI5MinRaw = math.Inf(-1)
	s.VWAP = math.NaN()
	s.EMA200 = math.Inf(1)
	s.Momentum = math.NaN()

	res := e.Evaluate(s, models.MarketLive)
	if math.IsNaN(res.TotalScore) || math.IsInf(res.TotalScore, 0) {
		t.Fatalf("non-finite total score %v", res.TotalScore)
	}
	for _, f := range res.Factors {
		if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) {
			t.Fatalf("factor %s leaked non-finite value", f.Name)
		}
	}
	if res.Confidence < 30 || res.Confidence > 95 {
		t.Fatalf("confidence %d outside [30,95]", res.Confidence)
	}
}

func TestEvaluateUnknownEnumsDegradeToNeutral(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	s.SuperTrendTrend = "MOONSHOT"
	s.EMAAlignment = "DIAGONAL"
	s.SmartMoneySignal = "YOLO"
	s.RSIMomentumStatus = "??"
	res := e.Evaluate(s, models.MarketLive)
	if res.TotalScore != 0 {
		t.Fatalf("unknown enums must score neutral, got total %v", res.TotalScore)
	}
	if res.Action != models.ActionNoTrade {
		t.Fatalf("expected NO_TRADE, got %s", res.Action)
	}
}

func TestEvaluateAlwaysReturnsTenFactors(t *testing.T) {
	e := Default()
	res := e.Evaluate(models.IndicatorSnapshot{}, models.MarketOffline)
	if len(res.Factors) != 10 {
		t.Fatalf("expected 10 factors on an empty snapshot, got %d", len(res.Factors))
	}
}

func TestEvaluatePredictionConflictPath(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	s.Trend5MinRaw = models.DirUp
	s.Trend15MinRaw = models.DirDown
	res := e.Evaluate(s, models.MarketLive)
	if res.Prediction.ContextNote != NoteConflict {
		t.Fatalf("expected conflict note, got %q", res.Prediction.ContextNote)
	}
	if res.Prediction.Confidence != res.Confidence-12 && res.Prediction.Confidence != 30 {
		t.Fatalf("conflict penalty not applied: signal %d prediction %d", res.Confidence, res.Prediction.Confidence)
	}
}

func TestDefaultParamsMatchSpecWeights(t *testing.T) {
	p := DefaultParams()
	if p.Weights.SuperTrend != 20 || p.Weights.RSI != 15 || p.Weights.EMAStack != 15 ||
		p.Weights.VWAP != 15 || p.Weights.DayChange != 12 || p.Weights.EMA200 != 8 ||
		p.Weights.SAR != 10 || p.Weights.SmartMoney != 8 || p.Weights.CandleQuality != 7 ||
		p.Weights.Volume != 6 {
		t.Fatalf("default factor weights drifted: %+v", p.Weights)
	}
	if p.Score.StrongZone != 48 || p.Score.TradeZone != 18 || p.Score.NoTradeBand != 8 {
		t.Fatalf("default score thresholds drifted: %+v", p.Score)
	}
	if p.Confidence.StrongSlope != 0.54 || p.Confidence.TradeSlope != 1.07 {
		t.Fatalf("default confidence slopes drifted: %+v", p.Confidence)
	}
}
