package engine

import (
	"math"

	"IndexPulse/internal/domain/models"
)

// Aggregate sums the factor votes into a total score, maps the score to a
// discrete action via fixed thresholds and derives a confidence percentage
// through a second, branch-keyed mapping. Confidence is deliberately not a
// linear function of the score alone.
func (e *Engine) Aggregate(factors []models.Factor, status models.MarketStatus) (models.Action, int, float64) {
	sum := 0.0
	for _, f := range factors {
		sum += f.Value
	}
	total := math.Round(sum)
	abs := math.Abs(total)

	sc := e.params.Score
	cf := e.params.Confidence

	var action models.Action
	var conf float64
	switch {
	case total >= sc.StrongZone:
		action = models.ActionStrongBuy
		conf = math.Min(cf.StrongCap, cf.StrongBase+(abs-sc.StrongZone)*cf.StrongSlope)
	case total >= sc.TradeZone:
		action = models.ActionBuy
		conf = math.Min(cf.TradeCap, cf.TradeBase+(abs-sc.TradeZone)*cf.TradeSlope)
	case total <= -sc.StrongZone:
		action = models.ActionStrongSell
		conf = math.Min(cf.StrongCap, cf.StrongBase+(abs-sc.StrongZone)*cf.StrongSlope)
	case total <= -sc.TradeZone:
		action = models.ActionSell
		conf = math.Min(cf.TradeCap, cf.TradeBase+(abs-sc.TradeZone)*cf.TradeSlope)
	case abs <= sc.NoTradeBand:
		action = models.ActionNoTrade
		conf = cf.NoTrade
	default:
		action = models.ActionSideways
		conf = cf.SidewaysBase + abs*cf.SidewaysSlope
	}

	if status != models.MarketLive {
		conf = math.Max(cf.Floor, conf-cf.OffMarketPenalty)
	}

	return action, int(math.Round(conf)), total
}
