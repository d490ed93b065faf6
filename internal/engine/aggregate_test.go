package engine

import (
	"testing"

	"IndexPulse/internal/domain/models"
)

func fixedFactors(total float64) []models.Factor {
	return []models.Factor{{Name: "fixed", Value: total, MaxAbs: 120}}
}

func TestAggregateActionThresholds(t *testing.T) {
	e := Default()
	cases := []struct {
		total float64
		want  models.Action
	}{
		{116, models.ActionStrongBuy},
		{48, models.ActionStrongBuy},
		{47, models.ActionBuy},
		{18, models.ActionBuy},
		{17, models.ActionSideways},
		{9, models.ActionSideways},
		{8, models.ActionNoTrade},
		{0, models.ActionNoTrade},
		{-8, models.ActionNoTrade},
		{-9, models.ActionSideways},
		{-17, models.ActionSideways},
		{-18, models.ActionSell},
		{-47, models.ActionSell},
		{-48, models.ActionStrongSell},
		{-116, models.ActionStrongSell},
	}
	for _, c := range cases {
		action, _, total := e.Aggregate(fixedFactors(c.total), models.MarketLive)
		if action != c.want {
			t.Errorf("total %v: expected %s, got %s", c.total, c.want, action)
		}
		if total != c.total {
			t.Errorf("total %v: rounded total mismatch, got %v", c.total, total)
		}
	}
}

func TestAggregateConfidenceMapping(t *testing.T) {
	e := Default()
	cases := []struct {
		total float64
		want  int
	}{
		{48, 68},   // strong base
		{98, 95},   // 68 + 50*0.54 = 95, at the cap
		{116, 95},  // capped
		{18, 52},   // trade base
		{38, 73},   // 52 + 20*1.07 = 73.4
		{47, 83},   // 52 + 29*1.07 = 83.03
		{0, 50},    // no-trade fixed
		{17, 51},   // 42 + 17*0.5 = 50.5
		{10, 47},   // 42 + 5
		{-48, 68},  // symmetric
		{-47, 83},
	}
	for _, c := range cases {
		_, conf, _ := e.Aggregate(fixedFactors(c.total), models.MarketLive)
		if conf != c.want {
			t.Errorf("total %v: expected confidence %d, got %d", c.total, c.want, conf)
		}
	}
}

func TestAggregateOffMarketPenalty(t *testing.T) {
	e := Default()
	for _, status := range []models.MarketStatus{
		models.MarketClosed, models.MarketOffline, models.MarketPreOpen, models.MarketFreeze,
	} {
		_, conf, _ := e.Aggregate(fixedFactors(0), status)
		if conf != 35 {
			t.Errorf("status %s: expected 50-15=35, got %d", status, conf)
		}
	}
	// penalty cannot push confidence under the floor
	_, conf, _ := e.Aggregate(fixedFactors(10), models.MarketClosed)
	if conf < 30 {
		t.Fatalf("confidence %d under floor", conf)
	}
}

// Confidence under LIVE is never lower than under any non-LIVE status.
func TestAggregateMarketStatusMonotonicity(t *testing.T) {
	e := Default()
	totals := []float64{-116, -48, -30, -18, -10, -8, 0, 8, 10, 18, 30, 48, 116}
	statuses := []models.MarketStatus{
		models.MarketClosed, models.MarketOffline, models.MarketPreOpen, models.MarketFreeze,
	}
	for _, total := range totals {
		_, live, _ := e.Aggregate(fixedFactors(total), models.MarketLive)
		for _, st := range statuses {
			_, off, _ := e.Aggregate(fixedFactors(total), st)
			if off > live {
				t.Errorf("total %v status %s: off-market confidence %d exceeds live %d", total, st, off, live)
			}
		}
	}
}

func TestAggregateConfidenceBounds(t *testing.T) {
	e := Default()
	for total := -120.0; total <= 120; total++ {
		for _, st := range []models.MarketStatus{models.MarketLive, models.MarketClosed} {
			_, conf, _ := e.Aggregate(fixedFactors(total), st)
			if conf < 30 || conf > 95 {
				t.Fatalf("total %v status %s: confidence %d outside [30,95]", total, st, conf)
			}
		}
	}
}

func TestAggregateRoundsFractionalSum(t *testing.T) {
	e := Default()
	factors := []models.Factor{
		{Value: 0.4}, {Value: 0.3}, // sums to 0.7, rounds to 1
	}
	_, _, total := e.Aggregate(factors, models.MarketLive)
	if total != 1 {
		t.Fatalf("expected rounded total 1, got %v", total)
	}
}
