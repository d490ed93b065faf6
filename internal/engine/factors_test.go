package engine

import (
	"testing"

	"IndexPulse/internal/domain/models"
)

// neutralSnapshot returns a snapshot where every field sits at its documented
// neutral sentinel. Every factor must score zero on it.
func neutralSnapshot() models.IndicatorSnapshot {
	return models.IndicatorSnapshot{
		Symbol:          "NIFTY",
		Price:           100,
		ChangePercent:   0,
		RSILive:         50,
		RSI5MinRaw:      50,
		RSI15MinRaw:     50,
		EMAAlignment:    models.EMANeutral,
		VWAPPosition:    models.AtVWAP,
		SuperTrendTrend: models.TrendNeutral,
		SARTrend:        models.TrendNeutral,
		TrendStructure:  models.SidewaysRange,
		TrendColor:      models.TrendNeutral,
		TrendMapped:     models.MappedSideways,
		SmartMoneySignal:    models.ClassNeutral,
		CandleQualitySignal: models.ClassNeutral,
		Momentum:        50,
	}
}

func factorByName(t *testing.T, factors []models.Factor, name string) models.Factor {
	t.Helper()
	for _, f := range factors {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("factor %q not found", name)
	return models.Factor{}
}

func TestScoreFactorsNeutralAllZero(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	factors := e.ScoreFactors(&s)
	if len(factors) != 10 {
		t.Fatalf("expected 10 factors, got %d", len(factors))
	}
	for _, f := range factors {
		if f.Value != 0 {
			t.Errorf("factor %s: expected 0 on neutral snapshot, got %v", f.Name, f.Value)
		}
	}
}

func TestScoreFactorsOrderFixed(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	want := []string{
		FactorSuperTrend, FactorRSI, FactorEMAStack, FactorVWAP, FactorDayChange,
		FactorEMA200, FactorSAR, FactorSmartMoney, FactorCandleQuality, FactorVolume,
	}
	factors := e.ScoreFactors(&s)
	for i, f := range factors {
		if f.Name != want[i] {
			t.Errorf("factor %d: expected %s, got %s", i, want[i], f.Name)
		}
	}
}

func TestSuperTrendFactor(t *testing.T) {
	e := Default()
	cases := []struct {
		trend models.TrendState
		want  float64
	}{
		{models.TrendBullish, 20},
		{models.TrendBearish, -20},
		{models.TrendNeutral, 0},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.SuperTrendTrend = c.trend
		f := factorByName(t, e.ScoreFactors(&s), FactorSuperTrend)
		if f.Value != c.want {
			t.Errorf("supertrend %s: expected %v, got %v", c.trend, c.want, f.Value)
		}
	}
}

func TestRSIFactorStatusPriority(t *testing.T) {
	e := Default()
	cases := []struct {
		status models.RSIMomentumStatus
		want   float64
	}{
		{models.RSIStrong, 15},
		{models.RSIOverbought, 6},
		{models.RSIWeak, -15},
		{models.RSIOversold, -8},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.RSIMomentumStatus = c.status
		// contradictory raw values must not matter when the status is explicit
		s.RSI5MinRaw = 10
		s.RSI15MinRaw = 10
		f := factorByName(t, e.ScoreFactors(&s), FactorRSI)
		if f.Value != c.want {
			t.Errorf("rsi status %s: expected %v, got %v", c.status, c.want, f.Value)
		}
	}
}

func TestRSIFactorBlend(t *testing.T) {
	e := Default()
	cases := []struct {
		rsi5, rsi15 float64
		want        float64
	}{
		{70, 60, 10},  // round((0.6*20 + 0.4*10) * 0.6) = round(9.6)
		{20, 30, -15}, // round(-15.6) clamped to -15
		{50, 50, 0},   // sentinel, no candle cache
		{100, 100, 15},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.RSI5MinRaw = c.rsi5
		s.RSI15MinRaw = c.rsi15
		f := factorByName(t, e.ScoreFactors(&s), FactorRSI)
		if f.Value != c.want {
			t.Errorf("rsi blend %v/%v: expected %v, got %v", c.rsi5, c.rsi15, c.want, f.Value)
		}
	}
}

func TestEMAStackFactor(t *testing.T) {
	e := Default()
	cases := []struct {
		align models.EMAAlignment
		want  float64
	}{
		{models.EMAAllBullish, 15},
		{models.EMAPartialBullish, 8},
		{models.EMAAllBearish, -15},
		{models.EMAPartialBearish, -8},
		{models.EMANeutral, 0},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.EMAAlignment = c.align
		f := factorByName(t, e.ScoreFactors(&s), FactorEMAStack)
		if f.Value != c.want {
			t.Errorf("ema %s: expected %v, got %v", c.align, c.want, f.Value)
		}
	}
}

func TestVWAPFactorDistance(t *testing.T) {
	e := Default()
	cases := []struct {
		price, vwap float64
		want        float64
	}{
		{101, 100, 12},  // +1.00% * 12
		{99, 100, -12},  // -1.00% * 12
		{110, 100, 15},  // +10% clamps at the max weight
		{90, 100, -15},
		{100.5, 100, 6}, // +0.50% * 12
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.Price = c.price
		s.VWAP = c.vwap
		f := factorByName(t, e.ScoreFactors(&s), FactorVWAP)
		if f.Value != c.want {
			t.Errorf("vwap %v/%v: expected %v, got %v", c.price, c.vwap, c.want, f.Value)
		}
	}
}

func TestVWAPFactorCoarseFallback(t *testing.T) {
	e := Default()
	cases := []struct {
		pos  models.VWAPPosition
		want float64
	}{
		{models.AboveVWAP, 10},
		{models.BelowVWAP, -10},
		{models.AtVWAP, 0},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.VWAP = 0 // level unknown, only the classification survives
		s.VWAPPosition = c.pos
		f := factorByName(t, e.ScoreFactors(&s), FactorVWAP)
		if f.Value != c.want {
			t.Errorf("vwap position %s: expected %v, got %v", c.pos, c.want, f.Value)
		}
	}
}

func TestDayChangeFactorPiecewise(t *testing.T) {
	e := Default()
	cases := []struct {
		change float64
		want   float64
	}{
		{-1.5, -12},
		{-1.0, -12},
		{-0.7, -9},
		{-0.5, -9},
		{-0.3, -5},
		{-0.2, -5},
		{-0.1, -0.4}, // inside the band: change * 4
		{0, 0},
		{0.1, 0.4},
		{0.2, 5},
		{0.5, 9},
		{1.0, 12},
		{2.4, 12},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.ChangePercent = c.change
		f := factorByName(t, e.ScoreFactors(&s), FactorDayChange)
		if f.Value != c.want {
			t.Errorf("change %v: expected %v, got %v", c.change, c.want, f.Value)
		}
	}
}

func TestEMA200Factor(t *testing.T) {
	e := Default()
	cases := []struct {
		price, ema200 float64
		want          float64
	}{
		{99.4, 100, -8}, // -0.6%, clearly below
		{99.6, 100, -4}, // -0.4%, just below
		{100, 100, 0},   // exactly at: no structural bullish inflation
		{100.5, 100, 0}, // just above: the common index state
		{101.5, 100, 4}, // +1.5%, confirmed well above
		{100, 0, 0},     // unknown level
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.Price = c.price
		s.EMA200 = c.ema200
		f := factorByName(t, e.ScoreFactors(&s), FactorEMA200)
		if f.Value != c.want {
			t.Errorf("ema200 price=%v ema=%v: expected %v, got %v", c.price, c.ema200, c.want, f.Value)
		}
	}
}

func TestSARFactor(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	s.SARTrend = models.TrendBullish
	if f := factorByName(t, e.ScoreFactors(&s), FactorSAR); f.Value != 10 {
		t.Errorf("sar bullish: expected 10, got %v", f.Value)
	}
	s.SARTrend = models.TrendBearish
	if f := factorByName(t, e.ScoreFactors(&s), FactorSAR); f.Value != -10 {
		t.Errorf("sar bearish: expected -10, got %v", f.Value)
	}
}

func TestClassSignalFactors(t *testing.T) {
	e := Default()
	cases := []struct {
		class      models.ClassSignal
		smartMoney float64
		candle     float64
	}{
		{models.ClassStrongBuy, 8, 7},
		{models.ClassBuy, 5, 4},
		{models.ClassNeutral, 0, 0},
		{models.ClassSell, -5, -4},
		{models.ClassStrongSell, -8, -7},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.SmartMoneySignal = c.class
		s.CandleQualitySignal = c.class
		factors := e.ScoreFactors(&s)
		if f := factorByName(t, factors, FactorSmartMoney); f.Value != c.smartMoney {
			t.Errorf("smart money %s: expected %v, got %v", c.class, c.smartMoney, f.Value)
		}
		if f := factorByName(t, factors, FactorCandleQuality); f.Value != c.candle {
			t.Errorf("candle quality %s: expected %v, got %v", c.class, c.candle, f.Value)
		}
	}
}

func TestVolumeFactor(t *testing.T) {
	e := Default()
	cases := []struct {
		change   float64
		strength string
		want     float64
	}{
		{0.5, "STRONG", 6},
		{-0.5, "STRONG VOLUME", -6},
		{0.5, "HIGH", 6},
		{0.5, "ABOVE AVERAGE", 3},
		{-0.5, "ABOVE", -3},
		{0.5, "WEAK", -2}, // weak volume opposes the move's conviction
		{-0.5, "LOW", 2},
		{0.5, "", 0},
		{0, "STRONG", 0}, // no move, nothing to confirm
	}
	for _, c := range cases {
		s := neutralSnapshot()
		s.ChangePercent = c.change
		s.VolumeStrength = c.strength
		f := factorByName(t, e.ScoreFactors(&s), FactorVolume)
		if f.Value != c.want {
			t.Errorf("volume %q change=%v: expected %v, got %v", c.strength, c.change, c.want, f.Value)
		}
	}
}

// Every factor must respect its declared bound, even on absurd inputs.
func TestFactorBoundsExtremeInputs(t *testing.T) {
	e := Default()
	snapshots := []models.IndicatorSnapshot{
		func() models.IndicatorSnapshot {
			s := neutralSnapshot()
			s.Price = 1000
			s.VWAP = 1
			s.EMA200 = 1
			s.ChangePercent = 500
			s.RSI5MinRaw = 100
			s.RSI15MinRaw = 100
			s.VolumeStrength = "STRONG"
			return s
		}(),
		func() models.IndicatorSnapshot {
			s := neutralSnapshot()
			s.Price = 1
			s.VWAP = 1000
			s.EMA200 = 1000
			s.ChangePercent = -500
			s.RSI5MinRaw = 1
			s.RSI15MinRaw = 1
			s.VolumeStrength = "LOW"
			return s
		}(),
	}
	for i, s := range snapshots {
		for _, f := range e.ScoreFactors(&s) {
			if f.Value > f.MaxAbs || f.Value < -f.MaxAbs {
				t.Errorf("snapshot %d factor %s: value %v outside ±%v", i, f.Name, f.Value, f.MaxAbs)
			}
		}
	}
}
