package engine

import (
	"testing"

	"IndexPulse/internal/domain/models"
)

func TestTrend5MinExplicitOverrideWins(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	s.Trend5MinRaw = models.DirUp
	s.SuperTrendTrend = models.TrendBearish // contradicts the override
	if got := e.DeriveTrend5Min(&s); got != models.DirUp {
		t.Fatalf("expected explicit override UP to win, got %s", got)
	}
}

func TestTrend5MinFallbackChain(t *testing.T) {
	e := Default()
	cases := []struct {
		name string
		mod  func(*models.IndicatorSnapshot)
		want models.TrendDirection
	}{
		{"supertrend bullish", func(s *models.IndicatorSnapshot) {
			s.SuperTrendTrend = models.TrendBullish
		}, models.DirUp},
		{"supertrend bearish", func(s *models.IndicatorSnapshot) {
			s.SuperTrendTrend = models.TrendBearish
		}, models.DirDown},
		{"rsi 5m up", func(s *models.IndicatorSnapshot) {
			s.RSI5MinRaw = 54
		}, models.DirUp},
		{"rsi 5m down", func(s *models.IndicatorSnapshot) {
			s.RSI5MinRaw = 46
		}, models.DirDown},
		{"rsi live up", func(s *models.IndicatorSnapshot) {
			s.RSILive = 58
		}, models.DirUp},
		{"rsi live down", func(s *models.IndicatorSnapshot) {
			s.RSILive = 42
		}, models.DirDown},
		{"momentum up", func(s *models.IndicatorSnapshot) {
			s.Momentum = 60
		}, models.DirUp},
		{"momentum down", func(s *models.IndicatorSnapshot) {
			s.Momentum = 40
		}, models.DirDown},
		{"change up", func(s *models.IndicatorSnapshot) {
			s.ChangePercent = 0.2
		}, models.DirUp},
		{"change down", func(s *models.IndicatorSnapshot) {
			s.ChangePercent = -0.2
		}, models.DirDown},
		{"all neutral", func(s *models.IndicatorSnapshot) {}, models.DirNeutral},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		c.mod(&s)
		if got := e.DeriveTrend5Min(&s); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}

// Earlier sources in the chain must shadow later ones.
func TestTrend5MinOrdering(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	s.SuperTrendTrend = models.TrendBullish
	s.RSI5MinRaw = 30 // would say DOWN, but SuperTrend is consulted first
	if got := e.DeriveTrend5Min(&s); got != models.DirUp {
		t.Fatalf("expected SuperTrend to shadow RSI, got %s", got)
	}
}

func TestTrend15MinExplicitOverrideWins(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	s.Trend15MinRaw = models.DirDown
	s.EMAAlignment = models.EMAAllBullish
	if got := e.DeriveTrend15Min(&s); got != models.DirDown {
		t.Fatalf("expected explicit override DOWN to win, got %s", got)
	}
}

func TestTrend15MinFallbackChain(t *testing.T) {
	e := Default()
	cases := []struct {
		name string
		mod  func(*models.IndicatorSnapshot)
		want models.TrendDirection
	}{
		{"ema all bullish", func(s *models.IndicatorSnapshot) {
			s.EMAAlignment = models.EMAAllBullish
		}, models.DirUp},
		{"ema partial bearish", func(s *models.IndicatorSnapshot) {
			s.EMAAlignment = models.EMAPartialBearish
		}, models.DirDown},
		{"higher highs", func(s *models.IndicatorSnapshot) {
			s.TrendStructure = models.HigherHighsLows
		}, models.DirUp},
		{"lower highs", func(s *models.IndicatorSnapshot) {
			s.TrendStructure = models.LowerHighsLows
		}, models.DirDown},
		{"trend color bullish", func(s *models.IndicatorSnapshot) {
			s.TrendColor = models.TrendBullish
		}, models.DirUp},
		{"trend mapped downtrend", func(s *models.IndicatorSnapshot) {
			s.TrendMapped = models.MappedDowntrend
		}, models.DirDown},
		{"sar plus change up", func(s *models.IndicatorSnapshot) {
			s.SARTrend = models.TrendBullish
			s.ChangePercent = 0.4
		}, models.DirUp},
		{"sar plus change down", func(s *models.IndicatorSnapshot) {
			s.SARTrend = models.TrendBearish
			s.ChangePercent = -0.4
		}, models.DirDown},
		{"sar without change stays neutral", func(s *models.IndicatorSnapshot) {
			s.SARTrend = models.TrendBullish
			s.ChangePercent = 0.1
		}, models.DirNeutral},
		{"all neutral", func(s *models.IndicatorSnapshot) {}, models.DirNeutral},
	}
	for _, c := range cases {
		s := neutralSnapshot()
		c.mod(&s)
		if got := e.DeriveTrend15Min(&s); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestTrend15MinOrdering(t *testing.T) {
	e := Default()
	s := neutralSnapshot()
	s.EMAAlignment = models.EMAAllBearish
	s.TrendStructure = models.HigherHighsLows // later source, must be shadowed
	if got := e.DeriveTrend15Min(&s); got != models.DirDown {
		t.Fatalf("expected EMA alignment to shadow structure, got %s", got)
	}
}
