package models

import (
	"math"
	"testing"
)

func TestNormalizeMarketStatus(t *testing.T) {
	cases := map[string]MarketStatus{
		"LIVE":     MarketLive,
		"CLOSED":   MarketClosed,
		"PRE_OPEN": MarketPreOpen,
		"FREEZE":   MarketFreeze,
		"OFFLINE":  MarketOffline,
		"bogus":    MarketOffline,
		"":         MarketOffline,
	}
	for in, want := range cases {
		if got := NormalizeMarketStatus(in); got != want {
			t.Fatalf("NormalizeMarketStatus(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSanitizeRSIBounds(t *testing.T) {
	s := IndicatorSnapshot{
		Symbol:      "NIFTY",
		Price:       100,
		RSILive:     math.NaN(),
		RSI5MinRaw:  -3,
		RSI15MinRaw: 180,
		Momentum:    math.Inf(1),
	}
	s.Sanitize()
	if s.RSILive != 50 {
		t.Fatalf("NaN RSI should map to sentinel, got %v", s.RSILive)
	}
	if s.RSI5MinRaw != 50 {
		t.Fatalf("negative RSI should map to sentinel, got %v", s.RSI5MinRaw)
	}
	if s.RSI15MinRaw != 100 {
		t.Fatalf("RSI above 100 should clamp, got %v", s.RSI15MinRaw)
	}
	if s.Momentum != 50 {
		t.Fatalf("Inf momentum should map to sentinel, got %v", s.Momentum)
	}
}

func TestSanitizeUnknownEnums(t *testing.T) {
	s := IndicatorSnapshot{
		Symbol:          "NIFTY",
		Price:           100,
		SuperTrendTrend: TrendState("MYSTERY"),
		SmartMoneySignal: ClassSignal("???"),
	}
	s.Sanitize()
	if s.SuperTrendTrend != TrendNeutral {
		t.Fatalf("unknown trend state should neutralize, got %v", s.SuperTrendTrend)
	}
	if s.SmartMoneySignal != ClassNeutral {
		t.Fatalf("unknown class signal should neutralize, got %v", s.SmartMoneySignal)
	}
}

func TestSnapshotMessageTimestampUnits(t *testing.T) {
	m := &SnapshotMessage{Symbol: "NIFTY", Timestamp: 1735689600000, Price: 100} // ms
	s := m.ToSnapshot()
	if s.Timestamp.Unix() != 1735689600 {
		t.Fatalf("ms timestamp should convert to seconds, got %d", s.Timestamp.Unix())
	}

	m2 := &SnapshotMessage{Symbol: "NIFTY", Timestamp: 1735689600, Price: 100} // already s
	s2 := m2.ToSnapshot()
	if s2.Timestamp.Unix() != 1735689600 {
		t.Fatalf("second timestamp should pass through, got %d", s2.Timestamp.Unix())
	}
}
