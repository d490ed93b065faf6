package models

import "time"

// SnapshotMessage is the wire form of an IndicatorSnapshot as produced by the
// market-data backend (feed frames and Kafka messages share this schema).
// Domain models stay free of transport tags; conversion happens here.
type SnapshotMessage struct {
	Symbol        string  `json:"symbol"`
	Timestamp     int64   `json:"t"` // unix seconds (ms tolerated)
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_pct"`

	RSILive           float64 `json:"rsi_live"`
	RSI5MinRaw        float64 `json:"rsi_5m"`
	RSI15MinRaw       float64 `json:"rsi_15m"`
	RSIMomentumStatus string  `json:"rsi_momentum"`

	EMAAlignment string  `json:"ema_alignment"`
	VWAP         float64 `json:"vwap"`
	VWAPPosition string  `json:"vwap_position"`
	EMA200       float64 `json:"ema_200"`

	SuperTrend     string `json:"supertrend"`
	SAR            string `json:"sar"`
	TrendStructure string `json:"trend_structure"`
	TrendColor     string `json:"trend_color"`
	TrendMapped    string `json:"trend_mapped"`

	SmartMoney    string `json:"smart_money"`
	CandleQuality string `json:"candle_quality"`
	VolumeStrength string `json:"volume_strength"`

	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
	Momentum   float64 `json:"momentum"`

	Trend5Min  string `json:"trend_5m,omitempty"`
	Trend15Min string `json:"trend_15m,omitempty"`
}

// ToSnapshot converts the wire message into a sanitized domain snapshot.
func (m *SnapshotMessage) ToSnapshot() *IndicatorSnapshot {
	ts := m.Timestamp
	if ts > 1e11 { // ms
		ts = ts / 1000
	}
	s := &IndicatorSnapshot{
		Symbol:        m.Symbol,
		Timestamp:     time.Unix(ts, 0).UTC(),
		Price:         m.Price,
		ChangePercent: m.ChangePercent,

		RSILive:           m.RSILive,
		RSI5MinRaw:        m.RSI5MinRaw,
		RSI15MinRaw:       m.RSI15MinRaw,
		RSIMomentumStatus: RSIMomentumStatus(m.RSIMomentumStatus),

		EMAAlignment: EMAAlignment(m.EMAAlignment),
		VWAP:         m.VWAP,
		VWAPPosition: VWAPPosition(m.VWAPPosition),
		EMA200:       m.EMA200,

		SuperTrendTrend: TrendState(m.SuperTrend),
		SARTrend:        TrendState(m.SAR),
		TrendStructure:  TrendStructure(m.TrendStructure),
		TrendColor:      TrendState(m.TrendColor),
		TrendMapped:     MappedTrend(m.TrendMapped),

		SmartMoneySignal:    ClassSignal(m.SmartMoney),
		CandleQualitySignal: ClassSignal(m.CandleQuality),
		VolumeStrength:      m.VolumeStrength,

		Support:    m.Support,
		Resistance: m.Resistance,
		Momentum:   m.Momentum,

		Trend5MinRaw:  TrendDirection(m.Trend5Min),
		Trend15MinRaw: TrendDirection(m.Trend15Min),
	}
	s.Sanitize()
	return s
}

// FromSnapshot builds the wire form of a snapshot for Kafka fan-out.
func FromSnapshot(s *IndicatorSnapshot) *SnapshotMessage {
	return &SnapshotMessage{
		Symbol:            s.Symbol,
		Timestamp:         s.Timestamp.Unix(),
		Price:             s.Price,
		ChangePercent:     s.ChangePercent,
		RSILive:           s.RSILive,
		RSI5MinRaw:        s.RSI5MinRaw,
		RSI15MinRaw:       s.RSI15MinRaw,
		RSIMomentumStatus: string(s.RSIMomentumStatus),
		EMAAlignment:      string(s.EMAAlignment),
		VWAP:              s.VWAP,
		VWAPPosition:      string(s.VWAPPosition),
		EMA200:            s.EMA200,
		SuperTrend:        string(s.SuperTrendTrend),
		SAR:               string(s.SARTrend),
		TrendStructure:    string(s.TrendStructure),
		TrendColor:        string(s.TrendColor),
		TrendMapped:       string(s.TrendMapped),
		SmartMoney:        string(s.SmartMoneySignal),
		CandleQuality:     string(s.CandleQualitySignal),
		VolumeStrength:    s.VolumeStrength,
		Support:           s.Support,
		Resistance:        s.Resistance,
		Momentum:          s.Momentum,
		Trend5Min:         string(s.Trend5MinRaw),
		Trend15Min:        string(s.Trend15MinRaw),
	}
}
