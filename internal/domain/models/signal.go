package models

import "time"

// Action is one of the six discrete trade actions the aggregator can emit.
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionNoTrade    Action = "NO_TRADE"
	ActionSideways   Action = "SIDEWAYS"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// PredictionDirection is the short-horizon forecast direction.
type PredictionDirection string

const (
	PredictUp   PredictionDirection = "UP"
	PredictDown PredictionDirection = "DOWN"
	PredictFlat PredictionDirection = "FLAT"
)

// Factor is one indicator's bounded vote toward the total score.
// Invariant: -MaxAbs <= Value <= MaxAbs.
type Factor struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	MaxAbs float64 `json:"max_abs"`
	Label  string  `json:"label"`
}

// Prediction is the reconciled 5-minute forecast.
type Prediction struct {
	Direction   PredictionDirection `json:"direction"`
	Confidence  int                 `json:"confidence"`
	ContextNote string              `json:"context_note"`
}

// SignalResult is the full output of one engine evaluation. It is derived
// fresh per snapshot; nothing in it is cached or mutated across evaluations.
type SignalResult struct {
	Symbol       string         `json:"symbol"`
	Timestamp    time.Time      `json:"timestamp"`
	MarketStatus MarketStatus   `json:"market_status"`
	Action       Action         `json:"action"`
	Confidence   int            `json:"confidence"`
	TotalScore   float64        `json:"total_score"`
	Factors      []Factor       `json:"factors"`
	Trend5Min    TrendDirection `json:"trend_5min"`
	Trend15Min   TrendDirection `json:"trend_15min"`
	Prediction   Prediction     `json:"prediction"`
}

// BoardEntry pairs a symbol with its evaluation or the reason it failed.
type BoardEntry struct {
	Symbol string        `json:"symbol"`
	Signal *SignalResult `json:"signal,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Board is a consolidated evaluation of every tracked symbol.
type Board struct {
	Timestamp    time.Time    `json:"timestamp"`
	MarketStatus MarketStatus `json:"market_status"`
	Entries      []BoardEntry `json:"entries"`
}

// Alert is emitted when a symbol's action flips into a strong zone.
type Alert struct {
	Symbol     string    `json:"symbol"`
	Action     Action    `json:"action"`
	Previous   Action    `json:"previous"`
	Confidence int       `json:"confidence"`
	TotalScore float64   `json:"total_score"`
	Timestamp  time.Time `json:"timestamp"`
}
