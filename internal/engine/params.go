package engine

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Params holds every weight and threshold the engine uses. The numbers are
// empirically chosen trading heuristics, so they are surfaced as named,
// tunable configuration rather than inlined constants. Zero values are filled
// from the default tags; YAML can override any of them under `engine:`.
type Params struct {
	Weights struct {
		SuperTrend     float64 `yaml:"super_trend" default:"20"`
		RSI            float64 `yaml:"rsi" default:"15"`
		EMAStack       float64 `yaml:"ema_stack" default:"15"`
		EMAPartial     float64 `yaml:"ema_partial" default:"8"`
		VWAP           float64 `yaml:"vwap" default:"15"`
		DayChange      float64 `yaml:"day_change" default:"12"`
		EMA200         float64 `yaml:"ema_200" default:"8"`
		SAR            float64 `yaml:"sar" default:"10"`
		SmartMoney     float64 `yaml:"smart_money" default:"8"`
		SmartMoneyLean float64 `yaml:"smart_money_lean" default:"5"`
		CandleQuality  float64 `yaml:"candle_quality" default:"7"`
		CandleLean     float64 `yaml:"candle_lean" default:"4"`
		Volume         float64 `yaml:"volume" default:"6"`
		VolumeAbove    float64 `yaml:"volume_above" default:"3"`
		VolumeOppose   float64 `yaml:"volume_oppose" default:"2"`
	} `yaml:"weights"`

	RSIVotes struct {
		Strong     float64 `yaml:"strong" default:"15"`
		Overbought float64 `yaml:"overbought" default:"6"`
		Weak       float64 `yaml:"weak" default:"-15"`
		Oversold   float64 `yaml:"oversold" default:"-8"`
		Blend5Min  float64 `yaml:"blend_5m" default:"0.6"`
		Blend15Min float64 `yaml:"blend_15m" default:"0.4"`
		BlendGain  float64 `yaml:"blend_gain" default:"0.6"`
	} `yaml:"rsi_votes"`

	VWAPVotes struct {
		DistanceGain float64 `yaml:"distance_gain" default:"12"`
		CoarseVote   float64 `yaml:"coarse_vote" default:"10"`
	} `yaml:"vwap_votes"`

	DayChange struct {
		StrongPct  float64 `yaml:"strong_pct" default:"1.0"`
		StrongVote float64 `yaml:"strong_vote" default:"12"`
		MediumPct  float64 `yaml:"medium_pct" default:"0.5"`
		MediumVote float64 `yaml:"medium_vote" default:"9"`
		LightPct   float64 `yaml:"light_pct" default:"0.2"`
		LightVote  float64 `yaml:"light_vote" default:"5"`
		Slope      float64 `yaml:"slope" default:"4"`
	} `yaml:"day_change"`

	EMA200 struct {
		HardBreakPct  float64 `yaml:"hard_break_pct" default:"0.5"`  // clearly below
		ClearAbovePct float64 `yaml:"clear_above_pct" default:"1.0"` // well above
		HardPenalty   float64 `yaml:"hard_penalty" default:"8"`
		SoftPenalty   float64 `yaml:"soft_penalty" default:"4"`
		Reward        float64 `yaml:"reward" default:"4"`
	} `yaml:"ema_200"`

	Trend struct {
		RSI5MinUp    float64 `yaml:"rsi_5m_up" default:"54"`
		RSI5MinDown  float64 `yaml:"rsi_5m_down" default:"46"`
		RSILiveUp    float64 `yaml:"rsi_live_up" default:"58"`
		RSILiveDown  float64 `yaml:"rsi_live_down" default:"42"`
		MomentumUp   float64 `yaml:"momentum_up" default:"58"`
		MomentumDown float64 `yaml:"momentum_down" default:"42"`
		ChangePct    float64 `yaml:"change_pct" default:"0.15"`
		SARChangePct float64 `yaml:"sar_change_pct" default:"0.3"`
	} `yaml:"trend"`

	Score struct {
		StrongZone  float64 `yaml:"strong_zone" default:"48"`
		TradeZone   float64 `yaml:"trade_zone" default:"18"`
		NoTradeBand float64 `yaml:"no_trade_band" default:"8"`
	} `yaml:"score"`

	Confidence struct {
		StrongBase       float64 `yaml:"strong_base" default:"68"`
		StrongSlope      float64 `yaml:"strong_slope" default:"0.54"`
		StrongCap        float64 `yaml:"strong_cap" default:"95"`
		TradeBase        float64 `yaml:"trade_base" default:"52"`
		TradeSlope       float64 `yaml:"trade_slope" default:"1.07"`
		TradeCap         float64 `yaml:"trade_cap" default:"84"`
		NoTrade          float64 `yaml:"no_trade" default:"50"`
		SidewaysBase     float64 `yaml:"sideways_base" default:"42"`
		SidewaysSlope    float64 `yaml:"sideways_slope" default:"0.5"`
		OffMarketPenalty float64 `yaml:"off_market_penalty" default:"15"`
		Floor            float64 `yaml:"floor" default:"30"`
		ConflictPenalty  float64 `yaml:"conflict_penalty" default:"12"`
		PartialPenalty   float64 `yaml:"partial_penalty" default:"6"`
	} `yaml:"confidence"`
}

// DefaultParams returns the parameter set matching the production dashboard.
func DefaultParams() Params {
	var p Params
	if err := defaults.Set(&p); err != nil {
		// default tags are static; a failure here is a programming error
		panic(err)
	}
	return p
}

// LoadParams returns the defaults overlaid with any overrides from a YAML
// file. An empty path means pure defaults.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read engine params: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse engine params: %w", err)
	}
	return p, nil
}
