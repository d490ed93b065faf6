package engine

import (
	"math"

	"IndexPulse/internal/domain/models"
)

// Context notes shown on the prediction card. Purely descriptive; nothing
// downstream parses them.
const (
	NoteAligned   = "5m + 15m aligned"
	NoteConflict  = "⚠ 5m vs 15m conflict"
	Note5MinOnly  = "5m signal · 15m neutral"
	Note15MinOnly = "15m signal · 5m neutral"
	NoteNoEdge    = "no directional edge"
)

// ComposePrediction reconciles the two timeframe calls into a 5-minute
// forecast. Agreement keeps the aggregator's confidence; an active conflict
// or a half-blind read discounts it.
func (e *Engine) ComposePrediction(t5, t15 models.TrendDirection, confidence int) models.Prediction {
	cf := e.params.Confidence
	has5 := t5 != models.DirNeutral
	has15 := t15 != models.DirNeutral

	p := models.Prediction{Confidence: confidence}
	switch {
	case has5 && has15 && t5 == t15:
		p.Direction = toPrediction(t5)
		p.ContextNote = NoteAligned
	case has5 && has15:
		// opposite non-neutral calls: lead with the faster frame, discounted
		p.Direction = toPrediction(t5)
		p.Confidence = floored(confidence, cf.ConflictPenalty, cf.Floor)
		p.ContextNote = NoteConflict
	case has5:
		p.Direction = toPrediction(t5)
		p.Confidence = floored(confidence, cf.PartialPenalty, cf.Floor)
		p.ContextNote = Note5MinOnly
	case has15:
		p.Direction = toPrediction(t15)
		p.Confidence = floored(confidence, cf.PartialPenalty, cf.Floor)
		p.ContextNote = Note15MinOnly
	default:
		p.Direction = models.PredictFlat
		p.ContextNote = NoteNoEdge
	}
	return p
}

func toPrediction(d models.TrendDirection) models.PredictionDirection {
	switch d {
	case models.DirUp:
		return models.PredictUp
	case models.DirDown:
		return models.PredictDown
	default:
		return models.PredictFlat
	}
}

func floored(conf int, penalty, floor float64) int {
	return int(math.Max(floor, float64(conf)-penalty))
}
