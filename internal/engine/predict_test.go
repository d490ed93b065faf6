package engine

import (
	"testing"

	"IndexPulse/internal/domain/models"
)

func TestComposePredictionAgreement(t *testing.T) {
	e := Default()
	p := e.ComposePrediction(models.DirUp, models.DirUp, 70)
	if p.Direction != models.PredictUp {
		t.Fatalf("expected UP, got %s", p.Direction)
	}
	if p.Confidence != 70 {
		t.Fatalf("agreement must not discount confidence, got %d", p.Confidence)
	}
	if p.ContextNote != NoteAligned {
		t.Fatalf("unexpected note %q", p.ContextNote)
	}
}

func TestComposePredictionConflict(t *testing.T) {
	e := Default()
	p := e.ComposePrediction(models.DirUp, models.DirDown, 70)
	if p.Direction != models.PredictUp {
		t.Fatalf("conflict should lead with the 5m call, got %s", p.Direction)
	}
	if p.Confidence != 58 {
		t.Fatalf("expected 70-12=58, got %d", p.Confidence)
	}
	if p.ContextNote != NoteConflict {
		t.Fatalf("unexpected note %q", p.ContextNote)
	}
}

func TestComposePredictionSingleTimeframe(t *testing.T) {
	e := Default()

	p := e.ComposePrediction(models.DirDown, models.DirNeutral, 70)
	if p.Direction != models.PredictDown || p.Confidence != 64 || p.ContextNote != Note5MinOnly {
		t.Fatalf("5m only: got %s/%d/%q", p.Direction, p.Confidence, p.ContextNote)
	}

	p = e.ComposePrediction(models.DirNeutral, models.DirUp, 70)
	if p.Direction != models.PredictUp || p.Confidence != 64 || p.ContextNote != Note15MinOnly {
		t.Fatalf("15m only: got %s/%d/%q", p.Direction, p.Confidence, p.ContextNote)
	}
}

func TestComposePredictionBothNeutral(t *testing.T) {
	e := Default()
	p := e.ComposePrediction(models.DirNeutral, models.DirNeutral, 55)
	if p.Direction != models.PredictFlat {
		t.Fatalf("expected FLAT, got %s", p.Direction)
	}
	if p.Confidence != 55 {
		t.Fatalf("both-neutral must not discount confidence, got %d", p.Confidence)
	}
	if p.ContextNote != NoteNoEdge {
		t.Fatalf("unexpected note %q", p.ContextNote)
	}
}

func TestComposePredictionFloor(t *testing.T) {
	e := Default()
	p := e.ComposePrediction(models.DirUp, models.DirDown, 35)
	if p.Confidence != 30 {
		t.Fatalf("penalty must floor at 30, got %d", p.Confidence)
	}
	p = e.ComposePrediction(models.DirUp, models.DirNeutral, 31)
	if p.Confidence != 30 {
		t.Fatalf("partial penalty must floor at 30, got %d", p.Confidence)
	}
}
