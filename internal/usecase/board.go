package usecase

import (
	"context"
	"sync"
	"time"

	"IndexPulse/internal/domain/models"
	domrepo "IndexPulse/internal/domain/repository"
	domsvc "IndexPulse/internal/domain/service"
)

// BoardUseCase evaluates every tracked symbol in one shot for the dashboard
// grid. Symbols are fanned out concurrently; a failed symbol carries its
// error in the entry instead of sinking the whole board.
type BoardUseCase struct {
	store     domrepo.SnapshotStore
	evaluator domsvc.SignalEvaluator
	timeout   time.Duration
	workers   int
}

func NewBoardUseCase(store domrepo.SnapshotStore, evaluator domsvc.SignalEvaluator) *BoardUseCase {
	return &BoardUseCase{store: store, evaluator: evaluator, timeout: 10 * time.Second, workers: 8}
}

func (uc *BoardUseCase) GetBoard(ctx context.Context) (*models.Board, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	symbols := uc.store.Symbols()
	status := uc.store.MarketStatus()

	board := &models.Board{
		Timestamp:    time.Now().UTC(),
		MarketStatus: status,
		Entries:      make([]models.BoardEntry, len(symbols)),
	}

	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				board.Entries[i] = models.BoardEntry{Symbol: sym, Error: ctx.Err().Error()}
				return
			}
			snap, ok := uc.store.Get(sym)
			if !ok {
				board.Entries[i] = models.BoardEntry{Symbol: sym, Error: "no snapshot"}
				return
			}
			r := uc.evaluator.Evaluate(*snap, status)
			board.Entries[i] = models.BoardEntry{Symbol: sym, Signal: &r}
		}(i, sym)
	}
	wg.Wait()

	return board, nil
}
