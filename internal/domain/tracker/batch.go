package tracker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type BatchResult struct {
	Total     int               `json:"total"`
	Evaluated int               `json:"evaluated"`
	Skipped   int               `json:"skipped"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// EvaluateAll runs one evaluation pass over every non-exited employee
// with bounded concurrency. Individual failures are collected rather
// than aborting the batch; every employee gets their attempt.
func (s *Service) EvaluateAll(ctx context.Context, asOf time.Time, concurrency int) (BatchResult, error) {
	ids, err := s.Employees.ActiveIDs(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	if concurrency < 1 {
		concurrency = 1
	}

	result := BatchResult{Total: len(ids), Errors: map[string]string{}}
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for _, id := range ids {
		group.Go(func() error {
			outcome, err := s.Evaluate(groupCtx, id, asOf)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed++
				result.Errors[id] = err.Error()
			case !outcome.Evaluated:
				result.Skipped++
			default:
				result.Evaluated++
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result, err
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}
