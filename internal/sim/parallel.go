package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same scene several times concurrently. Spaces are not
// thread-safe, so every run gets a fresh runner from the factory.
type Ensemble struct {
	factory func() (*Runner, error)
	numRuns int
}

func NewEnsemble(factory func() (*Runner, error), numRuns int) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			r, err := e.factory()
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
