package filter

import (
	"context"
	"runtime"
	"sync"

	"github.com/s0up4200/citadel/rickmorty"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the list length from which evaluation is split into chunks
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator evaluates small lists inline and large lists in
// chunks on a worker pool. Matches keep their input order either way.
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
	pool        WorkerPool
}

// NewConcurrentEvaluator creates an evaluator and starts its worker pool
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.pool = NewWorkerPool(e.workerCount)

	return e
}

// Evaluate returns the characters matching filter. A runtime error in the
// expression aborts the evaluation with an *EvaluationError.
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, characters []rickmorty.Character) ([]rickmorty.Character, error) {
	if len(characters) == 0 {
		return []rickmorty.Character{}, nil
	}

	if len(characters) < e.batchSize {
		return evaluateChunk(filter, characters)
	}

	return e.evaluateConcurrent(ctx, filter, characters)
}

func evaluateChunk(filter CompiledFilter, characters []rickmorty.Character) ([]rickmorty.Character, error) {
	matches := make([]rickmorty.Character, 0, len(characters))
	for _, character := range characters {
		ok, err := filter.Eval(character)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, character)
		}
	}
	return matches, nil
}

func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, characters []rickmorty.Character) ([]rickmorty.Character, error) {
	chunkSize := max(len(characters)/e.workerCount, e.batchSize)
	chunks := (len(characters) + chunkSize - 1) / chunkSize

	results := make([][]rickmorty.Character, chunks)
	errs := make([]error, chunks)

	var wg sync.WaitGroup
	for index := range chunks {
		start := index * chunkSize
		chunk := characters[start:min(start+chunkSize, len(characters))]

		wg.Add(1)
		err := e.pool.Submit(ctx, func() {
			defer wg.Done()

			if ctx.Err() != nil {
				errs[index] = ctx.Err()
				return
			}
			results[index], errs[index] = evaluateChunk(filter, chunk)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for i := range chunks {
		if errs[i] != nil {
			return nil, errs[i]
		}
		total += len(results[i])
	}

	matches := make([]rickmorty.Character, 0, total)
	for _, chunk := range results {
		matches = append(matches, chunk...)
	}

	return matches, nil
}

// Stop shuts down the worker pool
func (e *ConcurrentEvaluator) Stop(ctx context.Context) error {
	return e.pool.Stop(ctx)
}
