package filter

import (
	"context"

	"github.com/s0up4200/citadel/rickmorty"
)

// Filter decides whether a character is kept
type Filter interface {
	// Match checks if a character satisfies the filter
	Match(character rickmorty.Character) bool
}

// CompiledFilter is a filter expression ready for evaluation
type CompiledFilter interface {
	Filter

	// Eval is Match with the runtime error, if any
	Eval(character rickmorty.Character) (bool, error)

	// Expression returns the source expression
	Expression() string
}

// Compiler turns filter expressions into executable filters
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler is a Compiler that keeps recently compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator applies a filter to a list of characters
type Evaluator interface {
	// Evaluate returns the matching characters in input order
	Evaluate(ctx context.Context, filter CompiledFilter, characters []rickmorty.Character) ([]rickmorty.Character, error)
}

// WorkerPool runs submitted work on a bounded set of goroutines
type WorkerPool interface {
	// Submit queues work, blocking while the pool is saturated
	Submit(ctx context.Context, work func()) error

	// Stop waits for queued work to finish
	Stop(ctx context.Context) error
}
