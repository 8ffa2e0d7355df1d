package filter

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/citadel/rickmorty"
)

// Preset is a named, reusable filter expression
type Preset struct {
	Name        string
	Expression  string
	Description string
	Filter      CompiledFilter
}

// Manager compiles ad-hoc expressions and holds named presets
type Manager struct {
	compiler  Compiler
	evaluator *ConcurrentEvaluator
	presets   map[string]Preset
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator *ConcurrentEvaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		presets: make(map[string]Preset),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.compiler == nil {
		m.compiler = NewExprCompiler(WithCache(100))
	}
	if m.evaluator == nil {
		m.evaluator = NewConcurrentEvaluator()
	}

	return m
}

// Compile compiles an ad-hoc expression
func (m *Manager) Compile(expression string) (CompiledFilter, error) {
	return m.compiler.Compile(expression)
}

// RegisterPresets compiles every preset and registers them only if all compile
func (m *Manager) RegisterPresets(presets []Preset) error {
	compiled := make(map[string]Preset, len(presets))

	for _, preset := range presets {
		filter, err := m.compiler.Compile(preset.Expression)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", preset.Name, err)
		}
		preset.Filter = filter
		compiled[preset.Name] = preset
	}

	m.mu.Lock()
	maps.Copy(m.presets, compiled)
	m.mu.Unlock()

	return nil
}

// Preset returns a registered preset by name
func (m *Manager) Preset(name string) (Preset, bool) {
	m.mu.RLock()
	preset, ok := m.presets[name]
	m.mu.RUnlock()
	return preset, ok
}

// Presets returns all registered presets sorted by name
func (m *Manager) Presets() []Preset {
	m.mu.RLock()
	presets := slices.Collect(maps.Values(m.presets))
	m.mu.RUnlock()

	slices.SortFunc(presets, func(a, b Preset) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return presets
}

// Resolve picks the filter a command asked for: a named preset wins over an
// ad-hoc expression. It returns nil when neither is set.
func (m *Manager) Resolve(expression, presetName string) (CompiledFilter, error) {
	if presetName != "" {
		preset, ok := m.Preset(presetName)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, presetName)
		}
		return preset.Filter, nil
	}

	if expression == "" {
		return nil, nil
	}

	return m.compiler.Compile(expression)
}

// Apply evaluates filter against characters. A nil filter keeps everything.
func (m *Manager) Apply(ctx context.Context, filter CompiledFilter, characters []rickmorty.Character) ([]rickmorty.Character, error) {
	if filter == nil {
		return characters, nil
	}
	return m.evaluator.Evaluate(ctx, filter, characters)
}

// Close shuts down the evaluator's workers
func (m *Manager) Close(ctx context.Context) error {
	return m.evaluator.Stop(ctx)
}
