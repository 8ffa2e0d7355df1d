package filter

import (
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/citadel/rickmorty"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	extra      map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[string, CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds helper functions to the expression environment
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.extra, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		extra: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	extra map[string]any
	cache *lruCache[string, CompiledFilter]
}

// Compile checks the expression against the character environment and
// compiles it to a boolean program.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(newEnvironment(rickmorty.Character{}, c.extra)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		extra:      c.extra,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Eval runs the program for one character
func (f *exprFilter) Eval(character rickmorty.Character) (bool, error) {
	result, err := expr.Run(f.program, newEnvironment(character, f.extra))
	if err != nil {
		return false, &EvaluationError{
			Expression:    f.expression,
			CharacterID:   character.ID,
			CharacterName: character.Name,
			Err:           err,
		}
	}
	// AsBool guarantees the type
	return result.(bool), nil
}

// Match reports whether the character satisfies the filter. Runtime errors
// count as no match.
func (f *exprFilter) Match(character rickmorty.Character) bool {
	ok, err := f.Eval(character)
	return err == nil && ok
}

func (f *exprFilter) Expression() string {
	return f.expression
}

// newEnvironment exposes a character's fields and helpers to expressions
func newEnvironment(character rickmorty.Character, extra map[string]any) map[string]any {
	env := make(map[string]any, 24+len(extra))

	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper

	status := character.Status
	env["isAlive"] = func() bool { return status == rickmorty.StatusAlive }
	env["isDead"] = func() bool { return status == rickmorty.StatusDead }
	env["inEpisode"] = createInEpisodeFunc(character.EpisodeNumbers())

	env["Character"] = character
	env["ID"] = character.ID
	env["Name"] = character.Name
	env["Status"] = string(character.Status)
	env["Species"] = character.Species
	env["Type"] = character.Type
	env["Gender"] = string(character.Gender)
	env["Origin"] = character.Origin.Name
	env["Location"] = character.Location.Name
	env["Episodes"] = character.EpisodeCount()

	maps.Copy(env, extra)

	return env
}

func createInEpisodeFunc(episodes []int) func(int) bool {
	return func(n int) bool {
		return slices.Contains(episodes, n)
	}
}
