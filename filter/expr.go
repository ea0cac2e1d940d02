package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/qbitgate/gateway"
)

// DefaultCacheSize is the number of compiled expressions kept by NewCompiler
const DefaultCacheSize = 64

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		} else {
			c.cache = nil
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewCompiler creates an expr-based filter compiler with a DefaultCacheSize cache
func NewCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
		cache:       newLRUCache[CompiledFilter](DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
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
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // torrent fields are bound at run time
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
		helpers:    c.helperFuncs,
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

// Match evaluates the filter against a torrent. A runtime error is a miss.
func (f *exprFilter) Match(torrent gateway.Torrent) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(f.helpers, torrent))
	if err != nil {
		return false
	}
	matched, _ := result.(bool)
	return matched
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	// bound per torrent in createRuntimeEnvironment
	funcs["isState"] = func(string) bool { return false }
	return funcs
}

func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	// String helpers
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
	// Size helpers, in bytes
	env["KiB"] = func(n float64) int64 { return int64(n * (1 << 10)) }
	env["MiB"] = func(n float64) int64 { return int64(n * (1 << 20)) }
	env["GiB"] = func(n float64) int64 { return int64(n * (1 << 30)) }
	env["now"] = time.Now
}

func createRuntimeEnvironment(helpers map[string]any, t gateway.Torrent) map[string]any {
	env := make(map[string]any, len(helpers)+24)

	maps.Copy(env, helpers)

	env["Torrent"] = t
	env["isState"] = func(name string) bool {
		return strings.EqualFold(t.State.String(), name)
	}

	env["Hash"] = t.Hash
	env["Name"] = t.Name
	env["State"] = t.State.String()
	env["SavePath"] = t.SavePath
	env["Size"] = t.Size
	env["Progress"] = t.Progress
	env["Priority"] = t.Priority
	env["ForceStart"] = t.ForceStart
	env["ETA"] = t.ETA
	env["Added"] = t.AddDate
	env["Completed"] = t.CompletionDate
	env["DownloadSpeed"] = t.DownloadSpeed
	env["UploadSpeed"] = t.UploadSpeed
	env["Downloaded"] = t.BytesDownloaded
	env["Uploaded"] = t.BytesUploaded
	env["Seeds"] = t.Seeds
	env["Peers"] = t.Peers
	env["TotalSeeds"] = t.TotalSeeds
	env["TotalPeers"] = t.TotalPeers
	env["TimeActive"] = t.TimeActive

	return env
}
