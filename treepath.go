// Package treepath compiles and evaluates XPath-like queries against
// in-memory trees of document nodes.
//
// A query is compiled into a flat pipeline of step expressions; bracketed
// predicates are compiled through a shunting-yard pass into small expression
// trees. Evaluation threads a (selected, rejected) pair of node sets through
// the pipeline and yields either a node set or, once a text()/@attr
// extraction step fires, a list of strings.
//
// # Quick Start
//
//	// Simple evaluation
//	result, err := treepath.Eval(ctx, "//div[@class='x']", roots)
//
//	// Compile once, evaluate many times
//	query, err := treepath.Compile("//a[starts-with(@href,'https')]/text()")
//	result1, _ := treepath.EvalQuery(ctx, query, roots1)
//	result2, _ := treepath.EvalQuery(ctx, query, roots2)
//
//	// With options
//	result, err := treepath.Eval(ctx, "//div", roots,
//	    treepath.WithCaching(true),
//	    treepath.WithDebug(true),
//	)
//
// # Query language
//
// Steps: '/', '//', '*', bare tag names, '@name' extraction, 'text()'.
// Predicates: '[ ... ]' with comparison operators (>, >=, <, <=, =, !=),
// logical operators (and, or, not), the text functions contains(a,b),
// starts-with(a,b) and ends-with(a,b), and operands @name, 'string', integer.
// length(a) is reserved: it parses but fails on evaluation.
//
// # Concurrency
//
// Compiled queries are immutable and safe for concurrent evaluation against
// different candidate sets, as long as the document nodes themselves are not
// concurrently mutated.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/treepath/treepath/pkg/parser
//   - Evaluator: github.com/treepath/treepath/pkg/evaluator
//   - Types: github.com/treepath/treepath/pkg/types
//   - HTML adapter: github.com/treepath/treepath/pkg/dom
package treepath

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/treepath/treepath/pkg/cache"
	"github.com/treepath/treepath/pkg/evaluator"
	"github.com/treepath/treepath/pkg/parser"
	"github.com/treepath/treepath/pkg/types"
)

// Version returns the current version of the library.
func Version() string {
	return "v0.1.0-dev"
}

// Compile compiles a query for repeated evaluation.
//
// The compiled query can be evaluated multiple times against different
// candidate sets. It is safe for concurrent use.
func Compile(query string) (*types.Query, error) {
	return parser.Compile(query)
}

// MustCompile is like Compile but panics if the query cannot be compiled.
// It simplifies safe initialization of global variables.
func MustCompile(query string) *types.Query {
	q, err := Compile(query)
	if err != nil {
		panic(fmt.Sprintf("treepath: Compile(%q): %v", query, err))
	}
	return q
}

// Options configures Eval behavior.
type Options struct {
	// Caching enables compilation caching through the shared default cache.
	Caching bool
	// Cache is a custom compilation cache. If non-nil, Caching is implied.
	Cache *cache.Cache
	// Debug enables per-step debug logging in the evaluator.
	Debug bool
	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Option configures a single Eval call.
type Option func(*Options)

// WithCaching enables compilation caching backed by a shared LRU cache, so
// repeated Eval calls with the same query string skip recompilation.
func WithCaching(enable bool) Option {
	return func(o *Options) {
		o.Caching = enable
	}
}

// WithCache supplies a custom compilation cache.
func WithCache(c *cache.Cache) Option {
	return func(o *Options) {
		o.Cache = c
	}
}

// WithDebug enables per-step debug logging.
func WithDebug(enable bool) Option {
	return func(o *Options) {
		o.Debug = enable
	}
}

// WithLogger sets the structured logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// defaultCache backs WithCaching(true) when no custom cache is supplied.
var (
	defaultCacheOnce sync.Once
	defaultCache     *cache.Cache
)

func sharedCache() *cache.Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = cache.New(256)
	})
	return defaultCache
}

// Eval is a convenience function that compiles and evaluates a query in a
// single call.
//
// For repeated evaluations of the same query, use Compile and EvalQuery, or
// enable caching.
func Eval(ctx context.Context, query string, roots []types.Node, opts ...Option) (types.Result, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	var q *types.Query
	var err error
	switch {
	case options.Cache != nil:
		q, err = options.Cache.GetOrCompile(query, func() (*types.Query, error) {
			return Compile(query)
		})
	case options.Caching:
		q, err = sharedCache().GetOrCompile(query, func() (*types.Query, error) {
			return Compile(query)
		})
	default:
		q, err = Compile(query)
	}
	if err != nil {
		return types.Result{}, err
	}

	var evalOpts []evaluator.EvalOption
	if options.Debug {
		evalOpts = append(evalOpts, evaluator.WithDebug(true))
	}
	if options.Logger != nil {
		evalOpts = append(evalOpts, evaluator.WithLogger(options.Logger))
	}
	return evaluator.New(evalOpts...).Eval(ctx, q, roots)
}

// EvalQuery evaluates an already compiled query.
func EvalQuery(ctx context.Context, q *types.Query, roots []types.Node) (types.Result, error) {
	return evaluator.New().Eval(ctx, q, roots)
}
