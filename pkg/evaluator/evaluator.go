// Package evaluator implements the query evaluation engine.
//
// The evaluator receives a compiled pipeline from the parser and folds it
// left to right over a candidate node set. Every expression consumes and
// produces a (selected, rejected) pair of node sets; the rejected set exists
// to give the 'not' operator its context-sensitive inversion semantics.
// A terminal step (text() or attribute extraction) converts the running node
// set into a string sequence, ending the pipeline.
//
// # Example
//
//	eval := evaluator.New()
//	result, err := eval.Eval(ctx, query, roots)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Evaluation never mutates the compiled query or the candidate nodes, so a
// single Evaluator and a single compiled query are safe for concurrent use,
// provided the caller does not mutate the document tree during evaluation.
package evaluator

import (
	"context"
	"log/slog"

	"github.com/treepath/treepath/pkg/types"
)

// Evaluator evaluates compiled queries against candidate node sets.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Debug enables per-step debug logging.
	Debug bool
	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// EvalOption configures an Evaluator.
type EvalOption func(*EvalOptions)

// WithDebug enables per-step debug logging.
func WithDebug(enable bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enable
	}
}

// WithLogger sets the structured logger used for debug output.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Evaluator{
		opts:   options,
		logger: options.Logger,
	}
}

// Eval evaluates a compiled query against the initial candidate set,
// usually the document's top-level node(s).
//
// The pipeline is a strict left-to-right fold: each expression's
// (selected, rejected) output feeds the next expression's input. The final
// selected set is the query result, or the string sequence once a terminal
// step has fired. Errors abort evaluation immediately.
func (e *Evaluator) Eval(ctx context.Context, q *types.Query, roots []types.Node) (types.Result, error) {
	selected := roots
	var rejected []types.Node

	for i, step := range q.Steps() {
		if err := ctx.Err(); err != nil {
			return types.Result{}, err
		}

		if types.IsTerminal(step) {
			// The compiler guarantees a terminal step is last.
			values := evalTerminal(step, selected)
			if e.opts.Debug {
				e.logger.Debug("terminal step",
					"step", i, "values", len(values))
			}
			return types.Result{Strings: values, Scalar: true}, nil
		}

		var err error
		selected, rejected, err = evalExpr(step, selected, rejected)
		if err != nil {
			return types.Result{}, err
		}
		if e.opts.Debug {
			e.logger.Debug("step evaluated",
				"step", i, "selected", len(selected), "rejected", len(rejected))
		}
	}

	return types.Result{Nodes: selected}, nil
}

// evalTerminal maps the selected nodes to their extracted string values.
func evalTerminal(step types.Expr, selected []types.Node) []string {
	values := make([]string, 0, len(selected))
	switch s := step.(type) {
	case *types.Text:
		for _, n := range selected {
			values = append(values, n.Text())
		}
	case *types.AttributeValue:
		for _, n := range selected {
			// Absent attributes extract as the empty string.
			values = append(values, n.Attributes()[s.Name])
		}
	}
	return values
}

// evalExpr dispatches one pipeline expression. The type switch is exhaustive
// over the sealed expression variants.
func evalExpr(e types.Expr, selected, rejected []types.Node) (pos, neg []types.Node, err error) {
	switch x := e.(type) {
	case *types.Root:
		// Identity pass-through anchoring the path.
		return selected, rejected, nil

	case *types.DescendantsOrSelf:
		return evalDescendants(selected)

	case *types.Wildcard:
		// The wildcard matches every tag, making it equivalent to the
		// descendant expansion.
		return evalDescendants(selected)

	case *types.Tag:
		pos = make([]types.Node, 0, len(selected))
		for _, n := range selected {
			if n.TagName() == x.Name {
				pos = append(pos, n)
			}
		}
		// Non-matching nodes are dropped, not tracked, at the step level.
		return pos, nil, nil

	case *types.Comparison:
		return evalComparison(x, selected, rejected)

	case *types.Logical:
		return evalLogical(x, selected, rejected)

	case *types.TextPredicate:
		return evalTextPredicate(x, selected)

	case *types.Length:
		return nil, nil, types.NewError(types.ErrUnsupportedLength,
			"The length predicate is reserved and cannot be evaluated", -1)

	case *types.Text, *types.AttributeValue:
		// Terminal steps are handled by the pipeline fold; reaching one here
		// means the pipeline was not produced by the compiler.
		return nil, nil, types.NewError(types.ErrStepAfterTerminal,
			"Terminal step in non-terminal position", -1)

	case *types.AttributeRef, *types.StringLit, *types.NumberLit:
		return nil, nil, types.NewError(types.ErrInvalidOperand,
			"Bare operand cannot be evaluated as a step", -1)

	default:
		return nil, nil, types.NewError(types.ErrInvalidOperand,
			"Unknown expression variant", -1)
	}
}

// evalDescendants expands every selected node to its descendants, self
// excluded, in document order. The rejected set is reset.
func evalDescendants(selected []types.Node) (pos, neg []types.Node, err error) {
	var out []types.Node
	for _, n := range selected {
		out = append(out, n.Descendants()...)
	}
	return out, nil, nil
}
