package evaluator

import (
	"cmp"
	"strings"

	"github.com/treepath/treepath/pkg/types"
)

// Predicate evaluation.
//
// Every predicate partitions its input selected set: each input node lands in
// exactly one of the two output sets, and no node is introduced that was not
// in the input. The incoming rejected set is consumed only by 'not', which
// swaps the pair instead of evaluating its child.

// operandValue is the evaluated value of a comparison operand. Attribute
// values are always strings; only number literals produce numeric values.
type operandValue struct {
	isNum bool
	str   string
	num   int
}

// evalComparison implements the six relational predicates.
//
// Operand kinds are validated here, at evaluation time, not at compile time:
// a syntactically valid predicate compiles and only fails the first time it
// is evaluated. c.Right is the right-hand infix operand (first postfix pop),
// c.Left the left-hand one.
func evalComparison(c *types.Comparison, selected, rejected []types.Node) (pos, neg []types.Node, err error) {
	if err := checkComparisonOperands(c); err != nil {
		return nil, nil, err
	}

	lAttr, lIsAttr := c.Left.(*types.AttributeRef)
	rAttr, rIsAttr := c.Right.(*types.AttributeRef)

	// Literal arguments only: a global test, independent of per-node
	// attributes. On success the pair passes through unchanged; on failure
	// every previously selected node becomes rejected.
	if !lIsAttr && !rIsAttr {
		holds, err := compareValues(literalValue(c.Left), literalValue(c.Right), c.Op)
		if err != nil {
			return nil, nil, err
		}
		if holds {
			return selected, rejected, nil
		}
		return nil, selected, nil
	}

	// Both arguments are attribute references: a node is selected when it
	// carries both attributes and the comparison between the two attribute
	// values holds.
	if lIsAttr && rIsAttr {
		return partition(selected, func(n types.Node) (bool, error) {
			attrs := n.Attributes()
			lv, lok := attrs[lAttr.Name]
			rv, rok := attrs[rAttr.Name]
			if !lok || !rok {
				return false, nil
			}
			return compareValues(operandValue{str: lv}, operandValue{str: rv}, c.Op)
		})
	}

	// One attribute reference, one literal.
	if lIsAttr {
		lit := literalValue(c.Right)
		return partition(selected, func(n types.Node) (bool, error) {
			v, ok := n.Attributes()[lAttr.Name]
			if !ok {
				return false, nil
			}
			return compareValues(operandValue{str: v}, lit, c.Op)
		})
	}

	lit := literalValue(c.Left)
	return partition(selected, func(n types.Node) (bool, error) {
		v, ok := n.Attributes()[rAttr.Name]
		if !ok {
			return false, nil
		}
		return compareValues(lit, operandValue{str: v}, c.Op)
	})
}

// checkComparisonOperands validates that both operands are comparable kinds
// and that number and string literals are not mixed.
func checkComparisonOperands(c *types.Comparison) error {
	for _, operand := range []types.Expr{c.Left, c.Right} {
		if !types.IsOperand(operand) {
			return types.NewError(types.ErrInvalidOperand,
				"Invalid operand for comparison operator "+c.Op.String(), -1)
		}
	}
	_, lNum := c.Left.(*types.NumberLit)
	_, lStr := c.Left.(*types.StringLit)
	_, rNum := c.Right.(*types.NumberLit)
	_, rStr := c.Right.(*types.StringLit)
	if (lNum && rStr) || (lStr && rNum) {
		return types.NewError(types.ErrLiteralMismatch,
			"Cannot compare a string literal with a number literal", -1)
	}
	return nil
}

// literalValue extracts the native value of a literal operand.
func literalValue(e types.Expr) operandValue {
	switch v := e.(type) {
	case *types.StringLit:
		return operandValue{str: v.Value}
	case *types.NumberLit:
		return operandValue{isNum: true, num: v.Value}
	default:
		// Guarded by checkComparisonOperands.
		return operandValue{}
	}
}

// compareValues applies op to left and right in infix order.
//
// Strings compare lexically and numbers numerically; attribute values are
// strings and are never numerically coerced. A string and a number are
// defined to be unequal, but have no relative order: ordering them is a
// type error.
func compareValues(left, right operandValue, op types.CompareOp) (bool, error) {
	switch {
	case left.isNum && right.isNum:
		return holds(left.num, right.num, op), nil
	case !left.isNum && !right.isNum:
		return holds(left.str, right.str, op), nil
	default:
		switch op {
		case types.CompareEq:
			return false, nil
		case types.CompareNe:
			return true, nil
		default:
			return false, types.NewError(types.ErrUnorderedOperands,
				"No ordering between a string and a number", -1)
		}
	}
}

// holds applies a relational operator to two values of the same ordered type.
func holds[T cmp.Ordered](left, right T, op types.CompareOp) bool {
	switch op {
	case types.CompareGt:
		return left > right
	case types.CompareGe:
		return left >= right
	case types.CompareLt:
		return left < right
	case types.CompareLe:
		return left <= right
	case types.CompareEq:
		return left == right
	case types.CompareNe:
		return left != right
	default:
		return false
	}
}

// partition splits selected into the nodes matching the test and the rest,
// preserving input order on both sides.
func partition(selected []types.Node, test func(types.Node) (bool, error)) (pos, neg []types.Node, err error) {
	for _, n := range selected {
		ok, err := test(n)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			pos = append(pos, n)
		} else {
			neg = append(neg, n)
		}
	}
	return pos, neg, nil
}

// evalLogical implements the and/or/not combinators.
//
// And and or evaluate both children against the same input pair and combine
// the outputs. Not is different: it never evaluates its child, it inverts
// the classification made by whatever predicate produced the current pair.
func evalLogical(l *types.Logical, selected, rejected []types.Node) (pos, neg []types.Node, err error) {
	if l.Op == types.LogicalNot {
		return rejected, selected, nil
	}

	aPos, aNeg, err := evalExpr(l.Right, selected, rejected)
	if err != nil {
		return nil, nil, err
	}
	bPos, bNeg, err := evalExpr(l.Left, selected, rejected)
	if err != nil {
		return nil, nil, err
	}

	inA, inB := memberSet(aPos), memberSet(bPos)
	keep := func(n types.Node) bool {
		_, a := inA[n]
		_, b := inB[n]
		if l.Op == types.LogicalAnd {
			return a && b
		}
		return a || b
	}
	touched := memberSet(aPos, aNeg, bPos, bNeg)

	// Walk the input pair in order so the combined sets stay in document
	// order regardless of which child claimed a node. Everything either
	// child touched that did not make the cut is rejected.
	seen := make(map[types.Node]struct{}, len(selected)+len(rejected))
	classify := func(nodes []types.Node) {
		for _, n := range nodes {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			if keep(n) {
				pos = append(pos, n)
			} else if _, ok := touched[n]; ok {
				neg = append(neg, n)
			}
		}
	}
	classify(selected)
	classify(rejected)
	return pos, neg, nil
}

// evalTextPredicate implements contains, starts-with and ends-with.
//
// Exactly one operand must be an attribute reference and the other a string
// literal, in either order. Nodes carrying the attribute with a matching
// value are selected; all other input nodes are rejected.
func evalTextPredicate(p *types.TextPredicate, selected []types.Node) (pos, neg []types.Node, err error) {
	var attr, value string
	switch a := p.Right.(type) {
	case *types.AttributeRef:
		s, ok := p.Left.(*types.StringLit)
		if !ok {
			return nil, nil, badTextOperands(p)
		}
		attr, value = a.Name, s.Value
	case *types.StringLit:
		r, ok := p.Left.(*types.AttributeRef)
		if !ok {
			return nil, nil, badTextOperands(p)
		}
		attr, value = r.Name, a.Value
	default:
		return nil, nil, badTextOperands(p)
	}

	var match func(string, string) bool
	switch p.Op {
	case types.TextStartsWith:
		match = strings.HasPrefix
	case types.TextEndsWith:
		match = strings.HasSuffix
	default:
		match = strings.Contains
	}

	return partition(selected, func(n types.Node) (bool, error) {
		v, ok := n.Attributes()[attr]
		return ok && match(v, value), nil
	})
}

func badTextOperands(p *types.TextPredicate) error {
	return types.NewError(types.ErrInvalidTextOperand,
		p.Op.String()+" requires one attribute reference and one string literal", -1)
}

// memberSet builds a membership set over one or more node slices. Node
// implementations must be comparable (typically pointers) for this to work.
func memberSet(slices ...[]types.Node) map[types.Node]struct{} {
	set := make(map[types.Node]struct{})
	for _, nodes := range slices {
		for _, n := range nodes {
			set[n] = struct{}{}
		}
	}
	return set
}
