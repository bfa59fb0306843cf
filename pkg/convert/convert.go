// Package convert implements the Rule Converter (§4.3): turning a parsed
// boolean AST into the StateVector of assignments that satisfy it, using
// only primitive literal encodings and the algebra in pkg/statevector —
// never by enumerating 2^n assignments.
package convert

import (
	"errors"
	"fmt"

	"github.com/mrhapile/stateforge/pkg/ruleast"
	"github.com/mrhapile/stateforge/pkg/statevector"
	"github.com/mrhapile/stateforge/pkg/ternary"
)

// ErrUnknownVariable is returned when a rule references a name that was
// never declared on the engine.
var ErrUnknownVariable = errors.New("unknown variable")

// Convert turns n into the StateVector of assignments over n variables
// (len(index)) that satisfy it. index maps a declared variable name to its
// position.
func Convert(n ruleast.Node, index map[string]int) (*statevector.StateVector, error) {
	numVars := len(index)
	sv, err := convert(n, index, numVars)
	if err != nil {
		return nil, err
	}
	sv.Simplify()
	return sv, nil
}

// Complement returns the StateVector satisfying ¬n, obtained structurally
// via ruleast.Negate and a fresh conversion — never by expanding n's
// StateVector into concrete assignments.
func Complement(n ruleast.Node, index map[string]int) (*statevector.StateVector, error) {
	return Convert(ruleast.Negate(n), index)
}

func convert(n ruleast.Node, index map[string]int, numVars int) (*statevector.StateVector, error) {
	switch v := n.(type) {
	case ruleast.Var:
		return literal(v.Name, ternary.T, index, numVars)
	case ruleast.Not:
		return convertNegatedLiteralOrGeneral(v.Child, index, numVars)
	case ruleast.Bin:
		return convertBin(v, index, numVars)
	default:
		return nil, fmt.Errorf("convert: unknown node kind %T", n)
	}
}

// convertNegatedLiteralOrGeneral handles Not{Child}: if Child is a bare
// Var this is the literal encoding ¬v_i directly (§4.3's "¬v_i alone"
// primitive); otherwise it recurses via the structural De Morgan rewrite
// in ruleast.Negate.
func convertNegatedLiteralOrGeneral(child ruleast.Node, index map[string]int, numVars int) (*statevector.StateVector, error) {
	if v, ok := child.(ruleast.Var); ok {
		return literal(v.Name, ternary.F, index, numVars)
	}
	return convert(ruleast.Negate(child), index, numVars)
}

func literal(name string, v ternary.Value, index map[string]int, numVars int) (*statevector.StateVector, error) {
	pos, ok := index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	sv := statevector.New(numVars)
	t := ternary.New(numVars)
	t.Set(pos, v)
	sv.Push(t)
	return sv, nil
}

func convertBin(b ruleast.Bin, index map[string]int, numVars int) (*statevector.StateVector, error) {
	a, err := convert(b.Left, index, numVars)
	if err != nil {
		return nil, err
	}
	c, err := convert(b.Right, index, numVars)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ruleast.AND:
		return a.Multiply(c), nil
	case ruleast.OR:
		return union(a, c), nil
	case ruleast.XOR:
		notA, err := convert(ruleast.Negate(b.Left), index, numVars)
		if err != nil {
			return nil, err
		}
		notC, err := convert(ruleast.Negate(b.Right), index, numVars)
		if err != nil {
			return nil, err
		}
		return union(a.Multiply(notC), notA.Multiply(c)), nil
	case ruleast.IMPLIES:
		notA, err := convert(ruleast.Negate(b.Left), index, numVars)
		if err != nil {
			return nil, err
		}
		return union(notA, c), nil
	case ruleast.REVIMPLIES:
		notC, err := convert(ruleast.Negate(b.Right), index, numVars)
		if err != nil {
			return nil, err
		}
		return union(a, notC), nil
	case ruleast.EQUIV:
		notA, err := convert(ruleast.Negate(b.Left), index, numVars)
		if err != nil {
			return nil, err
		}
		notC, err := convert(ruleast.Negate(b.Right), index, numVars)
		if err != nil {
			return nil, err
		}
		return union(a.Multiply(c), notA.Multiply(notC)), nil
	default:
		return nil, fmt.Errorf("convert: unknown op %v", b.Op)
	}
}

// union computes A ∪ B as a StateVector: every member of both, simplified.
func union(a, b *statevector.StateVector) *statevector.StateVector {
	out := statevector.New(a.NumVars())
	for _, m := range a.Members() {
		out.Push(m)
	}
	for _, m := range b.Members() {
		out.Push(m)
	}
	out.Simplify()
	return out
}
