// Package ruleast defines the abstract syntax tree the rule grammar (§6)
// parses into: variable references, negation, and the six binary
// connectives. It is deliberately the minimal contract an external parser
// must satisfy — nothing in this package knows how to tokenize a rule
// string.
package ruleast

// Op identifies a binary connective.
type Op int

const (
	// AND is logical conjunction, "&&".
	AND Op = iota
	// OR is logical disjunction, "||".
	OR
	// XOR is exclusive or, "^^".
	XOR
	// IMPLIES is material implication, "=>".
	IMPLIES
	// REVIMPLIES is reverse implication, "<=".
	REVIMPLIES
	// EQUIV is equivalence, "=".
	EQUIV
)

func (o Op) String() string {
	switch o {
	case AND:
		return "&&"
	case OR:
		return "||"
	case XOR:
		return "^^"
	case IMPLIES:
		return "=>"
	case REVIMPLIES:
		return "<="
	case EQUIV:
		return "="
	default:
		return "?"
	}
}

// Node is a tagged-variant AST node: exactly one of Var, Not, or Bin.
type Node interface {
	node()
}

// Var is a reference to a declared variable by name.
type Var struct {
	Name string
}

func (Var) node() {}

// Not is logical negation of a sub-expression.
type Not struct {
	Child Node
}

func (Not) node() {}

// Bin is a binary connective applied to two sub-expressions.
type Bin struct {
	Op    Op
	Left  Node
	Right Node
}

func (Bin) node() {}

// Negate returns the structural negation of n via De Morgan's laws,
// without ever touching a concrete assignment: ¬¬e = e, ¬(a⊗b) rewritten
// per connective, ¬Var = Not{Var}. This is what lets the Rule Converter
// obtain a node's complement by re-converting Negate(n) instead of
// enumerating assignments.
func Negate(n Node) Node {
	switch v := n.(type) {
	case Var:
		return Not{Child: v}
	case Not:
		return v.Child
	case Bin:
		return negateBin(v)
	default:
		panic("ruleast: unknown node kind")
	}
}

func negateBin(b Bin) Node {
	switch b.Op {
	case AND:
		// ¬(a && b) = ¬a || ¬b
		return Bin{Op: OR, Left: Negate(b.Left), Right: Negate(b.Right)}
	case OR:
		// ¬(a || b) = ¬a && ¬b
		return Bin{Op: AND, Left: Negate(b.Left), Right: Negate(b.Right)}
	case XOR:
		// ¬(a ^^ b) = a = b
		return Bin{Op: EQUIV, Left: b.Left, Right: b.Right}
	case IMPLIES:
		// ¬(a => b) = a && ¬b
		return Bin{Op: AND, Left: b.Left, Right: Negate(b.Right)}
	case REVIMPLIES:
		// ¬(a <= b) = ¬a && b
		return Bin{Op: AND, Left: Negate(b.Left), Right: b.Right}
	case EQUIV:
		// ¬(a = b) = a ^^ b
		return Bin{Op: XOR, Left: b.Left, Right: b.Right}
	default:
		panic("ruleast: unknown op")
	}
}
