// Package ruleparser is the external parser §6 assumes: it tokenizes one
// rule string of the form "LHS OP RHS" and builds the ruleast.Node tree the
// Rule Converter consumes. It knows nothing about variables, ternary
// values, or StateVectors — only the grammar.
package ruleparser

import (
	"fmt"

	"github.com/mrhapile/stateforge/pkg/ruleast"
)

type parser struct {
	toks []token
	pos  int
}

// Parse tokenizes and parses a rule string into a ruleast.Node, per the
// precedence table in §6 (low to high): "=", "=>"/"<=", "^^", "||", "&&",
// then unary "!" binding tighter than anything binary.
func Parse(rule string) (ruleast.Node, error) {
	toks, err := lex(rule)
	if err != nil {
		return nil, fmt.Errorf("lex error: %w", err)
	}
	p := &parser{toks: toks}
	node, err := p.parseEquiv()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected token %q at position %d", p.peek().text, p.peek().pos)
	}
	return node, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) parseEquiv() (ruleast.Node, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokEquiv {
		p.advance()
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = ruleast.Bin{Op: ruleast.EQUIV, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseImplies() (ruleast.Node, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokImplies || p.peek().kind == tokRevImplies {
		op := ruleast.IMPLIES
		if p.peek().kind == tokRevImplies {
			op = ruleast.REVIMPLIES
		}
		p.advance()
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = ruleast.Bin{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseXor() (ruleast.Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokXor {
		p.advance()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = ruleast.Bin{Op: ruleast.XOR, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseOr() (ruleast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ruleast.Bin{Op: ruleast.OR, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (ruleast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ruleast.Bin{Op: ruleast.AND, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (ruleast.Node, error) {
	if p.peek().kind == tokNot {
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ruleast.Not{Child: child}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ruleast.Node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokIdent:
		p.advance()
		return ruleast.Var{Name: tok.text}, nil
	case tokLParen:
		p.advance()
		node, err := p.parseEquiv()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("expected ')' at position %d", p.peek().pos)
		}
		p.advance()
		return node, nil
	default:
		return nil, fmt.Errorf("unexpected token %q at position %d", tok.text, tok.pos)
	}
}
