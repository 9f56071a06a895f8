package main

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Grammar for infix arithmetic over non-negative integers:
//
//	sum     = product { ("+" | "-") product }
//	product = factor  { ("*" | "/") factor }
//	factor  = Int | "(" sum ")"
//
// "x", "×", "÷" and "−" are accepted as operator aliases.
type sumAST struct {
	Head *productAST `@@`
	Tail []*sumTail  `@@*`
}

type sumTail struct {
	Op      string      `@("+" | "-" | "−")`
	Product *productAST `@@`
}

type productAST struct {
	Head *factorAST     `@@`
	Tail []*productTail `@@*`
}

type productTail struct {
	Op     string     `@("*" | "/" | "x" | "X" | "×" | "÷")`
	Factor *factorAST `@@`
}

type factorAST struct {
	Number *int    `  @Int`
	Sub    *sumAST `| "(" @@ ")"`
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Op", Pattern: `[-+*/xX×÷−]`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[sumAST](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

// ParseExpression parses an infix expression such as "5 * 2 * 2 - 1" into an Expr.
// Operators of equal precedence associate to the left.
func ParseExpression(s string) (*Expr, error) {
	ast, err := exprParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return ast.expr()
}

func (s *sumAST) expr() (*Expr, error) {
	left, err := s.Head.expr()
	if err != nil {
		return nil, err
	}
	for _, t := range s.Tail {
		right, err := t.Product.expr()
		if err != nil {
			return nil, err
		}
		op, _ := parseOp(t.Op)
		left = Node(op, left, right)
	}
	return left, nil
}

func (p *productAST) expr() (*Expr, error) {
	left, err := p.Head.expr()
	if err != nil {
		return nil, err
	}
	for _, t := range p.Tail {
		right, err := t.Factor.expr()
		if err != nil {
			return nil, err
		}
		op, _ := parseOp(t.Op)
		left = Node(op, left, right)
	}
	return left, nil
}

func (f *factorAST) expr() (*Expr, error) {
	switch {
	case f.Number != nil:
		return Leaf(*f.Number), nil
	case f.Sub != nil:
		return f.Sub.expr()
	}
	return nil, fmt.Errorf("%w: empty factor", ErrParse)
}
