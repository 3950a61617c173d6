// Package script is the embedded sub-parser for expressions, patterns and
// programs inside component files. It consumes the full component source
// with a start offset, so every node it produces carries absolute byte
// offsets. Results are generic estree nodes; the estree package's
// canonicalizer is applied by the caller, not here.
package script

import (
	"github.com/dhamidi/velo/component/estree"
)

// Parser is a recursive-descent parser with one token of lookahead.
type Parser struct {
	lex     *Lexer
	cur     Token
	lastEnd int
	ts      bool
	err     *Error
}

func newParser(source []byte, offset int, ts bool) *Parser {
	p := &Parser{lex: NewLexer(source, offset), ts: ts, lastEnd: offset}
	p.cur = p.lex.Next()
	return p
}

func (p *Parser) next() {
	p.lastEnd = p.cur.End
	p.cur = p.lex.Next()
	if p.err == nil && p.lex.Err() != nil {
		p.err = p.lex.Err()
	}
}

func (p *Parser) fail(code, message string) {
	if p.err == nil {
		p.err = &Error{Code: code, Message: message, Start: p.cur.Start, End: p.cur.End}
	}
}

// at reports whether the current token is the given punctuator, keyword, or
// contextual keyword (`of`, `as`, `from`, `async` lex as identifiers).
func (p *Parser) at(value string) bool {
	switch p.cur.Kind {
	case TokenPunct, TokenKeyword, TokenIdent:
		return p.cur.Value == value
	default:
		return false
	}
}

func (p *Parser) eat(value string) bool {
	if p.at(value) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(value string) {
	if !p.eat(value) {
		p.fail("expected_token", "expected '"+value+"'")
	}
}

// ParseExpressionAt parses a single expression starting at offset. It
// returns the expression node and the offset of the first byte after it.
func ParseExpressionAt(source []byte, offset int, ts bool) (*estree.Node, int, *Error) {
	p := newParser(source, offset, ts)
	expr := p.parseExpression()
	if p.err != nil {
		return nil, offset, p.err
	}
	return expr, p.lastEnd, nil
}

// ParsePatternAt parses a binding pattern (identifier, array or object
// pattern, with defaults and rest elements) starting at offset.
func ParsePatternAt(source []byte, offset int, ts bool) (*estree.Node, int, *Error) {
	p := newParser(source, offset, ts)
	pat := p.parseBindingElement()
	if p.err != nil {
		return nil, offset, p.err
	}
	return pat, p.lastEnd, nil
}

// ParseVariableDeclarationAt parses a `const`/`let`/`var` declaration
// starting at offset, without a required trailing semicolon.
func ParseVariableDeclarationAt(source []byte, offset int, ts bool) (*estree.Node, int, *Error) {
	p := newParser(source, offset, ts)
	decl := p.parseVariableDeclaration()
	if p.err != nil {
		return nil, offset, p.err
	}
	return decl, p.lastEnd, nil
}

// ParseTypeAnnotationAt consumes a type annotation (everything up to a
// top-level `,`, `=`, `)`, `]`, `}` or `>`) and returns an opaque node
// covering it.
// Type annotations never survive canonicalization, so only the span matters.
func ParseTypeAnnotationAt(source []byte, offset int, _ bool) (*estree.Node, int, *Error) {
	depth := 0
	i := offset
	for i < len(source) {
		switch source[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth == 0 {
				goto done
			}
			depth--
		case ',', '=':
			if depth == 0 {
				goto done
			}
		}
		i++
	}
done:
	n := estree.NewNode("TSTypeAnnotation", offset, i)
	return n, i, nil
}

// ParseProgramAt parses the statements in source[offset:end] as a module
// program. Comments are attached to statements as leadingComments.
func ParseProgramAt(source []byte, offset, end int, ts bool) (*estree.Node, *Error) {
	if end > len(source) {
		end = len(source)
	}
	p := newParser(source[:end], offset, ts)
	program := estree.NewNode("Program", offset, end)
	var body []*estree.Node
	for p.cur.Kind != TokenEOF && p.err == nil {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		body = append(body, stmt)
	}
	if p.err != nil {
		return nil, p.err
	}
	if body == nil {
		body = []*estree.Node{}
	}
	attachComments(body, p.lex.Comments)
	program.Set("body", body)
	program.Set("sourceType", "module")
	return program, nil
}

// attachComments ties each collected comment to the first statement that
// starts after it, as that statement's leadingComments.
func attachComments(body []*estree.Node, comments []*estree.Node) {
	for _, c := range comments {
		for _, stmt := range body {
			if stmt.Start() >= c.End() {
				var leading []*estree.Node
				if existing, ok := stmt.Get("leadingComments").([]*estree.Node); ok {
					leading = existing
				}
				stmt.Set("leadingComments", append(leading, c))
				break
			}
		}
	}
}
