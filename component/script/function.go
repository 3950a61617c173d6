package script

import (
	"github.com/dhamidi/velo/component/estree"
)

// state is a full parser snapshot used for backtracking in arrow-function
// detection.
type state struct {
	lexPos      int
	lexPrev     Token
	lexComments int
	lexErr      *Error
	cur         Token
	lastEnd     int
	err         *Error
}

func (p *Parser) save() state {
	return state{
		lexPos:      p.lex.pos,
		lexPrev:     p.lex.prev,
		lexComments: len(p.lex.Comments),
		lexErr:      p.lex.err,
		cur:         p.cur,
		lastEnd:     p.lastEnd,
		err:         p.err,
	}
}

func (p *Parser) restore(s state) {
	p.lex.pos = s.lexPos
	p.lex.prev = s.lexPrev
	p.lex.Comments = p.lex.Comments[:s.lexComments]
	p.lex.err = s.lexErr
	p.cur = s.cur
	p.lastEnd = s.lastEnd
	p.err = s.err
}

// tryParseArrow attempts to parse an arrow function at the current position
// and backtracks, returning nil, when the lookahead is not an arrow.
func (p *Parser) tryParseArrow() *estree.Node {
	start := p.cur.Start
	async := false
	s := p.save()

	if p.cur.Kind == TokenIdent && p.cur.Value == "async" {
		probe := p.save()
		p.next()
		if p.at("(") || p.cur.Kind == TokenIdent {
			async = true
		} else {
			p.restore(probe)
		}
	}

	// Single-identifier parameter: `x => ...`
	if p.cur.Kind == TokenIdent {
		ident := estree.Identifier(p.cur.Value, p.cur.Start, p.cur.End)
		p.next()
		if p.at("=>") {
			p.next()
			return p.finishArrow(start, async, []*estree.Node{ident})
		}
		p.restore(s)
		return nil
	}

	// Parenthesized parameter list: `(a, b = 1, ...rest) => ...`
	if p.at("(") {
		p.next()
		params := []*estree.Node{}
		for !p.at(")") && p.cur.Kind != TokenEOF && p.err == nil {
			params = append(params, p.parseBindingElement())
			if !p.at(")") && !p.eat(",") {
				break
			}
		}
		if p.err == nil && p.eat(")") && p.eat("=>") {
			return p.finishArrow(start, async, params)
		}
		p.restore(s)
		return nil
	}

	p.restore(s)
	return nil
}

func (p *Parser) finishArrow(start int, async bool, params []*estree.Node) *estree.Node {
	node := estree.NewNode("ArrowFunctionExpression", start, 0)
	node.Set("id", nil)
	node.Set("generator", false)
	node.Set("async", async)
	node.Set("params", params)
	if p.at("{") {
		node.Set("expression", false)
		node.Set("body", p.parseBlock())
	} else {
		node.Set("expression", true)
		node.Set("body", p.parseAssign())
	}
	node.SetEnd(p.lastEnd)
	return node
}

// parseFunctionExpression parses `function [name](params) { ... }` with the
// `function` keyword as the current token.
func (p *Parser) parseFunctionExpression() *estree.Node {
	start := p.cur.Start
	p.expect("function")
	return p.parseFunctionRestKeyword(start, false, "FunctionExpression")
}

// parseFunctionRestKeyword finishes a function after the `function` keyword
// has been consumed.
func (p *Parser) parseFunctionRestKeyword(start int, async bool, typ string) *estree.Node {
	generator := p.eat("*")

	var id *estree.Node
	if p.cur.Kind == TokenIdent {
		id = estree.Identifier(p.cur.Value, p.cur.Start, p.cur.End)
		p.next()
	}

	node := estree.NewNode(typ, start, 0)
	node.Set("id", id)
	node.Set("expression", false)
	node.Set("generator", generator)
	node.Set("async", async)
	node.Set("params", p.parseParams())
	node.Set("body", p.parseBlock())
	node.SetEnd(p.lastEnd)
	return node
}

// parseFunctionRest finishes a method-shorthand function whose name has
// already been parsed; the current token is `(`.
func (p *Parser) parseFunctionRest(start int, id *estree.Node, async bool) *estree.Node {
	node := estree.NewNode("FunctionExpression", start, 0)
	node.Set("id", id)
	node.Set("expression", false)
	node.Set("generator", false)
	node.Set("async", async)
	node.Set("params", p.parseParams())
	node.Set("body", p.parseBlock())
	node.SetEnd(p.lastEnd)
	return node
}

func (p *Parser) parseParams() []*estree.Node {
	p.expect("(")
	params := []*estree.Node{}
	for !p.at(")") && p.cur.Kind != TokenEOF && p.err == nil {
		params = append(params, p.parseBindingElement())
		if !p.eat(",") {
			break
		}
	}
	p.expect(")")
	return params
}

func (p *Parser) parseBlock() *estree.Node {
	start := p.cur.Start
	p.expect("{")
	body := []*estree.Node{}
	for !p.at("}") && p.cur.Kind != TokenEOF && p.err == nil {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		body = append(body, stmt)
	}
	p.expect("}")
	node := estree.NewNode("BlockStatement", start, p.lastEnd)
	node.Set("body", body)
	return node
}
