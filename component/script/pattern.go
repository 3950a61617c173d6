package script

import (
	"github.com/dhamidi/velo/component/estree"
)

// parseBindingAtom parses a destructuring target: identifier, array pattern
// or object pattern. Type annotations are skipped when TypeScript is on.
func (p *Parser) parseBindingAtom() *estree.Node {
	switch {
	case p.at("["):
		return p.parseArrayPattern()
	case p.at("{"):
		return p.parseObjectPattern()
	case p.cur.Kind == TokenIdent:
		node := estree.Identifier(p.cur.Value, p.cur.Start, p.cur.End)
		p.next()
		p.skipTypeAnnotation()
		return node
	default:
		p.fail("expected_pattern", "expected a binding pattern")
		node := estree.EmptyIdentifier(p.cur.Start)
		p.next()
		return node
	}
}

// parseBindingElement parses a binding with an optional default:
// `pattern` or `pattern = expr` or `...pattern`.
func (p *Parser) parseBindingElement() *estree.Node {
	if p.at("...") {
		start := p.cur.Start
		p.next()
		rest := estree.NewNode("RestElement", start, 0)
		rest.Set("argument", p.parseBindingAtom())
		rest.SetEnd(p.lastEnd)
		return rest
	}

	start := p.cur.Start
	pat := p.parseBindingAtom()
	if p.eat("=") {
		node := estree.NewNode("AssignmentPattern", start, 0)
		node.Set("left", pat)
		node.Set("right", p.parseAssign())
		node.SetEnd(p.lastEnd)
		return node
	}
	return pat
}

func (p *Parser) parseArrayPattern() *estree.Node {
	start := p.cur.Start
	p.expect("[")
	elements := []any{}
	for !p.at("]") && p.cur.Kind != TokenEOF && p.err == nil {
		if p.at(",") {
			elements = append(elements, nil)
			p.next()
			continue
		}
		elements = append(elements, p.parseBindingElement())
		if !p.at("]") {
			p.expect(",")
		}
	}
	p.expect("]")
	node := estree.NewNode("ArrayPattern", start, p.lastEnd)
	node.Set("elements", elements)
	p.skipTypeAnnotation()
	return node
}

func (p *Parser) parseObjectPattern() *estree.Node {
	start := p.cur.Start
	p.expect("{")
	properties := []*estree.Node{}
	for !p.at("}") && p.cur.Kind != TokenEOF && p.err == nil {
		if p.at("...") {
			restStart := p.cur.Start
			p.next()
			rest := estree.NewNode("RestElement", restStart, 0)
			rest.Set("argument", p.parseBindingAtom())
			rest.SetEnd(p.lastEnd)
			properties = append(properties, rest)
		} else {
			properties = append(properties, p.parsePatternProperty())
		}
		if !p.at("}") {
			p.expect(",")
		}
	}
	p.expect("}")
	node := estree.NewNode("ObjectPattern", start, p.lastEnd)
	node.Set("properties", properties)
	p.skipTypeAnnotation()
	return node
}

func (p *Parser) parsePatternProperty() *estree.Node {
	start := p.cur.Start
	node := estree.NewNode("Property", start, 0)
	node.Set("method", false)
	node.Set("shorthand", false)
	node.Set("computed", false)

	computed := false
	var key *estree.Node
	switch {
	case p.at("["):
		p.next()
		computed = true
		key = p.parseAssign()
		p.expect("]")
	case p.cur.Kind == TokenString || p.cur.Kind == TokenNumber:
		key = p.parseExprAtom()
	default:
		key = p.parseIdentName()
	}
	node.Set("computed", computed)
	node.Set("key", key)

	if p.eat(":") {
		node.Set("value", p.parseBindingElement())
	} else {
		node.Set("shorthand", true)
		if p.at("=") {
			p.next()
			pat := estree.NewNode("AssignmentPattern", key.Start(), 0)
			pat.Set("left", key)
			pat.Set("right", p.parseAssign())
			pat.SetEnd(p.lastEnd)
			node.Set("value", pat)
		} else {
			node.Set("value", key)
		}
	}
	node.Set("kind", "init")
	node.SetEnd(p.lastEnd)
	return node
}

// skipTypeAnnotation consumes `: Type` after a binding when parsing
// TypeScript. The annotation is dropped, matching the canonical output.
func (p *Parser) skipTypeAnnotation() {
	if !p.ts || !p.at(":") {
		return
	}
	p.next()
	_, end, _ := ParseTypeAnnotationAt(p.lex.input, p.cur.Start, p.ts)
	p.lex.pos = end
	p.lex.prev = Token{Kind: TokenIdent, Value: "type"}
	p.lastEnd = end
	p.cur = p.lex.Next()
}
