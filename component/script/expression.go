package script

import (
	"github.com/dhamidi/velo/component/estree"
)

// Binary operator precedence, highest binds tightest. The logical operators
// share this table; parseBinary gives them LogicalExpression nodes.
var binaryPrec = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "in": 8, "instanceof": 8,
	"<<": 9, ">>": 9, ">>>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
	"**": 12,
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, ">>>=": true, "&=": true,
	"|=": true, "^=": true, "&&=": true, "||=": true, "??=": true,
}

// parseExpression parses a full expression including comma sequences.
func (p *Parser) parseExpression() *estree.Node {
	start := p.cur.Start
	expr := p.parseAssign()
	if !p.at(",") {
		return expr
	}
	exprs := []*estree.Node{expr}
	for p.eat(",") {
		exprs = append(exprs, p.parseAssign())
	}
	seq := estree.NewNode("SequenceExpression", start, p.lastEnd)
	seq.Set("expressions", exprs)
	return seq
}

// parseAssign parses an assignment-level expression, including arrow
// functions.
func (p *Parser) parseAssign() *estree.Node {
	if arrow := p.tryParseArrow(); arrow != nil {
		return arrow
	}

	start := p.cur.Start
	left := p.parseConditional()
	if p.cur.Kind == TokenPunct && assignOps[p.cur.Value] {
		op := p.cur.Value
		p.next()
		right := p.parseAssign()
		node := estree.NewNode("AssignmentExpression", start, p.lastEnd)
		node.Set("operator", op)
		node.Set("left", toAssignmentTarget(left))
		node.Set("right", right)
		return node
	}
	return left
}

func (p *Parser) parseConditional() *estree.Node {
	start := p.cur.Start
	test := p.parseBinary(0)
	if !p.eat("?") {
		return test
	}
	consequent := p.parseAssign()
	p.expect(":")
	alternate := p.parseAssign()
	node := estree.NewNode("ConditionalExpression", start, p.lastEnd)
	node.Set("test", test)
	node.Set("consequent", consequent)
	node.Set("alternate", alternate)
	return node
}

func (p *Parser) parseBinary(minPrec int) *estree.Node {
	start := p.cur.Start
	left := p.parseUnary()
	for {
		op := p.cur.Value
		prec, ok := binaryPrec[op]
		if !ok || prec <= minPrec {
			return left
		}
		if p.cur.Kind != TokenPunct && op != "in" && op != "instanceof" {
			return left
		}
		p.next()
		var right *estree.Node
		if op == "**" {
			// Exponentiation is right-associative.
			right = p.parseBinary(prec - 1)
		} else {
			right = p.parseBinary(prec)
		}
		typ := "BinaryExpression"
		if op == "&&" || op == "||" || op == "??" {
			typ = "LogicalExpression"
		}
		node := estree.NewNode(typ, start, p.lastEnd)
		node.Set("left", left)
		node.Set("operator", op)
		node.Set("right", right)
		left = node
	}
}

var unaryOps = map[string]bool{
	"!": true, "~": true, "+": true, "-": true,
	"typeof": true, "void": true, "delete": true,
}

func (p *Parser) parseUnary() *estree.Node {
	start := p.cur.Start

	if p.at("await") {
		p.next()
		node := estree.NewNode("AwaitExpression", start, 0)
		node.Set("argument", p.parseUnary())
		node.SetEnd(p.lastEnd)
		return node
	}

	if unaryOps[p.cur.Value] && (p.cur.Kind == TokenPunct || p.cur.Kind == TokenKeyword) {
		op := p.cur.Value
		p.next()
		node := estree.NewNode("UnaryExpression", start, 0)
		node.Set("operator", op)
		node.Set("prefix", true)
		node.Set("argument", p.parseUnary())
		node.SetEnd(p.lastEnd)
		return node
	}

	if p.at("++") || p.at("--") {
		op := p.cur.Value
		p.next()
		node := estree.NewNode("UpdateExpression", start, 0)
		node.Set("operator", op)
		node.Set("prefix", true)
		node.Set("argument", p.parseUnary())
		node.SetEnd(p.lastEnd)
		return node
	}

	expr := p.parseSubscripts()

	if p.at("++") || p.at("--") {
		op := p.cur.Value
		p.next()
		node := estree.NewNode("UpdateExpression", start, p.lastEnd)
		node.Set("operator", op)
		node.Set("prefix", false)
		node.Set("argument", expr)
		return node
	}
	return expr
}

// parseSubscripts parses member access, calls and tagged templates. When an
// optional link (`?.`) appears anywhere in the chain, the outermost result
// is wrapped in a ChainExpression, per ESTree.
func (p *Parser) parseSubscripts() *estree.Node {
	start := p.cur.Start
	base := p.parseExprAtom()
	optionalChain := false

	for {
		switch {
		case p.at("."):
			p.next()
			property := p.parseIdentName()
			node := estree.NewNode("MemberExpression", start, p.lastEnd)
			node.Set("object", base)
			node.Set("property", property)
			node.Set("computed", false)
			node.Set("optional", false)
			base = node

		case p.at("?."):
			p.next()
			optionalChain = true
			if p.at("(") {
				base = p.finishCall(start, base, true)
			} else if p.at("[") {
				p.next()
				property := p.parseExpression()
				p.expect("]")
				node := estree.NewNode("MemberExpression", start, p.lastEnd)
				node.Set("object", base)
				node.Set("property", property)
				node.Set("computed", true)
				node.Set("optional", true)
				base = node
			} else {
				property := p.parseIdentName()
				node := estree.NewNode("MemberExpression", start, p.lastEnd)
				node.Set("object", base)
				node.Set("property", property)
				node.Set("computed", false)
				node.Set("optional", true)
				base = node
			}

		case p.at("["):
			p.next()
			property := p.parseExpression()
			p.expect("]")
			node := estree.NewNode("MemberExpression", start, p.lastEnd)
			node.Set("object", base)
			node.Set("property", property)
			node.Set("computed", true)
			node.Set("optional", false)
			base = node

		case p.at("("):
			base = p.finishCall(start, base, false)

		case p.cur.Kind == TokenTemplate:
			quasi := p.parseTemplate()
			node := estree.NewNode("TaggedTemplateExpression", start, p.lastEnd)
			node.Set("tag", base)
			node.Set("quasi", quasi)
			base = node

		default:
			if optionalChain {
				chain := estree.NewNode("ChainExpression", start, p.lastEnd)
				chain.Set("expression", base)
				return chain
			}
			return base
		}
	}
}

func (p *Parser) finishCall(start int, callee *estree.Node, optional bool) *estree.Node {
	p.expect("(")
	args := p.parseArguments()
	node := estree.NewNode("CallExpression", start, p.lastEnd)
	node.Set("callee", callee)
	node.Set("arguments", args)
	node.Set("optional", optional)
	return node
}

// parseArguments parses a `(`-consumed argument list up to and including `)`.
func (p *Parser) parseArguments() []*estree.Node {
	args := []*estree.Node{}
	for !p.at(")") && p.cur.Kind != TokenEOF && p.err == nil {
		if p.at("...") {
			start := p.cur.Start
			p.next()
			spread := estree.NewNode("SpreadElement", start, 0)
			spread.Set("argument", p.parseAssign())
			spread.SetEnd(p.lastEnd)
			args = append(args, spread)
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.eat(",") {
			break
		}
	}
	p.expect(")")
	return args
}

func (p *Parser) parseIdentName() *estree.Node {
	if p.cur.Kind != TokenIdent && p.cur.Kind != TokenKeyword {
		p.fail("expected_token", "expected property name")
		return estree.EmptyIdentifier(p.cur.Start)
	}
	node := estree.Identifier(p.cur.Value, p.cur.Start, p.cur.End)
	p.next()
	return node
}

func (p *Parser) parseExprAtom() *estree.Node {
	start := p.cur.Start
	switch p.cur.Kind {
	case TokenIdent:
		name := p.cur.Value
		p.next()
		if name == "async" && p.at("function") {
			p.next()
			return p.parseFunctionRestKeyword(start, true, "FunctionExpression")
		}
		return estree.Identifier(name, start, p.lastEnd)

	case TokenNumber:
		tok := p.cur
		p.next()
		node := estree.NewNode("Literal", tok.Start, tok.End)
		if tok.BigInt {
			node.Set("value", nil)
			node.Set("raw", tok.Raw)
			node.Set("bigint", tok.Raw[:len(tok.Raw)-1])
		} else {
			node.Set("value", tok.Number)
			node.Set("raw", tok.Raw)
		}
		return node

	case TokenString:
		tok := p.cur
		p.next()
		node := estree.NewNode("Literal", tok.Start, tok.End)
		node.Set("value", tok.Value)
		node.Set("raw", tok.Raw)
		return node

	case TokenRegexp:
		tok := p.cur
		p.next()
		node := estree.NewNode("Literal", tok.Start, tok.End)
		node.Set("value", nil)
		node.Set("raw", tok.Raw)
		regex := estree.NewObject()
		regex.Set("pattern", tok.Pattern)
		regex.Set("flags", tok.Flags)
		node.Set("regex", regex)
		return node

	case TokenTemplate:
		return p.parseTemplate()

	case TokenKeyword:
		switch p.cur.Value {
		case "null", "true", "false":
			tok := p.cur
			p.next()
			node := estree.NewNode("Literal", tok.Start, tok.End)
			switch tok.Value {
			case "null":
				node.Set("value", nil)
			case "true":
				node.Set("value", true)
			case "false":
				node.Set("value", false)
			}
			node.Set("raw", tok.Raw)
			return node
		case "this":
			p.next()
			return estree.NewNode("ThisExpression", start, p.lastEnd)
		case "super":
			p.next()
			return estree.NewNode("Super", start, p.lastEnd)
		case "new":
			p.next()
			callee := p.parseSubscriptsNoCall()
			args := []*estree.Node{}
			if p.at("(") {
				p.next()
				args = p.parseArguments()
			}
			node := estree.NewNode("NewExpression", start, p.lastEnd)
			node.Set("callee", callee)
			node.Set("arguments", args)
			return node
		case "function":
			return p.parseFunctionExpression()
		case "yield":
			p.next()
			node := estree.NewNode("YieldExpression", start, 0)
			node.Set("delegate", p.eat("*"))
			if p.at(")") || p.at("]") || p.at("}") || p.at(",") || p.at(";") || p.cur.Kind == TokenEOF {
				node.Set("argument", nil)
			} else {
				node.Set("argument", p.parseAssign())
			}
			node.SetEnd(p.lastEnd)
			return node
		}
		// Remaining keywords in expression position are an error.
		p.fail("expected_token", "unexpected keyword '"+p.cur.Value+"'")
		p.next()
		return estree.EmptyIdentifier(start)

	case TokenPunct:
		switch p.cur.Value {
		case "(":
			p.next()
			expr := p.parseExpression()
			p.expect(")")
			return expr
		case "[":
			return p.parseArrayExpression()
		case "{":
			return p.parseObjectExpression()
		}
	}

	p.fail("expected_token", "unexpected token")
	p.next()
	return estree.EmptyIdentifier(start)
}

// parseSubscriptsNoCall parses the callee of `new` — member chains but not
// call expressions.
func (p *Parser) parseSubscriptsNoCall() *estree.Node {
	start := p.cur.Start
	base := p.parseExprAtom()
	for {
		if p.at(".") {
			p.next()
			property := p.parseIdentName()
			node := estree.NewNode("MemberExpression", start, p.lastEnd)
			node.Set("object", base)
			node.Set("property", property)
			node.Set("computed", false)
			node.Set("optional", false)
			base = node
			continue
		}
		if p.at("[") {
			p.next()
			property := p.parseExpression()
			p.expect("]")
			node := estree.NewNode("MemberExpression", start, p.lastEnd)
			node.Set("object", base)
			node.Set("property", property)
			node.Set("computed", true)
			node.Set("optional", false)
			base = node
			continue
		}
		return base
	}
}

func (p *Parser) parseArrayExpression() *estree.Node {
	start := p.cur.Start
	p.expect("[")
	elements := []any{}
	for !p.at("]") && p.cur.Kind != TokenEOF && p.err == nil {
		if p.at(",") {
			elements = append(elements, nil)
			p.next()
			continue
		}
		if p.at("...") {
			spreadStart := p.cur.Start
			p.next()
			spread := estree.NewNode("SpreadElement", spreadStart, 0)
			spread.Set("argument", p.parseAssign())
			spread.SetEnd(p.lastEnd)
			elements = append(elements, spread)
		} else {
			elements = append(elements, p.parseAssign())
		}
		if !p.at("]") {
			p.expect(",")
		}
	}
	p.expect("]")
	node := estree.NewNode("ArrayExpression", start, p.lastEnd)
	node.Set("elements", elements)
	return node
}

func (p *Parser) parseObjectExpression() *estree.Node {
	start := p.cur.Start
	p.expect("{")
	properties := []*estree.Node{}
	for !p.at("}") && p.cur.Kind != TokenEOF && p.err == nil {
		if p.at("...") {
			spreadStart := p.cur.Start
			p.next()
			spread := estree.NewNode("SpreadElement", spreadStart, 0)
			spread.Set("argument", p.parseAssign())
			spread.SetEnd(p.lastEnd)
			properties = append(properties, spread)
		} else {
			properties = append(properties, p.parseProperty())
		}
		if !p.at("}") {
			p.expect(",")
		}
	}
	p.expect("}")
	node := estree.NewNode("ObjectExpression", start, p.lastEnd)
	node.Set("properties", properties)
	return node
}

func (p *Parser) parseProperty() *estree.Node {
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

	switch {
	case p.eat(":"):
		node.Set("value", p.parseAssign())
		node.Set("kind", "init")
	case p.at("("):
		// Method shorthand: `foo() { ... }`
		fn := p.parseFunctionRest(key.Start(), nil, false)
		node.Set("method", true)
		node.Set("value", fn)
		node.Set("kind", "init")
	default:
		// Shorthand `{ foo }` or with default `{ foo = 1 }`.
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
		node.Set("kind", "init")
	}
	node.SetEnd(p.lastEnd)
	return node
}

func (p *Parser) parseTemplate() *estree.Node {
	start := p.cur.Start // at the backtick
	node := estree.NewNode("TemplateLiteral", start, 0)
	expressions := []*estree.Node{}
	quasis := []*estree.Node{}

	input := p.lex.input
	i := start + 1
	quasiStart := i
	var raw []byte

	flush := func(end int, tail bool) {
		q := estree.NewNode("TemplateElement", quasiStart, end)
		value := estree.NewObject()
		value.Set("raw", string(raw))
		value.Set("cooked", cookTemplate(string(raw)))
		q.Set("value", value)
		q.Set("tail", tail)
		quasis = append(quasis, q)
		raw = nil
	}

	for i < len(input) {
		ch := input[i]
		if ch == '`' {
			flush(i, true)
			i++
			break
		}
		if ch == '\\' && i+1 < len(input) {
			raw = append(raw, input[i], input[i+1])
			i += 2
			continue
		}
		if ch == '$' && i+1 < len(input) && input[i+1] == '{' {
			flush(i, false)
			// Parse the embedded expression with a fresh cursor.
			p.lex.pos = i + 2
			p.lex.prev = Token{}
			p.cur = p.lex.Next()
			expr := p.parseExpression()
			expressions = append(expressions, expr)
			if !p.at("}") {
				p.fail("expected_token", "expected '}' in template literal")
				break
			}
			i = p.cur.End
			quasiStart = i
			continue
		}
		raw = append(raw, ch)
		i++
	}

	// Re-sync the lexer past the closing backtick.
	p.lex.pos = i
	p.lex.prev = Token{Kind: TokenPunct, Value: ")"}
	p.lastEnd = i
	p.cur = p.lex.Next()

	node.Set("expressions", expressions)
	node.Set("quasis", quasis)
	node.SetEnd(i)
	return node
}

func cookTemplate(raw string) string {
	if !containsByte(raw, '\\') {
		return raw
	}
	l := &Lexer{input: []byte(raw)}
	var out []byte
	for l.pos < len(l.input) {
		if l.input[l.pos] == '\\' {
			l.pos++
			out = append(out, l.scanEscape()...)
			continue
		}
		out = append(out, l.input[l.pos])
		l.pos++
	}
	return string(out)
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

// toAssignmentTarget converts an expression already parsed as the left side
// of an assignment into the pattern shape ESTree expects.
func toAssignmentTarget(n *estree.Node) *estree.Node {
	switch n.Type() {
	case "ArrayExpression":
		n.Set("type", "ArrayPattern")
		if elements, ok := n.Get("elements").([]any); ok {
			for i, el := range elements {
				if child, ok := el.(*estree.Node); ok {
					elements[i] = toAssignmentTarget(child)
				}
			}
		}
	case "ObjectExpression":
		n.Set("type", "ObjectPattern")
		if props, ok := n.Get("properties").([]*estree.Node); ok {
			for _, prop := range props {
				if prop.Type() == "SpreadElement" {
					prop.Set("type", "RestElement")
				} else if value, ok := prop.Get("value").(*estree.Node); ok {
					prop.Set("value", toAssignmentTarget(value))
				}
			}
		}
	case "AssignmentExpression":
		if op, _ := n.Get("operator").(string); op == "=" {
			n.Set("type", "AssignmentPattern")
			n.Delete("operator")
		}
	case "SpreadElement":
		n.Set("type", "RestElement")
	}
	return n
}
