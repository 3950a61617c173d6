package script

import (
	"github.com/dhamidi/velo/component/estree"
)

// parseStatement parses a single statement at module or block scope.
func (p *Parser) parseStatement() *estree.Node {
	if p.err != nil {
		return nil
	}
	start := p.cur.Start

	switch {
	case p.at(";"):
		p.next()
		return estree.NewNode("EmptyStatement", start, p.lastEnd)

	case p.at("{"):
		return p.parseBlock()

	case p.at("var") || p.at("let") || p.at("const"):
		decl := p.parseVariableDeclaration()
		p.eat(";")
		decl.SetEnd(p.lastEnd)
		return decl

	case p.at("function"):
		p.next()
		return p.parseFunctionRestKeyword(start, false, "FunctionDeclaration")

	case p.at("class"):
		return p.parseClassDeclaration()

	case p.at("import"):
		return p.parseImportDeclaration()

	case p.at("export"):
		return p.parseExportDeclaration()

	case p.at("if"):
		return p.parseIfStatement()

	case p.at("for"):
		return p.parseForStatement()

	case p.at("while"):
		p.next()
		p.expect("(")
		test := p.parseExpression()
		p.expect(")")
		node := estree.NewNode("WhileStatement", start, 0)
		node.Set("test", test)
		node.Set("body", p.parseStatement())
		node.SetEnd(p.lastEnd)
		return node

	case p.at("return"):
		p.next()
		node := estree.NewNode("ReturnStatement", start, 0)
		if p.at(";") || p.at("}") || p.cur.Kind == TokenEOF {
			node.Set("argument", nil)
		} else {
			node.Set("argument", p.parseExpression())
		}
		p.eat(";")
		node.SetEnd(p.lastEnd)
		return node

	case p.at("throw"):
		p.next()
		node := estree.NewNode("ThrowStatement", start, 0)
		node.Set("argument", p.parseExpression())
		p.eat(";")
		node.SetEnd(p.lastEnd)
		return node

	case p.at("try"):
		return p.parseTryStatement()

	case p.at("break") || p.at("continue"):
		typ := "BreakStatement"
		if p.cur.Value == "continue" {
			typ = "ContinueStatement"
		}
		p.next()
		node := estree.NewNode(typ, start, 0)
		if p.cur.Kind == TokenIdent {
			node.Set("label", estree.Identifier(p.cur.Value, p.cur.Start, p.cur.End))
			p.next()
		} else {
			node.Set("label", nil)
		}
		p.eat(";")
		node.SetEnd(p.lastEnd)
		return node

	default:
		if p.cur.Kind == TokenIdent && p.cur.Value == "async" {
			s := p.save()
			p.next()
			if p.at("function") {
				p.next()
				return p.parseFunctionRestKeyword(start, true, "FunctionDeclaration")
			}
			p.restore(s)
		}
		expr := p.parseExpression()
		p.eat(";")
		node := estree.NewNode("ExpressionStatement", start, p.lastEnd)
		node.Set("expression", expr)
		return node
	}
}

// parseVariableDeclaration parses `var|let|const` declarators. The caller
// handles the optional trailing semicolon.
func (p *Parser) parseVariableDeclaration() *estree.Node {
	start := p.cur.Start
	kind := p.cur.Value
	if !p.at("var") && !p.at("let") && !p.at("const") {
		p.fail("expected_token", "expected 'var', 'let' or 'const'")
		return estree.NewNode("VariableDeclaration", start, start)
	}
	p.next()

	var declarations []*estree.Node
	for {
		declStart := p.cur.Start
		id := p.parseBindingAtom()
		decl := estree.NewNode("VariableDeclarator", declStart, 0)
		decl.Set("id", id)
		if p.eat("=") {
			decl.Set("init", p.parseAssign())
		} else {
			decl.Set("init", nil)
		}
		decl.SetEnd(p.lastEnd)
		declarations = append(declarations, decl)
		if !p.eat(",") {
			break
		}
	}

	node := estree.NewNode("VariableDeclaration", start, p.lastEnd)
	node.Set("declarations", declarations)
	node.Set("kind", kind)
	return node
}

func (p *Parser) parseIfStatement() *estree.Node {
	start := p.cur.Start
	p.expect("if")
	p.expect("(")
	test := p.parseExpression()
	p.expect(")")
	consequent := p.parseStatement()
	node := estree.NewNode("IfStatement", start, 0)
	node.Set("test", test)
	node.Set("consequent", consequent)
	if p.eat("else") {
		node.Set("alternate", p.parseStatement())
	} else {
		node.Set("alternate", nil)
	}
	node.SetEnd(p.lastEnd)
	return node
}

func (p *Parser) parseForStatement() *estree.Node {
	start := p.cur.Start
	p.expect("for")
	isAwait := false
	if p.at("await") {
		isAwait = true
		p.next()
	}
	p.expect("(")

	var init *estree.Node
	if p.at("var") || p.at("let") || p.at("const") {
		init = p.parseVariableDeclaration()
	} else if !p.at(";") {
		init = p.parseExpression()
	}

	if p.at("of") || p.at("in") {
		typ := "ForOfStatement"
		if p.cur.Value == "in" {
			typ = "ForInStatement"
		}
		p.next()
		right := p.parseAssign()
		p.expect(")")
		node := estree.NewNode(typ, start, 0)
		if typ == "ForOfStatement" {
			node.Set("await", isAwait)
		}
		node.Set("left", init)
		node.Set("right", right)
		node.Set("body", p.parseStatement())
		node.SetEnd(p.lastEnd)
		return node
	}

	p.expect(";")
	var test, update *estree.Node
	if !p.at(";") {
		test = p.parseExpression()
	}
	p.expect(";")
	if !p.at(")") {
		update = p.parseExpression()
	}
	p.expect(")")

	node := estree.NewNode("ForStatement", start, 0)
	node.Set("init", init)
	node.Set("test", test)
	node.Set("update", update)
	node.Set("body", p.parseStatement())
	node.SetEnd(p.lastEnd)
	return node
}

func (p *Parser) parseTryStatement() *estree.Node {
	start := p.cur.Start
	p.expect("try")
	node := estree.NewNode("TryStatement", start, 0)
	node.Set("block", p.parseBlock())

	if p.at("catch") {
		handlerStart := p.cur.Start
		p.next()
		handler := estree.NewNode("CatchClause", handlerStart, 0)
		if p.eat("(") {
			handler.Set("param", p.parseBindingAtom())
			p.expect(")")
		} else {
			handler.Set("param", nil)
		}
		handler.Set("body", p.parseBlock())
		handler.SetEnd(p.lastEnd)
		node.Set("handler", handler)
	} else {
		node.Set("handler", nil)
	}

	if p.eat("finally") {
		node.Set("finalizer", p.parseBlock())
	} else {
		node.Set("finalizer", nil)
	}
	node.SetEnd(p.lastEnd)
	return node
}

// parseClassDeclaration parses a class header and skips the brace-balanced
// body; class members are opaque to the component pipeline.
func (p *Parser) parseClassDeclaration() *estree.Node {
	start := p.cur.Start
	p.expect("class")

	var id *estree.Node
	if p.cur.Kind == TokenIdent {
		id = estree.Identifier(p.cur.Value, p.cur.Start, p.cur.End)
		p.next()
	}

	var superClass *estree.Node
	if p.eat("extends") {
		superClass = p.parseSubscripts()
	}

	bodyStart := p.cur.Start
	p.expect("{")
	depth := 1
	input := p.lex.input
	i := p.cur.Start
	for i < len(input) && depth > 0 {
		switch input[i] {
		case '{':
			depth++
		case '}':
			depth--
		case '\'', '"', '`':
			quote := input[i]
			i++
			for i < len(input) && input[i] != quote {
				if input[i] == '\\' {
					i++
				}
				i++
			}
		}
		i++
	}
	p.lex.pos = i
	p.lex.prev = Token{Kind: TokenPunct, Value: "}"}
	p.lastEnd = i
	p.cur = p.lex.Next()

	body := estree.NewNode("ClassBody", bodyStart, i)
	body.Set("body", []*estree.Node{})

	node := estree.NewNode("ClassDeclaration", start, i)
	node.Set("id", id)
	node.Set("superClass", superClass)
	node.Set("body", body)
	return node
}

func (p *Parser) parseImportDeclaration() *estree.Node {
	start := p.cur.Start
	p.expect("import")

	specifiers := []*estree.Node{}

	// Bare import: `import './x.css'`
	if p.cur.Kind == TokenString {
		source := p.parseExprAtom()
		p.eat(";")
		node := estree.NewNode("ImportDeclaration", start, p.lastEnd)
		node.Set("specifiers", specifiers)
		node.Set("source", source)
		return node
	}

	if p.cur.Kind == TokenIdent {
		spec := estree.NewNode("ImportDefaultSpecifier", p.cur.Start, p.cur.End)
		spec.Set("local", estree.Identifier(p.cur.Value, p.cur.Start, p.cur.End))
		specifiers = append(specifiers, spec)
		p.next()
		p.eat(",")
	}

	if p.at("*") {
		nsStart := p.cur.Start
		p.next()
		p.expect("as")
		local := p.parseIdentName()
		spec := estree.NewNode("ImportNamespaceSpecifier", nsStart, p.lastEnd)
		spec.Set("local", local)
		specifiers = append(specifiers, spec)
	} else if p.at("{") {
		p.next()
		for !p.at("}") && p.cur.Kind != TokenEOF && p.err == nil {
			specStart := p.cur.Start
			imported := p.parseIdentName()
			local := imported
			if p.eat("as") {
				local = p.parseIdentName()
			}
			spec := estree.NewNode("ImportSpecifier", specStart, p.lastEnd)
			spec.Set("imported", imported)
			spec.Set("local", local)
			specifiers = append(specifiers, spec)
			if !p.eat(",") {
				break
			}
		}
		p.expect("}")
	}

	p.expect("from")
	var source *estree.Node
	if p.cur.Kind == TokenString {
		source = p.parseExprAtom()
	} else {
		p.fail("expected_token", "expected module specifier string")
	}
	p.eat(";")

	node := estree.NewNode("ImportDeclaration", start, p.lastEnd)
	node.Set("specifiers", specifiers)
	node.Set("source", source)
	return node
}

func (p *Parser) parseExportDeclaration() *estree.Node {
	start := p.cur.Start
	p.expect("export")

	if p.eat("default") {
		node := estree.NewNode("ExportDefaultDeclaration", start, 0)
		node.Set("declaration", p.parseAssign())
		p.eat(";")
		node.SetEnd(p.lastEnd)
		return node
	}

	if p.at("{") {
		p.next()
		specifiers := []*estree.Node{}
		for !p.at("}") && p.cur.Kind != TokenEOF && p.err == nil {
			specStart := p.cur.Start
			local := p.parseIdentName()
			exported := local
			if p.eat("as") {
				exported = p.parseIdentName()
			}
			spec := estree.NewNode("ExportSpecifier", specStart, p.lastEnd)
			spec.Set("local", local)
			spec.Set("exported", exported)
			specifiers = append(specifiers, spec)
			if !p.eat(",") {
				break
			}
		}
		p.expect("}")
		var source *estree.Node
		if p.eat("from") {
			if p.cur.Kind == TokenString {
				source = p.parseExprAtom()
			} else {
				p.fail("expected_token", "expected module specifier string")
			}
		}
		p.eat(";")
		node := estree.NewNode("ExportNamedDeclaration", start, p.lastEnd)
		node.Set("declaration", nil)
		node.Set("specifiers", specifiers)
		node.Set("source", source)
		return node
	}

	declaration := p.parseStatement()
	node := estree.NewNode("ExportNamedDeclaration", start, p.lastEnd)
	node.Set("declaration", declaration)
	node.Set("specifiers", []*estree.Node{})
	node.Set("source", nil)
	return node
}
