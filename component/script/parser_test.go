package script

import (
	"testing"

	"github.com/dhamidi/velo/component/estree"
)

func parseExpr(t *testing.T, input string) *estree.Node {
	t.Helper()
	node, _, err := ParseExpressionAt([]byte(input), 0, false)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return node
}

func TestParseExpressionKinds(t *testing.T) {
	tests := []struct {
		input string
		typ   string
	}{
		{"42", "Literal"},
		{"'str'", "Literal"},
		{"true", "Literal"},
		{"null", "Literal"},
		{"x", "Identifier"},
		{"this", "ThisExpression"},
		{"x + y", "BinaryExpression"},
		{"x && y", "LogicalExpression"},
		{"x ?? y", "LogicalExpression"},
		{"-x", "UnaryExpression"},
		{"!x", "UnaryExpression"},
		{"typeof x", "UnaryExpression"},
		{"x++", "UpdateExpression"},
		{"++x", "UpdateExpression"},
		{"a ? b : c", "ConditionalExpression"},
		{"x = 5", "AssignmentExpression"},
		{"x += 5", "AssignmentExpression"},
		{"obj.field", "MemberExpression"},
		{"obj[key]", "MemberExpression"},
		{"obj?.field", "ChainExpression"},
		{"fn()", "CallExpression"},
		{"fn(1, 2)", "CallExpression"},
		{"new Foo()", "NewExpression"},
		{"[1, 2]", "ArrayExpression"},
		{"({a: 1})", "ObjectExpression"},
		{"x => x + 1", "ArrowFunctionExpression"},
		{"(a, b) => a + b", "ArrowFunctionExpression"},
		{"async x => x", "ArrowFunctionExpression"},
		{"function foo() {}", "FunctionExpression"},
		{"await p", "AwaitExpression"},
		{"a, b", "SequenceExpression"},
		{"`hi ${name}`", "TemplateLiteral"},
		{"tag`hi`", "TaggedTemplateExpression"},
		{"/ab+c/i", "Literal"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parseExpr(t, tt.input)
			if node.Type() != tt.typ {
				t.Errorf("got %s, want %s", node.Type(), tt.typ)
			}
		})
	}
}

func TestParseExpressionSpans(t *testing.T) {
	node := parseExpr(t, "items.map(x => x.name)")
	if node.Start() != 0 || node.End() != 22 {
		t.Errorf("got span %d-%d, want 0-22", node.Start(), node.End())
	}
	callee, ok := node.Get("callee").(*estree.Node)
	if !ok || callee.Type() != "MemberExpression" {
		t.Fatalf("unexpected callee: %v", node.Get("callee"))
	}
	object := callee.Get("object").(*estree.Node)
	if object.Type() != "Identifier" || object.Get("name") != "items" {
		t.Errorf("unexpected object: %v", object)
	}
	if object.Start() != 0 || object.End() != 5 {
		t.Errorf("object span %d-%d, want 0-5", object.Start(), object.End())
	}
}

func TestParseExpressionAtOffset(t *testing.T) {
	source := []byte("{#if count}")
	node, end, err := ParseExpressionAt(source, 5, false)
	if err != nil {
		t.Fatal(err)
	}
	if node.Type() != "Identifier" || node.Get("name") != "count" {
		t.Fatalf("unexpected node: %v %v", node.Type(), node.Get("name"))
	}
	if node.Start() != 5 || node.End() != 10 {
		t.Errorf("got span %d-%d, want 5-10", node.Start(), node.End())
	}
	if end != 10 {
		t.Errorf("got end %d, want 10", end)
	}
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		input string
		typ   string
	}{
		{"item", "Identifier"},
		{"[a, b]", "ArrayPattern"},
		{"{a, b}", "ObjectPattern"},
		{"{a: renamed}", "ObjectPattern"},
		{"[first, ...rest]", "ArrayPattern"},
		{"x = 1", "AssignmentPattern"},
		{"...rest", "RestElement"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, _, err := ParsePatternAt([]byte(tt.input), 0, false)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.input, err)
			}
			if node.Type() != tt.typ {
				t.Errorf("got %s, want %s", node.Type(), tt.typ)
			}
		})
	}
}

func TestParseVariableDeclaration(t *testing.T) {
	node, _, err := ParseVariableDeclarationAt([]byte("const x = 1"), 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if node.Type() != "VariableDeclaration" {
		t.Fatalf("got %s", node.Type())
	}
	if kind := node.Get("kind"); kind != "const" {
		t.Errorf("got kind %v, want const", kind)
	}
	decls := node.Get("declarations").([]*estree.Node)
	if len(decls) != 1 {
		t.Fatalf("got %d declarators, want 1", len(decls))
	}
	id := decls[0].Get("id").(*estree.Node)
	if id.Get("name") != "x" {
		t.Errorf("got id %v, want x", id.Get("name"))
	}
}

func TestParseProgram(t *testing.T) {
	source := "let count = 0;\n\nfunction increment() {\n\tcount += 1;\n}\n"
	node, err := ParseProgramAt([]byte(source), 0, len(source), false)
	if err != nil {
		t.Fatal(err)
	}
	if node.Type() != "Program" {
		t.Fatalf("got %s", node.Type())
	}
	if node.Get("sourceType") != "module" {
		t.Errorf("got sourceType %v", node.Get("sourceType"))
	}
	body := node.Get("body").([]*estree.Node)
	if len(body) != 2 {
		t.Fatalf("got %d statements, want 2", len(body))
	}
	if body[0].Type() != "VariableDeclaration" || body[1].Type() != "FunctionDeclaration" {
		t.Errorf("unexpected statement types: %s, %s", body[0].Type(), body[1].Type())
	}
}

func TestParseProgramImports(t *testing.T) {
	source := `import Widget from './Widget.svelte';
import { onMount } from 'svelte';
export let title;`
	node, err := ParseProgramAt([]byte(source), 0, len(source), false)
	if err != nil {
		t.Fatal(err)
	}
	body := node.Get("body").([]*estree.Node)
	if len(body) != 3 {
		t.Fatalf("got %d statements, want 3", len(body))
	}
	if body[0].Type() != "ImportDeclaration" || body[1].Type() != "ImportDeclaration" {
		t.Errorf("unexpected imports: %s, %s", body[0].Type(), body[1].Type())
	}
	if body[2].Type() != "ExportNamedDeclaration" {
		t.Errorf("got %s, want ExportNamedDeclaration", body[2].Type())
	}
}

func TestParseProgramLeadingComments(t *testing.T) {
	source := "// setup\nlet x = 1;"
	node, err := ParseProgramAt([]byte(source), 0, len(source), false)
	if err != nil {
		t.Fatal(err)
	}
	body := node.Get("body").([]*estree.Node)
	if len(body) != 1 {
		t.Fatalf("got %d statements, want 1", len(body))
	}
	leading, ok := body[0].Get("leadingComments").([]*estree.Node)
	if !ok || len(leading) != 1 {
		t.Fatalf("expected one leading comment, got %v", body[0].Get("leadingComments"))
	}
	if leading[0].Get("value") != " setup" {
		t.Errorf("got %v", leading[0].Get("value"))
	}
}

func TestParseExpressionError(t *testing.T) {
	_, _, err := ParseExpressionAt([]byte("+"), 0, false)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Code != "expected_token" {
		t.Errorf("got code %q", err.Code)
	}
}
