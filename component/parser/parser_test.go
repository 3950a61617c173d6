package parser

import (
	"testing"

	"github.com/dhamidi/velo/component/ast"
	"github.com/dhamidi/velo/component/estree"
)

func parse(t *testing.T, source string) *ast.Root {
	t.Helper()
	root, diagnostics, err := Parse(source, DefaultOptions())
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	if len(diagnostics) != 0 {
		t.Fatalf("parse %q: unexpected diagnostics: %v", source, diagnostics)
	}
	return root
}

func parseLoose(t *testing.T, source string) (*ast.Root, []*ParseError) {
	t.Helper()
	opts := DefaultOptions()
	opts.Loose = true
	root, diagnostics, err := Parse(source, opts)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return root, diagnostics
}

func TestParseEmpty(t *testing.T) {
	root := parse(t, "")
	if len(root.Fragment.Nodes) != 0 {
		t.Errorf("got %d nodes, want 0", len(root.Fragment.Nodes))
	}
}

func TestParseTextOnly(t *testing.T) {
	root := parse(t, "hello world")
	if len(root.Fragment.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(root.Fragment.Nodes))
	}
	text, ok := root.Fragment.Nodes[0].(*ast.Text)
	if !ok {
		t.Fatalf("got %T, want *ast.Text", root.Fragment.Nodes[0])
	}
	if text.Data != "hello world" || text.Start != 0 || text.End != 11 {
		t.Errorf("unexpected text node: %+v", text)
	}
}

func TestParseTextAndExpression(t *testing.T) {
	root := parse(t, "hello{expr}")
	if len(root.Fragment.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(root.Fragment.Nodes))
	}
	tag, ok := root.Fragment.Nodes[1].(*ast.ExpressionTag)
	if !ok {
		t.Fatalf("got %T, want *ast.ExpressionTag", root.Fragment.Nodes[1])
	}
	if tag.Start != 5 || tag.End != 11 {
		t.Errorf("tag span %d-%d, want 5-11", tag.Start, tag.End)
	}
	if tag.Expression.Type() != "Identifier" || tag.Expression.Get("name") != "expr" {
		t.Errorf("unexpected expression: %v", tag.Expression)
	}
	// The expression's end offset is the position of the closing brace.
	if tag.Expression.End() != 10 {
		t.Errorf("expression end %d, want 10", tag.Expression.End())
	}
}

func TestParseElements(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, root *ast.Root)
	}{
		{"<br>", func(t *testing.T, root *ast.Root) {
			el := root.Fragment.Nodes[0].(*ast.RegularElement)
			if el.Name != "br" || len(el.Fragment.Nodes) != 0 {
				t.Errorf("unexpected element: %+v", el)
			}
		}},
		{"<div/>", func(t *testing.T, root *ast.Root) {
			el := root.Fragment.Nodes[0].(*ast.RegularElement)
			if el.Name != "div" || el.End != 6 {
				t.Errorf("unexpected element: %+v", el)
			}
		}},
		{"<p>hello</p>", func(t *testing.T, root *ast.Root) {
			el := root.Fragment.Nodes[0].(*ast.RegularElement)
			if el.Start != 0 || el.End != 12 {
				t.Errorf("span %d-%d, want 0-12", el.Start, el.End)
			}
			text := el.Fragment.Nodes[0].(*ast.Text)
			if text.Data != "hello" {
				t.Errorf("got %q", text.Data)
			}
		}},
		{"<div><p>hi</p></div>", func(t *testing.T, root *ast.Root) {
			outer := root.Fragment.Nodes[0].(*ast.RegularElement)
			inner := outer.Fragment.Nodes[0].(*ast.RegularElement)
			if inner.Name != "p" {
				t.Errorf("got %q", inner.Name)
			}
		}},
		{"<Button>click</Button>", func(t *testing.T, root *ast.Root) {
			c := root.Fragment.Nodes[0].(*ast.Component)
			if c.Name != "Button" {
				t.Errorf("got %q", c.Name)
			}
		}},
		{"<Foo.Bar/>", func(t *testing.T, root *ast.Root) {
			c := root.Fragment.Nodes[0].(*ast.Component)
			if c.Name != "Foo.Bar" {
				t.Errorf("got %q", c.Name)
			}
		}},
		{"<slot/>", func(t *testing.T, root *ast.Root) {
			if _, ok := root.Fragment.Nodes[0].(*ast.SlotElement); !ok {
				t.Errorf("got %T", root.Fragment.Nodes[0])
			}
		}},
		{"before<br>after", func(t *testing.T, root *ast.Root) {
			if len(root.Fragment.Nodes) != 3 {
				t.Fatalf("got %d nodes", len(root.Fragment.Nodes))
			}
		}},
		{"<!-- note -->", func(t *testing.T, root *ast.Root) {
			c := root.Fragment.Nodes[0].(*ast.Comment)
			if c.Data != " note " || c.Start != 0 || c.End != 13 {
				t.Errorf("unexpected comment: %+v", c)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tt.check(t, parse(t, tt.input))
		})
	}
}

func TestParseAutoClosedListItems(t *testing.T) {
	root := parse(t, "<ul><li>one<li>two</ul>")
	ul := root.Fragment.Nodes[0].(*ast.RegularElement)
	if len(ul.Fragment.Nodes) != 2 {
		t.Fatalf("got %d children, want 2", len(ul.Fragment.Nodes))
	}
	first := ul.Fragment.Nodes[0].(*ast.RegularElement)
	second := ul.Fragment.Nodes[1].(*ast.RegularElement)
	if first.Name != "li" || second.Name != "li" {
		t.Fatalf("unexpected children: %q, %q", first.Name, second.Name)
	}
	// The first li ends where the second one starts.
	if first.End != second.Start {
		t.Errorf("first ends at %d, second starts at %d", first.End, second.Start)
	}
}

// Shorthand attribute: <img {src}> produces name "src" with an expression
// tag wrapping the identifier of the same name.
func TestParseShorthandAttribute(t *testing.T) {
	root := parse(t, "<img {src}>")
	el := root.Fragment.Nodes[0].(*ast.RegularElement)
	if len(el.Attributes) != 1 {
		t.Fatalf("got %d attributes, want 1", len(el.Attributes))
	}
	attr := el.Attributes[0].(*ast.Attribute)
	if attr.Name != "src" {
		t.Errorf("got name %q, want src", attr.Name)
	}
	if attr.Value.True || len(attr.Value.Parts) != 1 {
		t.Fatalf("unexpected value: %+v", attr.Value)
	}
	tag := attr.Value.Parts[0].(*ast.ExpressionTag)
	if tag.Expression.Type() != "Identifier" || tag.Expression.Get("name") != "src" {
		t.Errorf("unexpected expression: %v", tag.Expression)
	}
}

// Each with key and index.
func TestParseEachBlock(t *testing.T) {
	root := parse(t, "{#each items as item, i (item)}X{/each}")
	each := root.Fragment.Nodes[0].(*ast.EachBlock)

	if each.Expression.Get("name") != "items" {
		t.Errorf("expression: %v", each.Expression)
	}
	if each.Context == nil || each.Context.Get("name") != "item" {
		t.Errorf("context: %v", each.Context)
	}
	if each.Index == nil || *each.Index != "i" {
		t.Errorf("index: %v", each.Index)
	}
	if each.Key == nil || each.Key.Get("name") != "item" {
		t.Errorf("key: %v", each.Key)
	}
	if each.Fallback != nil {
		t.Errorf("fallback should be nil")
	}
	text := each.Body.Nodes[0].(*ast.Text)
	if text.Data != "X" {
		t.Errorf("body: %q", text.Data)
	}
}

func TestParseEachBlockFallback(t *testing.T) {
	root := parse(t, "{#each items as item}X{:else}none{/each}")
	each := root.Fragment.Nodes[0].(*ast.EachBlock)
	if each.Fallback == nil || len(each.Fallback.Nodes) != 1 {
		t.Fatalf("expected a fallback fragment")
	}
	if each.Fallback.Nodes[0].(*ast.Text).Data != "none" {
		t.Errorf("unexpected fallback")
	}
}

// If / else-if / else chain.
func TestParseIfElseChain(t *testing.T) {
	root := parse(t, "{#if a}A{:else if b}B{:else}C{/if}")
	outer := root.Fragment.Nodes[0].(*ast.IfBlock)

	if outer.Elseif {
		t.Error("outer block must not be marked elseif")
	}
	if outer.Test.Get("name") != "a" {
		t.Errorf("outer test: %v", outer.Test)
	}
	if outer.Consequent.Nodes[0].(*ast.Text).Data != "A" {
		t.Errorf("outer consequent")
	}

	nested, ok := outer.Alternate.(*ast.IfBlock)
	if !ok {
		t.Fatalf("alternate: got %T, want *ast.IfBlock", outer.Alternate)
	}
	if !nested.Elseif {
		t.Error("nested block must be marked elseif")
	}
	if nested.Test.Get("name") != "b" {
		t.Errorf("nested test: %v", nested.Test)
	}
	if nested.Consequent.Nodes[0].(*ast.Text).Data != "B" {
		t.Errorf("nested consequent")
	}

	final, ok := nested.Alternate.(*ast.Fragment)
	if !ok {
		t.Fatalf("final alternate: got %T, want *ast.Fragment", nested.Alternate)
	}
	if final.Nodes[0].(*ast.Text).Data != "C" {
		t.Errorf("final alternate fragment")
	}
}

// Await with then and catch arms.
func TestParseAwaitBlock(t *testing.T) {
	root := parse(t, "{#await p}L{:then d}D{:catch e}E{/await}")
	await := root.Fragment.Nodes[0].(*ast.AwaitBlock)

	if await.Expression.Get("name") != "p" {
		t.Errorf("expression: %v", await.Expression)
	}
	if await.Value == nil || await.Value.Get("name") != "d" {
		t.Errorf("value: %v", await.Value)
	}
	if await.Error == nil || await.Error.Get("name") != "e" {
		t.Errorf("error: %v", await.Error)
	}
	if await.Pending.Nodes[0].(*ast.Text).Data != "L" {
		t.Errorf("pending")
	}
	if await.Then.Nodes[0].(*ast.Text).Data != "D" {
		t.Errorf("then")
	}
	if await.Catch.Nodes[0].(*ast.Text).Data != "E" {
		t.Errorf("catch")
	}
}

func TestParseAwaitInlineThen(t *testing.T) {
	root := parse(t, "{#await p then d}D{/await}")
	await := root.Fragment.Nodes[0].(*ast.AwaitBlock)
	if await.Pending != nil {
		t.Error("pending must be nil for inline then")
	}
	if await.Value == nil || await.Value.Get("name") != "d" {
		t.Errorf("value: %v", await.Value)
	}
	if await.Then == nil {
		t.Fatal("then fragment missing")
	}
}

func TestParseKeyBlock(t *testing.T) {
	root := parse(t, "{#key id}<div/>{/key}")
	key := root.Fragment.Nodes[0].(*ast.KeyBlock)
	if key.Expression.Get("name") != "id" {
		t.Errorf("expression: %v", key.Expression)
	}
	if len(key.Fragment.Nodes) != 1 {
		t.Errorf("fragment: %d nodes", len(key.Fragment.Nodes))
	}
}

func TestParseSnippetBlock(t *testing.T) {
	root := parse(t, "{#snippet row(item, index)}X{/snippet}")
	snippet := root.Fragment.Nodes[0].(*ast.SnippetBlock)
	if snippet.Expression.Get("name") != "row" {
		t.Errorf("expression: %v", snippet.Expression)
	}
	if len(snippet.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2", len(snippet.Parameters))
	}
	if snippet.Parameters[0].Get("name") != "item" || snippet.Parameters[1].Get("name") != "index" {
		t.Errorf("unexpected parameters")
	}
}

// Svelte element with this expression.
func TestParseSvelteElement(t *testing.T) {
	root := parse(t, "<svelte:element this={tag}/>")
	el := root.Fragment.Nodes[0].(*ast.SvelteElement)
	if el.Tag == nil || el.Tag.Get("name") != "tag" {
		t.Errorf("tag: %v", el.Tag)
	}
	if len(el.Attributes) != 0 {
		t.Errorf("attributes must be empty after extracting this")
	}
	if len(el.Fragment.Nodes) != 0 {
		t.Errorf("fragment must be empty")
	}
}

func TestParseSvelteElementMissingThis(t *testing.T) {
	_, _, err := Parse("<svelte:element/>", DefaultOptions())
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected a ParseError, got %v", err)
	}
	if perr.Code != CodeMissingThis {
		t.Errorf("got code %q", perr.Code)
	}
}

// Options are lifted off the fragment.
func TestParseOptionsLifted(t *testing.T) {
	root := parse(t, `<svelte:options customElement="x-y"/><p>hi</p>`)
	if root.Options == nil {
		t.Fatal("options missing")
	}
	if root.Options.CustomElement == nil || root.Options.CustomElement.Tag != "x-y" {
		t.Errorf("customElement: %+v", root.Options.CustomElement)
	}
	for _, n := range root.Fragment.Nodes {
		if _, ok := n.(*ast.SvelteOptionsRaw); ok {
			t.Error("svelte:options must not remain in the fragment")
		}
	}
}

func TestParseScriptRegions(t *testing.T) {
	source := `<script context="module">export const x = 1;</script>
<script>let count = 0;</script>
<p>{count}</p>
<style>p { color: red; }</style>`

	root := parse(t, source)

	if root.Module == nil || root.Module.Context != "module" {
		t.Fatal("module script missing")
	}
	if root.Instance == nil || root.Instance.Context != "default" {
		t.Fatal("instance script missing")
	}
	if root.CSS == nil {
		t.Fatal("css missing")
	}
	if root.Metadata.TS {
		t.Error("ts must be false")
	}

	program := root.Instance.Content
	if program.Type() != "Program" {
		t.Errorf("content: %s", program.Type())
	}
	body := program.Get("body").([]*estree.Node)
	if len(body) != 1 || body[0].Type() != "VariableDeclaration" {
		t.Errorf("unexpected instance body")
	}
}

func TestParseModuleAttributeShorthand(t *testing.T) {
	root := parse(t, "<script module>export const x = 1;</script>")
	if root.Module == nil {
		t.Fatal("module script missing")
	}
	if root.Instance != nil {
		t.Error("instance must be nil")
	}
}

func TestParseDuplicateScript(t *testing.T) {
	_, _, err := Parse("<script>let a;</script><script>let b;</script>", DefaultOptions())
	perr, ok := err.(*ParseError)
	if !ok || perr.Code != CodeDuplicateScript {
		t.Fatalf("got %v, want duplicate_script", err)
	}
}

func TestParseDuplicateStyle(t *testing.T) {
	_, _, err := Parse("<style></style><style></style>", DefaultOptions())
	perr, ok := err.(*ParseError)
	if !ok || perr.Code != CodeDuplicateStyle {
		t.Fatalf("got %v, want duplicate_style", err)
	}
}

func TestParseTypescriptDetection(t *testing.T) {
	root := parse(t, `<script lang="ts">let n = 1;</script>`)
	if !root.Metadata.TS {
		t.Error("ts must be true")
	}
}

func TestParseUnclosedElementStrict(t *testing.T) {
	_, _, err := Parse("<div><p>hi", DefaultOptions())
	perr, ok := err.(*ParseError)
	if !ok || perr.Code != CodeUnclosedElement {
		t.Fatalf("got %v, want unclosed_element", err)
	}
}

func TestParseUnclosedElementLoose(t *testing.T) {
	root, diagnostics := parseLoose(t, "<div><p>hi")
	if len(diagnostics) == 0 {
		t.Fatal("expected diagnostics")
	}
	div := root.Fragment.Nodes[0].(*ast.RegularElement)
	if div.End != len("<div><p>hi") {
		t.Errorf("recovered element must end at EOF, got %d", div.End)
	}
}

func TestParseLooseInvalidExpression(t *testing.T) {
	root, diagnostics := parseLoose(t, "{+++}")
	if len(diagnostics) == 0 {
		t.Fatal("expected diagnostics")
	}
	tag, ok := root.Fragment.Nodes[0].(*ast.ExpressionTag)
	if !ok {
		t.Fatalf("got %T", root.Fragment.Nodes[0])
	}
	if tag.Expression.Type() != "Identifier" || tag.Expression.Get("name") != "" {
		t.Errorf("expected empty identifier placeholder, got %v", tag.Expression)
	}
}

func TestParseBlockArmOutsideBlock(t *testing.T) {
	_, _, err := Parse("{:else}", DefaultOptions())
	perr, ok := err.(*ParseError)
	if !ok || perr.Code != CodeBlockArmOutsideBlock {
		t.Fatalf("got %v, want block_arm_outside_block", err)
	}
}

func TestParseCRLFNormalization(t *testing.T) {
	root := parse(t, "a\r\nb")
	text := root.Fragment.Nodes[0].(*ast.Text)
	if text.Raw != "a\nb" || text.End != 3 {
		t.Errorf("unexpected text: %+v", text)
	}
	if root.End != 3 {
		t.Errorf("root end %d, want 3", root.End)
	}
}

func TestParseTagDispatch(t *testing.T) {
	root := parse(t, "{@html content}{@debug a, b}{@render row(1)}{@const x = 1}")
	if len(root.Fragment.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(root.Fragment.Nodes))
	}
	if _, ok := root.Fragment.Nodes[0].(*ast.HtmlTag); !ok {
		t.Errorf("node 0: %T", root.Fragment.Nodes[0])
	}
	debug := root.Fragment.Nodes[1].(*ast.DebugTag)
	if len(debug.Identifiers) != 2 {
		t.Errorf("debug identifiers: %d", len(debug.Identifiers))
	}
	render := root.Fragment.Nodes[2].(*ast.RenderTag)
	if render.Expression.Type() != "CallExpression" {
		t.Errorf("render expression: %s", render.Expression.Type())
	}
	constTag := root.Fragment.Nodes[3].(*ast.ConstTag)
	if constTag.Declaration == nil || constTag.Declaration.Get("kind") != "const" {
		t.Errorf("const declaration: %v", constTag.Declaration)
	}
}

func TestParseRenderTagRejectsNonCall(t *testing.T) {
	_, _, err := Parse("{@render foo}", DefaultOptions())
	perr, ok := err.(*ParseError)
	if !ok || perr.Code != CodeInvalidRenderExpression {
		t.Fatalf("got %v, want invalid_render_expression", err)
	}
}

func TestParseTextareaSequence(t *testing.T) {
	root := parse(t, "<textarea>a{b}c</textarea>")
	el := root.Fragment.Nodes[0].(*ast.RegularElement)
	if len(el.Fragment.Nodes) != 3 {
		t.Fatalf("got %d children, want 3", len(el.Fragment.Nodes))
	}
	if _, ok := el.Fragment.Nodes[1].(*ast.ExpressionTag); !ok {
		t.Errorf("middle child: %T", el.Fragment.Nodes[1])
	}
}

func TestParseTitleInHead(t *testing.T) {
	root := parse(t, "<svelte:head><title>hi</title></svelte:head>")
	head := root.Fragment.Nodes[0].(*ast.SvelteHead)
	if _, ok := head.Fragment.Nodes[0].(*ast.TitleElement); !ok {
		t.Errorf("got %T, want *ast.TitleElement", head.Fragment.Nodes[0])
	}
}

func TestParseEntityDecoding(t *testing.T) {
	root := parse(t, "a &amp; b")
	text := root.Fragment.Nodes[0].(*ast.Text)
	if text.Data != "a & b" {
		t.Errorf("data %q", text.Data)
	}
	if text.Raw != "a &amp; b" {
		t.Errorf("raw %q", text.Raw)
	}
}

func TestParseLegacyModeRejected(t *testing.T) {
	_, _, err := Parse("", Options{Modern: false})
	perr, ok := err.(*ParseError)
	if !ok || perr.Code != CodeUnsupportedLegacyMode {
		t.Fatalf("got %v, want unsupported_legacy_mode", err)
	}
}
