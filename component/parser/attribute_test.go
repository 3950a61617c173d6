package parser

import (
	"testing"

	"github.com/dhamidi/velo/component/ast"
)

func firstElement(t *testing.T, source string) *ast.RegularElement {
	t.Helper()
	root := parse(t, source)
	el, ok := root.Fragment.Nodes[0].(*ast.RegularElement)
	if !ok {
		t.Fatalf("got %T, want *ast.RegularElement", root.Fragment.Nodes[0])
	}
	return el
}

func TestParseBooleanAttribute(t *testing.T) {
	el := firstElement(t, "<input disabled>")
	attr := el.Attributes[0].(*ast.Attribute)
	if attr.Name != "disabled" || !attr.Value.True {
		t.Errorf("unexpected attribute: %+v", attr)
	}
}

func TestParseQuotedAttribute(t *testing.T) {
	el := firstElement(t, `<div class="foo"></div>`)
	attr := el.Attributes[0].(*ast.Attribute)
	if attr.Name != "class" {
		t.Fatalf("got name %q", attr.Name)
	}
	text := attr.Value.Parts[0].(*ast.Text)
	if text.Data != "foo" {
		t.Errorf("got %q", text.Data)
	}
	// Part spans point inside the quotes.
	if text.Start != 12 || text.End != 15 {
		t.Errorf("span %d-%d, want 12-15", text.Start, text.End)
	}
}

func TestParseSingleQuotedAttribute(t *testing.T) {
	el := firstElement(t, "<div id='app'></div>")
	attr := el.Attributes[0].(*ast.Attribute)
	if attr.Value.Parts[0].(*ast.Text).Data != "app" {
		t.Errorf("unexpected value")
	}
}

func TestParseUnquotedAttribute(t *testing.T) {
	el := firstElement(t, "<input type=text>")
	attr := el.Attributes[0].(*ast.Attribute)
	if attr.Value.Parts[0].(*ast.Text).Data != "text" {
		t.Errorf("unexpected value")
	}
}

func TestParseExpressionAttribute(t *testing.T) {
	el := firstElement(t, "<div title={name}></div>")
	attr := el.Attributes[0].(*ast.Attribute)
	tag := attr.Value.Parts[0].(*ast.ExpressionTag)
	if tag.Expression.Get("name") != "name" {
		t.Errorf("unexpected expression: %v", tag.Expression)
	}
}

func TestParseMixedQuotedValue(t *testing.T) {
	el := firstElement(t, `<a href="/user/{id}/profile"></a>`)
	attr := el.Attributes[0].(*ast.Attribute)
	if len(attr.Value.Parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(attr.Value.Parts))
	}
	if _, ok := attr.Value.Parts[0].(*ast.Text); !ok {
		t.Errorf("part 0: %T", attr.Value.Parts[0])
	}
	if _, ok := attr.Value.Parts[1].(*ast.ExpressionTag); !ok {
		t.Errorf("part 1: %T", attr.Value.Parts[1])
	}
	if text, ok := attr.Value.Parts[2].(*ast.Text); !ok || text.Data != "/profile" {
		t.Errorf("part 2: %T", attr.Value.Parts[2])
	}
}

func TestParseSpreadAttribute(t *testing.T) {
	el := firstElement(t, "<div {...props}></div>")
	spread := el.Attributes[0].(*ast.SpreadAttribute)
	if spread.Expression.Get("name") != "props" {
		t.Errorf("unexpected expression: %v", spread.Expression)
	}
}

func TestParseDuplicateAttribute(t *testing.T) {
	_, _, err := Parse(`<div id="a" id="b"></div>`, DefaultOptions())
	perr, ok := err.(*ParseError)
	if !ok || perr.Code != CodeDuplicateAttribute {
		t.Fatalf("got %v, want duplicate_attribute", err)
	}
}

func TestParseDirectives(t *testing.T) {
	root := parse(t, `<div on:click={handler} bind:value class:active use:tip animate:flip let:item style:color="red" transition:fade|local in:fly out:fade on:keydown|once|self={onKey}></div>`)
	el := root.Fragment.Nodes[0].(*ast.RegularElement)

	on := el.Attributes[0].(*ast.OnDirective)
	if on.Name != "click" || on.Expression == nil {
		t.Errorf("on directive: %+v", on)
	}

	bind := el.Attributes[1].(*ast.BindDirective)
	if bind.Name != "value" {
		t.Errorf("bind directive: %+v", bind)
	}
	if bind.Expression == nil || bind.Expression.Get("name") != "value" {
		t.Errorf("bind shorthand must default to the identifier: %v", bind.Expression)
	}

	class := el.Attributes[2].(*ast.ClassDirective)
	if class.Name != "active" || class.Expression.Get("name") != "active" {
		t.Errorf("class directive: %+v", class)
	}

	use := el.Attributes[3].(*ast.UseDirective)
	if use.Name != "tip" || use.Expression != nil {
		t.Errorf("use directive: %+v", use)
	}

	animate := el.Attributes[4].(*ast.AnimateDirective)
	if animate.Name != "flip" {
		t.Errorf("animate directive: %+v", animate)
	}

	let := el.Attributes[5].(*ast.LetDirective)
	if let.Name != "item" {
		t.Errorf("let directive: %+v", let)
	}

	style := el.Attributes[6].(*ast.StyleDirective)
	if style.Name != "color" {
		t.Errorf("style directive: %+v", style)
	}
	if style.Value.True || style.Value.Parts[0].(*ast.Text).Data != "red" {
		t.Errorf("style value: %+v", style.Value)
	}

	transition := el.Attributes[7].(*ast.TransitionDirective)
	if !transition.Intro || !transition.Outro {
		t.Errorf("transition: intro=%v outro=%v", transition.Intro, transition.Outro)
	}
	if len(transition.Modifiers) != 1 || transition.Modifiers[0] != "local" {
		t.Errorf("transition modifiers: %v", transition.Modifiers)
	}

	in := el.Attributes[8].(*ast.TransitionDirective)
	if !in.Intro || in.Outro {
		t.Errorf("in: intro=%v outro=%v", in.Intro, in.Outro)
	}

	out := el.Attributes[9].(*ast.TransitionDirective)
	if out.Intro || !out.Outro {
		t.Errorf("out: intro=%v outro=%v", out.Intro, out.Outro)
	}

	keydown := el.Attributes[10].(*ast.OnDirective)
	if len(keydown.Modifiers) != 2 || keydown.Modifiers[0] != "once" || keydown.Modifiers[1] != "self" {
		t.Errorf("keydown modifiers: %v", keydown.Modifiers)
	}
}

func TestParseAttributeWithColonNotDirective(t *testing.T) {
	el := firstElement(t, `<div xmlns:xlink="x"></div>`)
	attr, ok := el.Attributes[0].(*ast.Attribute)
	if !ok {
		t.Fatalf("got %T, want plain attribute", el.Attributes[0])
	}
	if attr.Name != "xmlns:xlink" {
		t.Errorf("got name %q", attr.Name)
	}
}

func TestParseEmptyQuotedValue(t *testing.T) {
	el := firstElement(t, `<div data-x=""></div>`)
	attr := el.Attributes[0].(*ast.Attribute)
	if len(attr.Value.Parts) != 1 {
		t.Fatalf("got %d parts", len(attr.Value.Parts))
	}
	text := attr.Value.Parts[0].(*ast.Text)
	if text.Data != "" || text.Start != text.End {
		t.Errorf("unexpected empty value part: %+v", text)
	}
}
