package parser

import (
	"testing"

	"github.com/dhamidi/velo/component/ast"
)

func parseCSS(t *testing.T, styles string) *ast.StyleSheet {
	t.Helper()
	root := parse(t, "<style>"+styles+"</style>")
	if root.CSS == nil {
		t.Fatal("css missing")
	}
	return root.CSS
}

func TestParseStyleSheetContent(t *testing.T) {
	css := parseCSS(t, "p { color: red; }")
	if css.Content.Styles != "p { color: red; }" {
		t.Errorf("styles %q", css.Content.Styles)
	}
	if css.Content.Start != len("<style>") {
		t.Errorf("content start %d", css.Content.Start)
	}
	if len(css.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(css.Children))
	}
}

func TestParseCSSRule(t *testing.T) {
	css := parseCSS(t, "p.note { color: red; font-size: 12px }")
	rule := css.Children[0].(*ast.CSSRule)

	if len(rule.Prelude.Children) != 1 {
		t.Fatalf("got %d selectors", len(rule.Prelude.Children))
	}
	complex := rule.Prelude.Children[0]
	if len(complex.Children) != 1 {
		t.Fatalf("got %d relative selectors", len(complex.Children))
	}
	relative := complex.Children[0]
	if len(relative.Selectors) != 2 {
		t.Fatalf("got %d simple selectors", len(relative.Selectors))
	}
	if ts, ok := relative.Selectors[0].(*ast.TypeSelector); !ok || ts.Name != "p" {
		t.Errorf("selector 0: %#v", relative.Selectors[0])
	}
	if cs, ok := relative.Selectors[1].(*ast.ClassSelector); !ok || cs.Name != "note" {
		t.Errorf("selector 1: %#v", relative.Selectors[1])
	}

	if len(rule.Block.Children) != 2 {
		t.Fatalf("got %d declarations", len(rule.Block.Children))
	}
	decl := rule.Block.Children[0].(*ast.CSSDeclaration)
	if decl.Property != "color" || decl.Value != "red" {
		t.Errorf("declaration: %+v", decl)
	}
	last := rule.Block.Children[1].(*ast.CSSDeclaration)
	if last.Property != "font-size" || last.Value != "12px" {
		t.Errorf("last declaration: %+v", last)
	}
}

func TestParseCSSCombinators(t *testing.T) {
	css := parseCSS(t, "ul > li + li ~ em a { color: red; }")
	rule := css.Children[0].(*ast.CSSRule)
	relatives := rule.Prelude.Children[0].Children
	if len(relatives) != 5 {
		t.Fatalf("got %d relative selectors, want 5", len(relatives))
	}
	if relatives[0].Combinator != nil {
		t.Errorf("first selector must have no combinator")
	}
	names := []string{">", "+", "~", " "}
	for i, want := range names {
		comb := relatives[i+1].Combinator
		if comb == nil || comb.Name != want {
			t.Errorf("combinator %d: got %+v, want %q", i+1, comb, want)
		}
	}
}

func TestParseCSSSelectorKinds(t *testing.T) {
	css := parseCSS(t, "#id .cls [data-x=\"1\"] *::before &:hover :global(a) { color: red; }")
	rule := css.Children[0].(*ast.CSSRule)
	relatives := rule.Prelude.Children[0].Children

	var kinds []string
	for _, rel := range relatives {
		for _, sel := range rel.Selectors {
			switch s := sel.(type) {
			case *ast.IDSelector:
				kinds = append(kinds, "id:"+s.Name)
			case *ast.ClassSelector:
				kinds = append(kinds, "class:"+s.Name)
			case *ast.AttributeSelector:
				kinds = append(kinds, "attr:"+s.Name)
			case *ast.TypeSelector:
				kinds = append(kinds, "type:"+s.Name)
			case *ast.PseudoElementSelector:
				kinds = append(kinds, "pseudoel:"+s.Name)
			case *ast.PseudoClassSelector:
				kinds = append(kinds, "pseudocls:"+s.Name)
			case *ast.NestingSelector:
				kinds = append(kinds, "nesting")
			}
		}
	}

	want := []string{
		"id:id", "class:cls", "attr:data-x", "type:*", "pseudoel:before",
		"nesting", "pseudocls:hover", "pseudocls:global",
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("selector %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestParseCSSAttributeSelector(t *testing.T) {
	css := parseCSS(t, `[data-kind^="warn" i] { color: red; }`)
	rule := css.Children[0].(*ast.CSSRule)
	sel := rule.Prelude.Children[0].Children[0].Selectors[0].(*ast.AttributeSelector)
	if sel.Name != "data-kind" {
		t.Errorf("name %q", sel.Name)
	}
	if sel.Matcher == nil || *sel.Matcher != "^=" {
		t.Errorf("matcher %v", sel.Matcher)
	}
	if sel.Value == nil || *sel.Value != "warn" {
		t.Errorf("value %v", sel.Value)
	}
	if sel.Flags == nil || *sel.Flags != "i" {
		t.Errorf("flags %v", sel.Flags)
	}
}

func TestParseCSSAtRules(t *testing.T) {
	css := parseCSS(t, "@import url(x.css);\n@media (min-width: 600px) { p { color: red; } }")
	if len(css.Children) != 2 {
		t.Fatalf("got %d children", len(css.Children))
	}

	imp := css.Children[0].(*ast.CSSAtrule)
	if imp.Name != "import" || imp.Block != nil {
		t.Errorf("import: %+v", imp)
	}
	if imp.Prelude != "url(x.css)" {
		t.Errorf("import prelude %q", imp.Prelude)
	}

	media := css.Children[1].(*ast.CSSAtrule)
	if media.Name != "media" || media.Block == nil {
		t.Fatalf("media: %+v", media)
	}
	if media.Prelude != "(min-width: 600px)" {
		t.Errorf("media prelude %q", media.Prelude)
	}
	if len(media.Block.Children) != 1 {
		t.Fatalf("media block: %d children", len(media.Block.Children))
	}
	if _, ok := media.Block.Children[0].(*ast.CSSRule); !ok {
		t.Errorf("media child: %T", media.Block.Children[0])
	}
}

func TestParseCSSKeyframes(t *testing.T) {
	css := parseCSS(t, "@keyframes spin { 0% { opacity: 0 } 100% { opacity: 1 } }")
	kf := css.Children[0].(*ast.CSSAtrule)
	if kf.Name != "keyframes" || kf.Prelude != "spin" || kf.Block == nil {
		t.Fatalf("keyframes: %+v", kf)
	}
	if len(kf.Block.Children) != 2 {
		t.Fatalf("got %d frames", len(kf.Block.Children))
	}
	frame := kf.Block.Children[0].(*ast.CSSRule)
	pct, ok := frame.Prelude.Children[0].Children[0].Selectors[0].(*ast.Percentage)
	if !ok || pct.Value != "0%" {
		t.Errorf("frame selector: %#v", frame.Prelude.Children[0].Children[0].Selectors[0])
	}
}

func TestParseCSSNestedRule(t *testing.T) {
	css := parseCSS(t, "div { color: red; & span { color: blue; } }")
	rule := css.Children[0].(*ast.CSSRule)
	if len(rule.Block.Children) != 2 {
		t.Fatalf("got %d block children", len(rule.Block.Children))
	}
	nested, ok := rule.Block.Children[1].(*ast.CSSRule)
	if !ok {
		t.Fatalf("got %T, want nested rule", rule.Block.Children[1])
	}
	if _, ok := nested.Prelude.Children[0].Children[0].Selectors[0].(*ast.NestingSelector); !ok {
		t.Errorf("nested selector must start with &")
	}
}

func TestParseCSSImportantAndURL(t *testing.T) {
	css := parseCSS(t, "p { background: url(\"a;b.png\") no-repeat !important; }")
	rule := css.Children[0].(*ast.CSSRule)
	decl := rule.Block.Children[0].(*ast.CSSDeclaration)
	if decl.Value != `url("a;b.png") no-repeat !important` {
		t.Errorf("value %q", decl.Value)
	}
}

func TestParseCSSPseudoClassArgs(t *testing.T) {
	css := parseCSS(t, "a:not(.external):has(> img) { color: red; }")
	rule := css.Children[0].(*ast.CSSRule)
	selectors := rule.Prelude.Children[0].Children[0].Selectors
	if len(selectors) != 3 {
		t.Fatalf("got %d selectors", len(selectors))
	}
	not := selectors[1].(*ast.PseudoClassSelector)
	if not.Name != "not" || not.Args == nil {
		t.Fatalf("not: %+v", not)
	}
	has := selectors[2].(*ast.PseudoClassSelector)
	if has.Name != "has" || has.Args == nil {
		t.Fatalf("has: %+v", has)
	}
}

func TestParseCSSNth(t *testing.T) {
	css := parseCSS(t, "li:nth-child(2n+1) { color: red; }")
	rule := css.Children[0].(*ast.CSSRule)
	nth := rule.Prelude.Children[0].Children[0].Selectors[1].(*ast.PseudoClassSelector)
	if nth.Args == nil {
		t.Fatal("nth args missing")
	}
	sel := nth.Args.Children[0].Children[0].Selectors[0]
	if n, ok := sel.(*ast.Nth); !ok || n.Value != "2n+1" {
		t.Errorf("got %#v", sel)
	}
}

func TestParseCSSCustomProperty(t *testing.T) {
	css := parseCSS(t, ":root { --accent: ; }")
	rule := css.Children[0].(*ast.CSSRule)
	decl := rule.Block.Children[0].(*ast.CSSDeclaration)
	if decl.Property != "--accent" {
		t.Errorf("property %q", decl.Property)
	}
}
