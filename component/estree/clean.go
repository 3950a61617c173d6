package estree

// Context identifies where a sub-parser result is being attached. The
// canonicalizer's field-mask is keyed by (context, node type, field) because
// the reference keeps some sub-parser fields in some positions (for example
// leadingComments on script bodies) while dropping them everywhere else.
type Context string

const (
	ContextScriptBody         Context = "script_body"
	ContextTemplateExpression Context = "template_expression"
	ContextConstDeclaration   Context = "const_declaration"
	ContextEachContext        Context = "each_context"
	ContextEachKey            Context = "each_key"
	ContextSnippetParams      Context = "snippet_params"
	ContextStyleValue         Context = "style_value"
)

// dropAlways lists sub-parser auxiliary fields that never appear in the
// reference output, regardless of context or node type.
var dropAlways = []string{
	"definite",
	"abstract",
	"declare",
	"accessibility",
	"override",
	"readonly",
	"typeAnnotation",
	"returnType",
	"typeParameters",
	"loc",
	"range",
	"ctxt",
}

// dropByType removes fields that are sub-parser artifacts on specific node
// types only. `optional` is real ESTree state on calls and member accesses
// but a TypeScript leftover on identifiers and patterns.
var dropByType = map[string][]string{
	"Identifier":    {"optional"},
	"ArrayPattern":  {"optional"},
	"ObjectPattern": {"optional"},
	"RestElement":   {"optional"},
}

// dropUnlessKept lists fields that are dropped except where keepField allows
// them for a specific (context, type) pair.
var dropUnlessKept = []string{
	"leadingComments",
	"trailingComments",
}

// keep is the allow side of the mask: (context, type, field) triples the
// reference preserves. A "*" type matches any node type.
var keep = map[Context]map[string]map[string]bool{
	ContextScriptBody: {
		"*": {"leadingComments": true, "trailingComments": true},
	},
	ContextConstDeclaration: {
		"VariableDeclaration": {"leadingComments": true},
	},
}

func keepField(ctx Context, typ, field string) bool {
	byType, ok := keep[ctx]
	if !ok {
		return false
	}
	if fields, ok := byType[typ]; ok && fields[field] {
		return true
	}
	if fields, ok := byType["*"]; ok && fields[field] {
		return true
	}
	return false
}

// Clean canonicalizes a sub-parser result in place: it strips auxiliary
// fields per the (context, type, field) mask, removes empty decorator lists,
// and guarantees start/end are present on every node. It returns the node
// for chaining.
func Clean(n *Node, ctx Context) *Node {
	if n == nil {
		return nil
	}
	n.Walk(func(node *Node) bool {
		typ := node.Type()

		for _, field := range dropAlways {
			node.Delete(field)
		}
		for _, field := range dropByType[typ] {
			node.Delete(field)
		}
		for _, field := range dropUnlessKept {
			if !keepField(ctx, typ, field) {
				node.Delete(field)
			}
		}
		// decorators are dropped only when empty or absent-by-default.
		if d, ok := node.Get("decorators").([]*Node); ok && len(d) == 0 {
			node.Delete("decorators")
		}

		if !node.Has("start") {
			node.Set("start", 0)
		}
		if !node.Has("end") {
			node.Set("end", 0)
		}
		return true
	})
	return n
}
