package ast

import (
	"encoding/json"

	"github.com/dhamidi/velo/component/estree"
)

// The shadow structs below pin the exact key order of the serialized AST.
// encoding/json emits struct fields in declaration order, so each struct is
// the specification of its node's JSON shape. Downstream comparison is
// textual, so the order must not drift.

func jsNodes(nodes []*estree.Node) []*estree.Node {
	if nodes == nil {
		return []*estree.Node{}
	}
	return nodes
}

type jsonRoot struct {
	Type     string         `json:"type"`
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Fragment *Fragment      `json:"fragment"`
	Options  *SvelteOptions `json:"options"`
	Instance *Script        `json:"instance"`
	Module   *Script        `json:"module"`
	CSS      *StyleSheet    `json:"css"`
	Metadata jsonMetadata   `json:"metadata"`
	JS       []*estree.Node `json:"js"`
}

type jsonMetadata struct {
	TS bool `json:"ts"`
}

func (n *Root) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonRoot{
		Type:     "Root",
		Start:    n.Start,
		End:      n.End,
		Fragment: n.Fragment,
		Options:  n.Options,
		Instance: n.Instance,
		Module:   n.Module,
		CSS:      n.CSS,
		Metadata: jsonMetadata{TS: n.Metadata.TS},
		JS:       jsNodes(n.JS),
	})
}

type jsonFragment struct {
	Type  string         `json:"type"`
	Nodes []FragmentNode `json:"nodes"`
}

func (n *Fragment) MarshalJSON() ([]byte, error) {
	nodes := n.Nodes
	if nodes == nil {
		nodes = []FragmentNode{}
	}
	return json.Marshal(jsonFragment{Type: "Fragment", Nodes: nodes})
}

type jsonScript struct {
	Type       string          `json:"type"`
	Start      int             `json:"start"`
	End        int             `json:"end"`
	Context    string          `json:"context"`
	Content    *estree.Node    `json:"content"`
	Attributes []AttributeNode `json:"attributes"`
}

func (n *Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonScript{
		Type:       "Script",
		Start:      n.Start,
		End:        n.End,
		Context:    n.Context,
		Content:    n.Content,
		Attributes: attrs(n.Attributes),
	})
}

type jsonSvelteOptions struct {
	Start              int             `json:"start"`
	End                int             `json:"end"`
	Runes              *bool           `json:"runes,omitempty"`
	Immutable          *bool           `json:"immutable,omitempty"`
	Accessors          *bool           `json:"accessors,omitempty"`
	PreserveWhitespace *bool           `json:"preserveWhitespace,omitempty"`
	Namespace          string          `json:"namespace,omitempty"`
	CSS                string          `json:"css,omitempty"`
	CustomElement      *jsonCustomElem `json:"customElement,omitempty"`
	Attributes         []AttributeNode `json:"attributes"`
}

type jsonCustomElem struct {
	Tag string `json:"tag"`
}

func (n *SvelteOptions) MarshalJSON() ([]byte, error) {
	out := jsonSvelteOptions{
		Start:              n.Start,
		End:                n.End,
		Runes:              n.Runes,
		Immutable:          n.Immutable,
		Accessors:          n.Accessors,
		PreserveWhitespace: n.PreserveWhitespace,
		Namespace:          n.Namespace,
		CSS:                n.CSS,
		Attributes:         attrs(n.Attributes),
	}
	if n.CustomElement != nil {
		out.CustomElement = &jsonCustomElem{Tag: n.CustomElement.Tag}
	}
	return json.Marshal(out)
}

func attrs(a []AttributeNode) []AttributeNode {
	if a == nil {
		return []AttributeNode{}
	}
	return a
}

type jsonText struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Raw   string `json:"raw"`
	Data  string `json:"data"`
}

func (n *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonText{"Text", n.Start, n.End, n.Raw, n.Data})
}

type jsonComment struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Data  string `json:"data"`
}

func (n *Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonComment{"Comment", n.Start, n.End, n.Data})
}

type jsonExprHolder struct {
	Type       string       `json:"type"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Expression *estree.Node `json:"expression"`
}

func (n *ExpressionTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonExprHolder{"ExpressionTag", n.Start, n.End, n.Expression})
}

func (n *HtmlTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonExprHolder{"HtmlTag", n.Start, n.End, n.Expression})
}

func (n *RenderTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonExprHolder{"RenderTag", n.Start, n.End, n.Expression})
}

type jsonConstTag struct {
	Type        string       `json:"type"`
	Start       int          `json:"start"`
	End         int          `json:"end"`
	Declaration *estree.Node `json:"declaration"`
}

func (n *ConstTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonConstTag{"ConstTag", n.Start, n.End, n.Declaration})
}

type jsonDebugTag struct {
	Type        string         `json:"type"`
	Start       int            `json:"start"`
	End         int            `json:"end"`
	Identifiers []*estree.Node `json:"identifiers"`
}

func (n *DebugTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonDebugTag{"DebugTag", n.Start, n.End, jsNodes(n.Identifiers)})
}

type jsonIfBlock struct {
	Type       string       `json:"type"`
	Elseif     bool         `json:"elseif"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Test       *estree.Node `json:"test"`
	Consequent *Fragment    `json:"consequent"`
	Alternate  IfAlternate  `json:"alternate"`
}

func (n *IfBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonIfBlock{
		Type:       "IfBlock",
		Elseif:     n.Elseif,
		Start:      n.Start,
		End:        n.End,
		Test:       n.Test,
		Consequent: n.Consequent,
		Alternate:  n.Alternate,
	})
}

type jsonEachBlock struct {
	Type       string       `json:"type"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Expression *estree.Node `json:"expression"`
	Context    *estree.Node `json:"context"`
	Body       *Fragment    `json:"body"`
	Fallback   *Fragment    `json:"fallback"`
	Index      *string      `json:"index"`
	Key        *estree.Node `json:"key"`
}

func (n *EachBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonEachBlock{
		Type:       "EachBlock",
		Start:      n.Start,
		End:        n.End,
		Expression: n.Expression,
		Context:    n.Context,
		Body:       n.Body,
		Fallback:   n.Fallback,
		Index:      n.Index,
		Key:        n.Key,
	})
}

type jsonAwaitBlock struct {
	Type       string       `json:"type"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Expression *estree.Node `json:"expression"`
	Value      *estree.Node `json:"value"`
	Error      *estree.Node `json:"error"`
	Pending    *Fragment    `json:"pending"`
	Then       *Fragment    `json:"then"`
	Catch      *Fragment    `json:"catch"`
}

func (n *AwaitBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonAwaitBlock{
		Type:       "AwaitBlock",
		Start:      n.Start,
		End:        n.End,
		Expression: n.Expression,
		Value:      n.Value,
		Error:      n.Error,
		Pending:    n.Pending,
		Then:       n.Then,
		Catch:      n.Catch,
	})
}

type jsonKeyBlock struct {
	Type       string       `json:"type"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Expression *estree.Node `json:"expression"`
	Fragment   *Fragment    `json:"fragment"`
}

func (n *KeyBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonKeyBlock{"KeyBlock", n.Start, n.End, n.Expression, n.Fragment})
}

type jsonSnippetBlock struct {
	Type       string         `json:"type"`
	Start      int            `json:"start"`
	End        int            `json:"end"`
	Expression *estree.Node   `json:"expression"`
	Parameters []*estree.Node `json:"parameters"`
	Body       *Fragment      `json:"body"`
}

func (n *SnippetBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSnippetBlock{
		Type:       "SnippetBlock",
		Start:      n.Start,
		End:        n.End,
		Expression: n.Expression,
		Parameters: jsNodes(n.Parameters),
		Body:       n.Body,
	})
}

type jsonElement struct {
	Type       string          `json:"type"`
	Start      int             `json:"start"`
	End        int             `json:"end"`
	Name       string          `json:"name"`
	Attributes []AttributeNode `json:"attributes"`
	Fragment   *Fragment       `json:"fragment"`
}

func marshalElement(typ string, e *BaseElement) ([]byte, error) {
	return json.Marshal(jsonElement{
		Type:       typ,
		Start:      e.Start,
		End:        e.End,
		Name:       e.Name,
		Attributes: attrs(e.Attributes),
		Fragment:   e.Fragment,
	})
}

func (n *RegularElement) MarshalJSON() ([]byte, error)   { return marshalElement("RegularElement", &n.BaseElement) }
func (n *Component) MarshalJSON() ([]byte, error)        { return marshalElement("Component", &n.BaseElement) }
func (n *SvelteSelf) MarshalJSON() ([]byte, error)       { return marshalElement("SvelteSelf", &n.BaseElement) }
func (n *SvelteFragment) MarshalJSON() ([]byte, error)   { return marshalElement("SvelteFragment", &n.BaseElement) }
func (n *SvelteHead) MarshalJSON() ([]byte, error)       { return marshalElement("SvelteHead", &n.BaseElement) }
func (n *SvelteWindow) MarshalJSON() ([]byte, error)     { return marshalElement("SvelteWindow", &n.BaseElement) }
func (n *SvelteDocument) MarshalJSON() ([]byte, error)   { return marshalElement("SvelteDocument", &n.BaseElement) }
func (n *SvelteBody) MarshalJSON() ([]byte, error)       { return marshalElement("SvelteBody", &n.BaseElement) }
func (n *SvelteOptionsRaw) MarshalJSON() ([]byte, error) { return marshalElement("SvelteOptions", &n.BaseElement) }
func (n *SlotElement) MarshalJSON() ([]byte, error)      { return marshalElement("SlotElement", &n.BaseElement) }
func (n *TitleElement) MarshalJSON() ([]byte, error)     { return marshalElement("TitleElement", &n.BaseElement) }

type jsonSvelteElement struct {
	Type       string          `json:"type"`
	Start      int             `json:"start"`
	End        int             `json:"end"`
	Name       string          `json:"name"`
	Tag        *estree.Node    `json:"tag"`
	Attributes []AttributeNode `json:"attributes"`
	Fragment   *Fragment       `json:"fragment"`
}

func (n *SvelteElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSvelteElement{
		Type:       "SvelteElement",
		Start:      n.Start,
		End:        n.End,
		Name:       n.Name,
		Tag:        n.Tag,
		Attributes: attrs(n.Attributes),
		Fragment:   n.Fragment,
	})
}

type jsonSvelteComponent struct {
	Type       string          `json:"type"`
	Start      int             `json:"start"`
	End        int             `json:"end"`
	Name       string          `json:"name"`
	Expression *estree.Node    `json:"expression"`
	Attributes []AttributeNode `json:"attributes"`
	Fragment   *Fragment       `json:"fragment"`
}

func (n *SvelteComponent) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSvelteComponent{
		Type:       "SvelteComponent",
		Start:      n.Start,
		End:        n.End,
		Name:       n.Name,
		Expression: n.Expression,
		Attributes: attrs(n.Attributes),
		Fragment:   n.Fragment,
	})
}

// MarshalJSON emits `true` for bare attributes and the part array otherwise.
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.True {
		return []byte("true"), nil
	}
	parts := v.Parts
	if parts == nil {
		parts = []AttributeValuePart{}
	}
	return json.Marshal(parts)
}

type jsonAttribute struct {
	Type  string         `json:"type"`
	Start int            `json:"start"`
	End   int            `json:"end"`
	Name  string         `json:"name"`
	Value AttributeValue `json:"value"`
}

func (n *Attribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonAttribute{"Attribute", n.Start, n.End, n.Name, n.Value})
}

func (n *SpreadAttribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonExprHolder{"SpreadAttribute", n.Start, n.End, n.Expression})
}

type jsonDirective struct {
	Type       string       `json:"type"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Name       string       `json:"name"`
	Expression *estree.Node `json:"expression"`
	Modifiers  []string     `json:"modifiers"`
}

func marshalDirective(typ string, span Span, name string, expression *estree.Node, modifiers []string) ([]byte, error) {
	if modifiers == nil {
		modifiers = []string{}
	}
	return json.Marshal(jsonDirective{typ, span.Start, span.End, name, expression, modifiers})
}

func (n *BindDirective) MarshalJSON() ([]byte, error) {
	return marshalDirective("BindDirective", n.Span, n.Name, n.Expression, n.Modifiers)
}

func (n *OnDirective) MarshalJSON() ([]byte, error) {
	return marshalDirective("OnDirective", n.Span, n.Name, n.Expression, n.Modifiers)
}

func (n *UseDirective) MarshalJSON() ([]byte, error) {
	return marshalDirective("UseDirective", n.Span, n.Name, n.Expression, n.Modifiers)
}

func (n *AnimateDirective) MarshalJSON() ([]byte, error) {
	return marshalDirective("AnimateDirective", n.Span, n.Name, n.Expression, n.Modifiers)
}

func (n *ClassDirective) MarshalJSON() ([]byte, error) {
	return marshalDirective("ClassDirective", n.Span, n.Name, n.Expression, n.Modifiers)
}

func (n *LetDirective) MarshalJSON() ([]byte, error) {
	return marshalDirective("LetDirective", n.Span, n.Name, n.Expression, n.Modifiers)
}

type jsonTransitionDirective struct {
	Type       string       `json:"type"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Name       string       `json:"name"`
	Expression *estree.Node `json:"expression"`
	Modifiers  []string     `json:"modifiers"`
	Intro      bool         `json:"intro"`
	Outro      bool         `json:"outro"`
}

func (n *TransitionDirective) MarshalJSON() ([]byte, error) {
	modifiers := n.Modifiers
	if modifiers == nil {
		modifiers = []string{}
	}
	return json.Marshal(jsonTransitionDirective{
		Type:       "TransitionDirective",
		Start:      n.Start,
		End:        n.End,
		Name:       n.Name,
		Expression: n.Expression,
		Modifiers:  modifiers,
		Intro:      n.Intro,
		Outro:      n.Outro,
	})
}

type jsonStyleDirective struct {
	Type      string         `json:"type"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Name      string         `json:"name"`
	Value     AttributeValue `json:"value"`
	Modifiers []string       `json:"modifiers"`
}

func (n *StyleDirective) MarshalJSON() ([]byte, error) {
	modifiers := n.Modifiers
	if modifiers == nil {
		modifiers = []string{}
	}
	return json.Marshal(jsonStyleDirective{"StyleDirective", n.Start, n.End, n.Name, n.Value, modifiers})
}
