package estree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeMarshalPreservesOrder(t *testing.T) {
	n := NewNode("Identifier", 3, 8)
	n.Set("name", "count")

	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"Identifier","start":3,"end":8,"name":"count"}`, string(out))
}

func TestNodeSetKeepsPosition(t *testing.T) {
	n := NewNode("Literal", 0, 2)
	n.Set("value", 1)
	n.Set("raw", "1")
	n.Set("value", 42)

	assert.Equal(t, []string{"type", "start", "end", "value", "raw"}, n.Keys())
	assert.Equal(t, 42, n.Get("value"))
}

func TestNodeWalk(t *testing.T) {
	inner := Identifier("x", 0, 1)
	outer := NewNode("ExpressionStatement", 0, 2)
	outer.Set("expression", inner)

	var visited []string
	outer.Walk(func(n *Node) bool {
		visited = append(visited, n.Type())
		return true
	})
	assert.Equal(t, []string{"ExpressionStatement", "Identifier"}, visited)
}

func TestNilNodeMarshalsAsNull(t *testing.T) {
	var n *Node
	out, err := json.Marshal(struct {
		Expression *Node `json:"expression"`
	}{n})
	require.NoError(t, err)
	assert.Equal(t, `{"expression":null}`, string(out))
}

func TestCleanDropsSubParserFields(t *testing.T) {
	n := NewNode("Identifier", 0, 1)
	n.Set("name", "x")
	n.Set("definite", false)
	n.Set("optional", false)
	n.Set("typeAnnotation", nil)
	n.Set("loc", map[string]any{})

	Clean(n, ContextTemplateExpression)

	assert.Equal(t, []string{"type", "start", "end", "name"}, n.Keys())
}

func TestCleanDropsCommentsOutsideScriptBody(t *testing.T) {
	n := NewNode("VariableDeclaration", 0, 10)
	n.Set("leadingComments", []*Node{NewNode("Line", 0, 4)})

	Clean(n, ContextTemplateExpression)
	assert.False(t, n.Has("leadingComments"))
}

func TestCleanKeepsCommentsInScriptBody(t *testing.T) {
	n := NewNode("VariableDeclaration", 0, 10)
	n.Set("leadingComments", []*Node{NewNode("Line", 0, 4)})

	Clean(n, ContextScriptBody)
	assert.True(t, n.Has("leadingComments"))
}

func TestCleanRecursesIntoChildren(t *testing.T) {
	child := Identifier("x", 2, 3)
	child.Set("abstract", false)
	parent := NewNode("ExpressionStatement", 0, 4)
	parent.Set("expression", child)

	Clean(parent, ContextTemplateExpression)
	assert.False(t, child.Has("abstract"))
}

func TestCleanDropsEmptyDecorators(t *testing.T) {
	n := NewNode("Identifier", 0, 1)
	n.Set("decorators", []*Node{})
	Clean(n, ContextTemplateExpression)
	assert.False(t, n.Has("decorators"))
}

func TestCleanEnsuresOffsets(t *testing.T) {
	n := NewObject()
	n.Set("type", "Identifier")
	Clean(n, ContextTemplateExpression)
	assert.True(t, n.Has("start"))
	assert.True(t, n.Has("end"))
}
