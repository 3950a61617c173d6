package format

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/dhamidi/velo/component/ast"
)

// ASTJSONEncoder writes the component AST as indented JSON.
type ASTJSONEncoder struct {
	w    io.Writer
	root *ast.Root
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(root *ast.Root) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

// MarshalText emits the AST with tab indentation and a trailing newline.
// Key order within each node comes from the node's own MarshalJSON.
func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	compact, err := json.Marshal(e.root)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "\t"); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
