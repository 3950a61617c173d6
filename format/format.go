// Package format renders parsed component ASTs for output. The JSON
// encoder is deterministic: tab indentation, fixed per-node-type key order
// (pinned by the ast package's marshalers), and a trailing newline, so that
// downstream comparison can be textual.
package format

import (
	"encoding"

	"github.com/dhamidi/velo/component/ast"
)

// Encoder serializes a parsed component root to an output stream.
type Encoder interface {
	encoding.TextMarshaler
	Encode(root *ast.Root) error
}
