// Package lsp serves component-file parse diagnostics over the Language
// Server Protocol on stdio.
package lsp

import (
	"sort"
	"sync"

	"github.com/dhamidi/velo/component/parser"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "velo"

// Server is an LSP server that reparses open documents on every change and
// publishes parse errors as diagnostics.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	documents map[string]string
}

func NewServer(version string) *Server {
	s := &Server{
		version:   version,
		documents: make(map[string]string),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.setDocument(uri, params.TextDocument.Text)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			// Full sync is negotiated, so the event carries the whole text.
			s.setDocument(uri, c.Text)
		case protocol.TextDocumentContentChangeEventWhole:
			s.setDocument(uri, c.Text)
		}
	}
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

func (s *Server) setDocument(uri, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	s.mu.Lock()
	text, ok := s.documents[uri]
	s.mu.Unlock()
	if !ok {
		return
	}

	normalized := parser.Normalize(text)
	locator := newLocator(normalized)

	opts := parser.DefaultOptions()
	opts.Loose = true
	opts.Filename = uri

	diagnostics := []protocol.Diagnostic{}
	_, errs, fatal := parser.Parse(text, opts)
	if fatal != nil {
		if perr, ok := fatal.(*parser.ParseError); ok {
			errs = append(errs, perr)
		}
	}
	for _, e := range errs {
		severity := protocol.DiagnosticSeverityError
		source := lsName
		code := protocol.IntegerOrString{Value: e.Code}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: locator.position(e.Start),
				End:   locator.position(e.End),
			},
			Severity: &severity,
			Code:     &code,
			Source:   &source,
			Message:  e.Message,
		})
	}

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// locator converts byte offsets into LSP line/character positions using a
// binary search over line start offsets.
type locator struct {
	lineStarts []int
}

func newLocator(source string) *locator {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &locator{lineStarts: starts}
}

func (l *locator) position(offset int) protocol.Position {
	line := sort.SearchInts(l.lineStarts, offset+1) - 1
	if line < 0 {
		line = 0
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(offset - l.lineStarts[line]),
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *protocol.TextDocumentSyncKind {
	kind := protocol.TextDocumentSyncKind(i)
	return &kind
}
