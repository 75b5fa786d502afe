package workspace

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/orgcst/org/buffer"
	"github.com/dhamidi/orgcst/org/parser"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "orgcst"

var lspLog = commonlog.GetLogger("orgcst.lsp")

type LSPServer struct {
	workspace *Workspace
	opts      []parser.Option
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string, opts ...parser.Option) *LSPServer {
	ls := &LSPServer{
		version:   version,
		opts:      opts,
		workspace: New(".", opts...),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentFormatting:     ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) Workspace() *Workspace {
	return ls.workspace
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true
	capabilities.DocumentFormattingProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(); err != nil {
		lspLog.Warningf("scan %s: %s", ls.workspace.RootDir(), err)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc := ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, params.TextDocument.URI, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			doc := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(ctx, params.TextDocument.URI, doc)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var doc *Document
	if params.Text != nil {
		doc = ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else if doc, err = ls.workspace.ScanFile(path); err != nil {
		lspLog.Warningf("read %s: %s", path, err)
		return nil
	}
	ls.publishDiagnostics(ctx, params.TextDocument.URI, doc)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.workspace.GetFile(path)
	if doc == nil || doc.Tree == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	return toDocumentSymbols(doc.Tree.Buf, ls.workspace.Symbols(path)), nil
}

func toDocumentSymbols(buf *buffer.Buffer, syms []*Symbol) []protocol.DocumentSymbol {
	result := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, s := range syms {
		ds := protocol.DocumentSymbol{
			Name:           s.Name,
			Kind:           protocol.SymbolKindNamespace,
			Range:          toRange(buf, s.Span),
			SelectionRange: toRange(buf, s.Selection),
			Children:       toDocumentSymbols(buf, s.Children),
		}
		if s.Detail != "" {
			detail := s.Detail
			ds.Detail = &detail
		}
		result = append(result, ds)
	}
	return result
}

// textDocumentFormatting replaces the whole document with its canonical
// text in one edit, or returns no edits when it is already canonical.
func (ls *LSPServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.workspace.GetFile(path)
	if doc == nil || doc.Tree == nil {
		return nil, nil
	}
	out, err := ls.workspace.Format(path)
	if err != nil {
		return nil, err
	}
	if string(out) == string(doc.Content) {
		return []protocol.TextEdit{}, nil
	}
	whole := buffer.Span{Start: 0, End: doc.Tree.Buf.Len()}
	return []protocol.TextEdit{{Range: toRange(doc.Tree.Buf, whole), NewText: string(out)}}, nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, doc *Document) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics(doc),
	})
}

// diagnostics reports encoding and nesting limit failures. Well formed Org
// input never produces a diagnostic.
func diagnostics(doc *Document) []protocol.Diagnostic {
	result := []protocol.Diagnostic{}
	if doc == nil || doc.ParseErr == nil {
		return result
	}
	buf := buffer.New(doc.Content)
	off := 0
	var ee *parser.EncodingError
	var le *parser.LimitError
	switch {
	case errors.As(doc.ParseErr, &ee):
		off = ee.Offset
	case errors.As(doc.ParseErr, &le):
		off = le.Offset
	}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return append(result, protocol.Diagnostic{
		Range:    toRange(buf, buffer.Span{Start: off, End: off}),
		Severity: &severity,
		Source:   &source,
		Message:  doc.ParseErr.Error(),
	})
}

func toRange(buf *buffer.Buffer, s buffer.Span) protocol.Range {
	return protocol.Range{Start: toPosition(buf, s.Start), End: toPosition(buf, s.End)}
}

// toPosition converts a byte offset into a zero based line and UTF-16
// character offset.
func toPosition(buf *buffer.Buffer, off int) protocol.Position {
	if off >= buf.Len() && buf.Len() > 0 && buf.Bytes()[buf.Len()-1] == '\n' {
		return protocol.Position{Line: protocol.UInteger(buf.LineCount()), Character: 0}
	}
	pos := buf.Position(off)
	return protocol.Position{Line: protocol.UInteger(pos.Line - 1), Character: protocol.UInteger(pos.UTF16Column)}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
