package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/orgcst/org/buffer"
)

type notification struct {
	method string
	params any
}

func testContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*sent = append(*sent, notification{method, params})
		},
	}
}

func open(t *testing.T, ls *LSPServer, ctx *glsp.Context, uri, text string) {
	t.Helper()
	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "org", Version: 1, Text: text},
	}))
}

func TestLSPDocumentSymbols(t *testing.T) {
	var sent []notification
	ls := NewLSPServer("test")
	ctx := testContext(&sent)
	uri := "file:///tmp/notes.org"
	open(t, ls, ctx, uri, "* A\n** B :t:\n* C\n")

	result, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	syms := result.([]protocol.DocumentSymbol)
	require.Len(t, syms, 2)
	assert.Equal(t, "A", syms[0].Name)
	require.Len(t, syms[0].Children, 1)
	assert.Equal(t, "B", syms[0].Children[0].Name)
	require.NotNil(t, syms[0].Children[0].Detail)
	assert.Equal(t, ":t:", *syms[0].Children[0].Detail)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 2, Character: 0},
	}, syms[0].Range)
	assert.Equal(t, protocol.Position{Line: 0, Character: 3}, syms[0].SelectionRange.End)

	require.Len(t, sent, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, sent[0].method)
	assert.Empty(t, sent[0].params.(protocol.PublishDiagnosticsParams).Diagnostics)
}

func TestLSPDidChangeReparses(t *testing.T) {
	var sent []notification
	ls := NewLSPServer("test")
	ctx := testContext(&sent)
	uri := "file:///tmp/notes.org"
	open(t, ls, ctx, uri, "* A\n")

	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "ok\n\xff\n"}},
	}))

	require.Len(t, sent, 2)
	diags := sent[1].params.(protocol.PublishDiagnosticsParams).Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, diags[0].Range.Start)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)

	doc := ls.Workspace().GetFile("/tmp/notes.org")
	require.NotNil(t, doc)
	assert.Error(t, doc.ParseErr)
}

func TestLSPFormatting(t *testing.T) {
	var sent []notification
	ls := NewLSPServer("test")
	ctx := testContext(&sent)
	uri := "file:///tmp/messy.org"
	open(t, ls, ctx, uri, "*   Title   \n|a|bb|\n")

	params := &protocol.DocumentFormattingParams{TextDocument: protocol.TextDocumentIdentifier{URI: uri}}
	edits, err := ls.textDocumentFormatting(ctx, params)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "* Title\n| a | bb |\n", edits[0].NewText)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 2, Character: 0},
	}, edits[0].Range)

	open(t, ls, ctx, uri, edits[0].NewText)
	edits, err = ls.textDocumentFormatting(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestToPosition(t *testing.T) {
	buf := buffer.New([]byte("a😀b\nc"))
	assert.Equal(t, protocol.Position{Line: 0, Character: 3}, toPosition(buf, len("a😀")))
	assert.Equal(t, protocol.Position{Line: 1, Character: 1}, toPosition(buf, buf.Len()))

	buf = buffer.New([]byte("a\n"))
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, toPosition(buf, buf.Len()))
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///home/me/notes%20file.org")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/notes file.org", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
