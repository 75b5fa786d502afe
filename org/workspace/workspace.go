// Package workspace keeps parsed Org documents for a directory tree and
// serves them to the language server and the file watcher.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/orgcst/format"
	"github.com/dhamidi/orgcst/org/buffer"
	"github.com/dhamidi/orgcst/org/parser"
)

var log = commonlog.GetLogger("orgcst.workspace")

// Ext is the file extension of Org documents.
const Ext = ".org"

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	docs    map[string]*Document
}

// Document is the latest parse of one file. Tree is nil when ParseErr is
// set.
type Document struct {
	Path     string
	Content  []byte
	Tree     *parser.Tree
	ParseErr error
}

func New(rootDir string, opts ...parser.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		opts:    opts,
		docs:    make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll parses every Org file below the root directory, skipping hidden
// directories.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Ext {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile parses content and replaces the document stored for path.
// Parsing happens outside the lock.
func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	opts := append([]parser.Option{}, w.opts...)
	opts = append(opts, parser.WithFile(filepath.Base(path)))
	tree, err := parser.Parse(content, opts...)
	if err != nil {
		log.Debugf("parse %s: %s", path, err)
		tree = nil
	}
	doc := &Document{Path: path, Content: content, Tree: tree, ParseErr: err}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = doc
	return doc
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Paths returns the paths of all known documents in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.docs))
	for p := range w.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Symbol is a headline in the outline of a document.
type Symbol struct {
	Name      string
	Detail    string
	Level     int
	Span      buffer.Span
	Selection buffer.Span
	Children  []*Symbol
}

// Symbols returns the headline hierarchy of the document at path.
func (w *Workspace) Symbols(path string) []*Symbol {
	doc := w.GetFile(path)
	if doc == nil || doc.Tree == nil {
		return nil
	}
	return symbols(doc.Tree, doc.Tree.Root)
}

func symbols(tree *parser.Tree, n *parser.Node) []*Symbol {
	var result []*Symbol
	for _, c := range n.ChildrenOfKind(parser.KindHeadline) {
		props := c.Props.(*parser.HeadlineProps)
		name := props.RawValue
		if name == "" {
			name = strings.Repeat("*", props.Level)
		}
		var detail []string
		if props.TodoKeyword != "" {
			detail = append(detail, props.TodoKeyword)
		}
		if len(props.Tags) > 0 {
			detail = append(detail, ":"+strings.Join(props.Tags, ":")+":")
		}
		result = append(result, &Symbol{
			Name:      name,
			Detail:    strings.Join(detail, " "),
			Level:     props.Level,
			Span:      c.Span,
			Selection: tree.Buf.Content(tree.Buf.LineAt(c.Span.Start)),
			Children:  symbols(tree, c),
		})
	}
	return result
}

// Format returns the canonical text of the document at path.
func (w *Workspace) Format(path string) ([]byte, error) {
	doc := w.GetFile(path)
	if doc == nil {
		return nil, os.ErrNotExist
	}
	if doc.ParseErr != nil {
		return nil, doc.ParseErr
	}
	return format.Serialize(doc.Tree)
}
