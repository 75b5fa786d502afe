package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/orgcst/org/parser"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSymbols(t *testing.T) {
	w := New(".")
	w.UpdateFile("notes.org", []byte("* A :x:\nintro\n** B\n*** C\n* TODO D\n"))

	syms := w.Symbols("notes.org")
	require.Len(t, syms, 2)
	assert.Equal(t, "A", syms[0].Name)
	assert.Equal(t, ":x:", syms[0].Detail)
	require.Len(t, syms[0].Children, 1)
	assert.Equal(t, "B", syms[0].Children[0].Name)
	require.Len(t, syms[0].Children[0].Children, 1)
	assert.Equal(t, 3, syms[0].Children[0].Children[0].Level)

	assert.Equal(t, "D", syms[1].Name)
	assert.Equal(t, "TODO", syms[1].Detail)
	assert.Equal(t, 0, syms[0].Selection.Start)
	assert.Equal(t, len("* A :x:"), syms[0].Selection.End)

	assert.Nil(t, w.Symbols("missing.org"))
}

func TestUpdateFileKeepsParseErrors(t *testing.T) {
	w := New(".")
	doc := w.UpdateFile("bad.org", []byte("ok\n\xff\n"))
	assert.Nil(t, doc.Tree)
	require.Error(t, doc.ParseErr)
	assert.Contains(t, doc.ParseErr.Error(), "bad.org")
	assert.Nil(t, w.Symbols("bad.org"))

	_, err := w.Format("bad.org")
	assert.Error(t, err)
}

func TestUpdateFileUsesOptions(t *testing.T) {
	w := New(".", parser.WithMaxDepth(2))
	doc := w.UpdateFile("deep.org", []byte("- a\n  - b\n    - c\n"))
	assert.Error(t, doc.ParseErr)
}

func TestFormat(t *testing.T) {
	w := New(".")
	w.UpdateFile("a.org", []byte("*   TODO  Task\n|a|bb|\n"))
	out, err := w.Format("a.org")
	require.NoError(t, err)
	assert.Equal(t, "* TODO Task\n| a | bb |\n", string(out))

	_, err = w.Format("missing.org")
	assert.True(t, os.IsNotExist(err))
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.org"), "* A\n")
	writeFile(t, filepath.Join(dir, "sub", "b.org"), "* B\n")
	writeFile(t, filepath.Join(dir, ".hidden", "c.org"), "* C\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "* not org\n")

	w := New(dir)
	require.NoError(t, w.ScanAll())
	assert.Equal(t, []string{filepath.Join(dir, "a.org"), filepath.Join(dir, "sub", "b.org")}, w.Paths())
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.org")
	writeFile(t, path, "* A\n")

	w := New(dir)
	fw := NewFileWatcher(w, time.Hour)
	var changes []string
	fw.OnChange = func(p string, doc *Document) {
		if doc == nil {
			changes = append(changes, "removed "+filepath.Base(p))
			return
		}
		changes = append(changes, "parsed "+filepath.Base(p))
	}

	fw.scan()
	fw.scan()
	assert.Equal(t, []string{"parsed a.org"}, changes)
	require.NotNil(t, w.GetFile(path))

	writeFile(t, path, "* A\n* B\n")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	fw.scan()
	assert.Equal(t, []string{"parsed a.org", "parsed a.org"}, changes)
	assert.Len(t, w.Symbols(path), 2)

	require.NoError(t, os.Remove(path))
	fw.scan()
	assert.Equal(t, "removed a.org", changes[len(changes)-1])
	assert.Nil(t, w.GetFile(path))
}

func TestFileWatcherStartStop(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.org"), "* A\n")

	w := New(dir)
	fw := NewFileWatcher(w, 10*time.Millisecond)
	done := make(chan struct{})
	var once bool
	fw.OnChange = func(string, *Document) {
		if !once {
			once = true
			close(done)
		}
	}
	fw.Start()
	defer fw.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the initial scan")
	}
}

func TestFileWatcherEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.org"), "* A\n")

	w := New(dir)
	fw := NewFileWatcher(w, time.Hour)
	changes := make(chan string, 16)
	fw.OnChange = func(path string, doc *Document) {
		select {
		case changes <- filepath.Base(path):
		default:
		}
	}
	fw.Start()
	defer fw.Stop()

	wait := func(want string) {
		t.Helper()
		for {
			select {
			case got := <-changes:
				if got == want {
					return
				}
			case <-time.After(5 * time.Second):
				t.Fatalf("no change reported for %s", want)
			}
		}
	}

	wait("a.org")
	writeFile(t, filepath.Join(dir, "b.org"), "* B\n")
	wait("b.org")
	require.NotNil(t, w.GetFile(filepath.Join(dir, "b.org")))
}
