package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the root command with a private home directory so that no
// user configuration leaks into the test.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     *Config
		wantErr  bool
		explicit bool
	}{
		{
			name:    "all fields",
			content: "format: yaml\nworkers: 4\nmax_depth: 64\nverbosity: 2\n",
			want:    &Config{Format: "yaml", Workers: 4, MaxDepth: 64, Verbosity: 2},
		},
		{
			name:    "partial keeps defaults",
			content: "workers: 2\n",
			want:    &Config{Format: "json", Workers: 2},
		},
		{
			name:    "negative workers",
			content: "workers: -1\n",
			wantErr: true,
		},
		{
			name:    "not yaml",
			content: "format: [json\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "config.yaml", tt.content)
			cfg, err := LoadConfig(path, true)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadConfig(missing, false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = LoadConfig(missing, true)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestParserOptions(t *testing.T) {
	assert.Empty(t, (&Config{}).ParserOptions())
	assert.Len(t, (&Config{Workers: 2, MaxDepth: 8}).ParserOptions(), 2)
}

func TestFmtCmd(t *testing.T) {
	out, err := run(t, "*   TODO   Task\n|a|bb|\n", "fmt")
	require.NoError(t, err)
	assert.Equal(t, "* TODO Task\n| a | bb |\n", out)

	path := writeTemp(t, "notes.org", "*   A\n")
	out, err = run(t, "", "fmt", "-w", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "* A\n", string(data))

	_, err = run(t, "", "fmt", writeTemp(t, "notes.txt", "* A\n"))
	assert.Error(t, err)

	_, err = run(t, "* A\n", "fmt", "-w")
	assert.Error(t, err)
}

func TestCheckCmd(t *testing.T) {
	good := writeTemp(t, "good.org", "#+TITLE: t\n* A :x:\n| a | b |\n- [X] item\n")
	out, err := run(t, "", "check", good)
	require.NoError(t, err)
	assert.Equal(t, "ok   "+good+"\n", out)

	bad := writeTemp(t, "bad.org", "* A\n\xff\n")
	out, err = run(t, "", "check", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "bad.org")

	out, err = run(t, "", "check", "-q", good)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseCmd(t *testing.T) {
	path := writeTemp(t, "a.org", "* Top\n")

	out, err := run(t, "", "parse", "-f", "tree", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Document\t1:1\t"), out)

	_, err = run(t, "", "parse", "-f", "xml", path)
	assert.Error(t, err)

	_, err = run(t, "", "parse", "--max-depth", "1", writeTemp(t, "deep.org", "- a\n  - b\n    - c\n"))
	assert.Error(t, err)
}

func TestParseCmdUsesConfigFormat(t *testing.T) {
	path := writeTemp(t, "a.org", "* Top\n")
	config := writeTemp(t, "config.yaml", "format: yaml\n")

	out, err := run(t, "", "--config", config, "parse", path)
	require.NoError(t, err)
	var root map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &root))
	assert.Equal(t, "Document", root["kind"])

	out, err = run(t, "", "--config", config, "parse", "-f", "org", path)
	require.NoError(t, err)
	assert.Equal(t, "* Top\n", out)
}

func TestOutlineCmd(t *testing.T) {
	path := writeTemp(t, "a.org", "* TODO A\n** B\n")
	out, err := run(t, "", "outline", "--color", "never", path)
	require.NoError(t, err)
	assert.Equal(t, "TODO A\n  B\n", out)

	_, err = run(t, "", "outline", "--color", "sometimes", path)
	assert.Error(t, err)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	styled, err := useColor("auto", &buf)
	require.NoError(t, err)
	assert.False(t, styled)

	styled, err = useColor("always", &buf)
	require.NoError(t, err)
	assert.True(t, styled)
}
