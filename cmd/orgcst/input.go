package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"

	"github.com/dhamidi/orgcst/org/parser"
)

func readFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// writeFile replaces name atomically, keeping its permissions.
func writeFile(name string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		perm = info.Mode().Perm()
	}
	if err := renameio.WriteFile(name, data, perm); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// readInputs loads the named files for ParseMany.
func readInputs(files []string) ([]parser.Input, error) {
	inputs := make([]parser.Input, 0, len(files))
	for _, name := range files {
		data, err := readFile(name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, parser.Input{Name: name, Src: data})
	}
	return inputs, nil
}

func parseFiles(ctx context.Context, cfg *Config, files []string) ([]parser.Result, error) {
	inputs, err := readInputs(files)
	if err != nil {
		return nil, err
	}
	return parser.ParseMany(ctx, inputs, cfg.ParserOptions()...)
}

func parseFile(cfg *Config, name string, data []byte) (*parser.Tree, error) {
	opts := append(cfg.ParserOptions(), parser.WithFile(filepath.Base(name)))
	return parser.Parse(data, opts...)
}
