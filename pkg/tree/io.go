package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bigpicture/pkg/errors"
)

// Marshal converts a tree to indented JSON bytes.
func Marshal(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(n, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a tree as JSON to w.
func Write(n *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a tree to a JSON file.
func WriteFile(n *Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(n, f)
}

// Read decodes a JSON tree from r and validates it.
func Read(r io.Reader) (*Node, error) {
	var n Node
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode tree")
	}
	if err := Validate(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ReadTOML decodes a TOML tree from r and validates it. Children are
// written as arrays of tables:
//
//	name = "SuperApp"
//	type = "project"
//
//	[[children]]
//	name = "auth.py"
//	type = "module"
func ReadTOML(r io.Reader) (*Node, error) {
	var n Node
	if _, err := toml.NewDecoder(r).Decode(&n); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml tree")
	}
	if err := Validate(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ReadFile reads a tree file. Files ending in .toml are decoded as TOML,
// everything else as JSON.
func ReadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ReadTOML(f)
	}
	return Read(f)
}
