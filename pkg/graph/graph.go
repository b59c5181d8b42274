package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for graph files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported graph file format")

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a Graph to path. The extension selects JSON or YAML.
func WriteGraphFile(g Graph, path string) error {
	var (
		data []byte
		err  error
	)
	switch formatOf(path) {
	case "json":
		data, err = MarshalGraph(g)
	case "yaml":
		data, err = yaml.Marshal(normalize(g))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// ReadGraphFile reads a graph from a .json, .yaml or .yml file.
// The graph is decoded but not validated; use [ToIndex] for that.
func ReadGraphFile(path string) (Graph, error) {
	format := formatOf(path)
	if format == "" {
		return Graph{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, fmt.Errorf("read %s: %w", path, err)
	}

	var g Graph
	switch format {
	case "json":
		err = json.Unmarshal(data, &g)
	case "yaml":
		err = yaml.Unmarshal(data, &g)
	}
	if err != nil {
		return Graph{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return g, nil
}

// IsGraphFile reports whether path has an extension ReadGraphFile accepts.
func IsGraphFile(path string) bool { return formatOf(path) != "" }

// =============================================================================
// Internal Implementation
// =============================================================================

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// normalize replaces nil slices so empty graphs encode as [] rather than null.
func normalize(g Graph) Graph {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	return g
}
