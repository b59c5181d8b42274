package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/columnview/pkg/dag"
	"github.com/matzehuels/columnview/pkg/render/lines"
)

// =============================================================================
// View - Layered Graph Export
// =============================================================================

// View is the layered rendering of one graph.
//
// Names maps every node ID to its display name. Segments is empty until a
// host has measured the nodes.
type View struct {
	GraphID  int             `json:"graph_id"`
	Columns  [][]int         `json:"columns"`
	Names    map[int]string  `json:"names"`
	Segments []lines.Segment `json:"segments,omitempty"`
}

// NewView assembles a view from a graph index and its layering.
// The layering is copied.
func NewView(graphID int, idx *dag.Index, l dag.Layering, segments []lines.Segment) View {
	v := View{
		GraphID:  graphID,
		Columns:  [][]int(l.Clone()),
		Names:    make(map[int]string, idx.NodeCount()),
		Segments: segments,
	}
	if v.Columns == nil {
		v.Columns = [][]int{}
	}
	for _, n := range idx.Nodes() {
		v.Names[n.ID] = n.Name
	}
	return v
}

// Layering returns the view's columns as a layering.
func (v View) Layering() dag.Layering { return dag.Layering(v.Columns).Clone() }

// Name returns the display name of a node, or its ID when unnamed.
func (v View) Name(id int) string {
	if name := v.Names[id]; name != "" {
		return name
	}
	return fmt.Sprint(id)
}

// =============================================================================
// View Serialization API
// =============================================================================

// MarshalView serializes a View to pretty-printed JSON bytes.
func MarshalView(v View) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// UnmarshalView deserializes JSON bytes into a View.
func UnmarshalView(data []byte) (View, error) {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, fmt.Errorf("unmarshal view: %w", err)
	}
	if v.Columns == nil {
		v.Columns = [][]int{}
	}
	return v, nil
}

// WriteViewFile writes a View to a JSON file.
func WriteViewFile(v View, path string) error {
	data, err := MarshalView(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
