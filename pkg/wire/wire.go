package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stategraph/pkg/workflow"
)

// Marshal serializes a workflow graph to wire-format JSON bytes.
// Nodes and links appear in creation order; output is deterministic.
func Marshal(g *workflow.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a workflow graph as wire-format JSON to w. The document
// is written in one pass; there is no streaming or partial output.
func Write(g *workflow.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a workflow graph to a wire-format JSON file.
// The file is created with 0644 permissions, overwriting any existing
// content.
func WriteFile(g *workflow.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a wire-format document from r and reconstructs the graph.
// The rebuilt graph is isomorphic to the serialized one: same kinds,
// configs, positions and link pin-id pairs. Links are re-validated through
// [workflow.Graph.LinkPins], so malformed documents (dangling pin ids,
// duplicate pairs, same-side links) are rejected.
func Read(r io.Reader) (*workflow.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(doc)
}

// ReadFile reads a wire-format JSON file and reconstructs the graph.
func ReadFile(path string) (*workflow.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// FromGraph converts a graph to its wire document.
func FromGraph(g *workflow.Graph) Document {
	nodes := g.Nodes()
	links := g.Links()

	doc := Document{
		Links:   make([]LinkRecord, len(links)),
		Nodes:   make([]NodeRecord, len(nodes)),
		Version: Version,
	}

	for i, l := range links {
		doc.Links[i] = LinkRecord{LeftPinID: l.LeftPinID, RightPinID: l.RightPinID}
	}
	for i, n := range nodes {
		doc.Nodes[i] = NodeRecord{
			Kind:     n.Kind,
			Position: n.Position,
			InPins:   pinRecords(n.InPins),
			OutPins:  pinRecords(n.OutPins),
			Config:   n.Config,
		}
	}
	return doc
}

// ToGraph rebuilds a workflow graph from a wire document. Node object
// identity does not survive the round trip, only observable structure.
func ToGraph(doc Document) (*workflow.Graph, error) {
	g := workflow.New()

	type pinRef struct {
		node *workflow.Node
		name string
	}
	byID := make(map[int]pinRef)

	for _, rec := range doc.Nodes {
		n := g.RestoreNode(rec.Kind, rec.Position, pins(rec.InPins), pins(rec.OutPins), rec.Config)
		for _, p := range rec.InPins {
			byID[p.ID] = pinRef{node: n, name: p.Name}
		}
		for _, p := range rec.OutPins {
			byID[p.ID] = pinRef{node: n, name: p.Name}
		}
	}

	for _, l := range doc.Links {
		left, ok := byID[l.LeftPinID]
		if !ok {
			return nil, fmt.Errorf("link %d -> %d: unknown left pin", l.LeftPinID, l.RightPinID)
		}
		right, ok := byID[l.RightPinID]
		if !ok {
			return nil, fmt.Errorf("link %d -> %d: unknown right pin", l.LeftPinID, l.RightPinID)
		}
		if err := g.LinkPins(left.node, left.name, right.node, right.name); err != nil {
			return nil, fmt.Errorf("link %d -> %d: %w", l.LeftPinID, l.RightPinID, err)
		}
	}

	return g, nil
}

func pinRecords(pins []workflow.Pin) []PinRecord {
	if len(pins) == 0 {
		return nil
	}
	recs := make([]PinRecord, len(pins))
	for i, p := range pins {
		recs[i] = PinRecord{ID: p.ID, Name: p.Name}
	}
	return recs
}

func pins(recs []PinRecord) []workflow.Pin {
	if len(recs) == 0 {
		return nil
	}
	out := make([]workflow.Pin, len(recs))
	for i, r := range recs {
		out[i] = workflow.Pin{ID: r.ID, Name: r.Name}
	}
	return out
}
