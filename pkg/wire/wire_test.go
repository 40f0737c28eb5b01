package wire

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stategraph/pkg/workflow"
)

// buildSample creates a small graph exercising configs, data links and
// execution links.
func buildSample(t *testing.T) *workflow.Graph {
	t.Helper()
	g := workflow.New()
	start := g.AddStart("farm", workflow.Position{X: 0, Y: 0})
	finder := g.AddEnemyList([]int{2401, 2402}, workflow.Position{X: 200, Y: -150}, workflow.ScanOptions{ObjectType: 1})
	check := g.AddIf(workflow.Position{X: 200, Y: 0})
	move := g.AddMoveTo(workflow.Position{X: 400, Y: 0}, false, false)

	for _, l := range []struct {
		a  *workflow.Node
		pa string
		b  *workflow.Node
		pb string
	}{
		{finder, "Exists", check, "Condition"},
		{finder, "Pos", move, "Position"},
		{check, "True", move, "Out"},
		{start, "In", check, "Out"},
	} {
		if err := g.LinkPins(l.a, l.pa, l.b, l.pb); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestMarshalDeterministic(t *testing.T) {
	g := buildSample(t)

	first, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	second, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated Marshal() of the same graph differs")
	}
}

func TestMarshalShape(t *testing.T) {
	g := buildSample(t)
	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var doc struct {
		Links   []map[string]int             `json:"links"`
		Nodes   []map[string]json.RawMessage `json:"nodes"`
		Version string                       `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.Version != Version {
		t.Errorf("version = %q, want %q", doc.Version, Version)
	}
	if len(doc.Nodes) != 4 || len(doc.Links) != 4 {
		t.Fatalf("got %d nodes, %d links; want 4 and 4", len(doc.Nodes), len(doc.Links))
	}

	// Config fields flatten alongside the reserved keys.
	var kind string
	if err := json.Unmarshal(doc.Nodes[0]["kind"], &kind); err != nil || kind != "Start" {
		t.Fatalf("first node kind = %q (%v)", kind, err)
	}
	if _, ok := doc.Nodes[0]["nodeName"]; !ok {
		t.Error("Start config field nodeName missing from flat node object")
	}
	if _, ok := doc.Nodes[0]["config"]; ok {
		t.Error("config must not serialize as a nested object")
	}

	// A Start node has no outputs; empty pin arrays are omitted entirely.
	if _, ok := doc.Nodes[0]["outPins"]; ok {
		t.Error("empty outPins should be omitted")
	}

	for _, l := range doc.Links {
		if l["leftPinId"] == 0 || l["rightPinId"] == 0 {
			t.Errorf("link record missing pin ids: %v", l)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	g := buildSample(t)
	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.NodeCount() != g.NodeCount() || got.LinkCount() != g.LinkCount() {
		t.Fatalf("round trip counts = %d nodes, %d links; want %d, %d",
			got.NodeCount(), got.LinkCount(), g.NodeCount(), g.LinkCount())
	}

	want := g.Nodes()
	for i, n := range got.Nodes() {
		if n.Kind != want[i].Kind {
			t.Errorf("node %d kind = %s, want %s", i, n.Kind, want[i].Kind)
		}
		if n.Position != want[i].Position {
			t.Errorf("node %d position = %v, want %v", i, n.Position, want[i].Position)
		}
		for j, p := range n.InPins {
			if p != want[i].InPins[j] {
				t.Errorf("node %d input pin %d = %+v, want %+v", i, j, p, want[i].InPins[j])
			}
		}
	}

	// Typed configs survive.
	cfg, ok := got.Nodes()[1].Config.(*workflow.EnemyListConfig)
	if !ok {
		t.Fatalf("scan config type = %T", got.Nodes()[1].Config)
	}
	if cfg.ObjectType != 1 || len(cfg.EnemyIDs) != 2 {
		t.Errorf("scan config = %+v", cfg)
	}

	// Link pairs are preserved exactly.
	wantLinks := g.Links()
	for i, l := range got.Links() {
		if l != wantLinks[i] {
			t.Errorf("link %d = %+v, want %+v", i, l, wantLinks[i])
		}
	}

	// Serializing the rebuilt graph reproduces the document byte for byte.
	again, err := Marshal(got)
	if err != nil {
		t.Fatalf("Marshal(round-tripped) error = %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("document changed across a round trip")
	}
}

func TestReadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantSub string
	}{
		{
			name:    "not json",
			doc:     "{",
			wantSub: "decode",
		},
		{
			name:    "dangling left pin",
			doc:     `{"links":[{"leftPinId":99,"rightPinId":50001}],"nodes":[{"kind":"Start","position":{"x":0,"y":0},"inPins":[{"id":50001,"name":"In"}],"nodeName":"s"}],"version":"1.0"}`,
			wantSub: "unknown left pin",
		},
		{
			name:    "dangling right pin",
			doc:     `{"links":[{"leftPinId":50002,"rightPinId":99}],"nodes":[{"kind":"Wait","position":{"x":0,"y":0},"inPins":[{"id":50001,"name":"In"}],"outPins":[{"id":50002,"name":"Out"}],"waitTime":5}],"version":"1.0"}`,
			wantSub: "unknown right pin",
		},
		{
			name: "same side link",
			doc: `{"links":[{"leftPinId":50002,"rightPinId":50004}],"nodes":[` +
				`{"kind":"Wait","position":{"x":0,"y":0},"inPins":[{"id":50001,"name":"In"}],"outPins":[{"id":50002,"name":"Out"}],"waitTime":5},` +
				`{"kind":"Wait","position":{"x":0,"y":0},"inPins":[{"id":50003,"name":"In"}],"outPins":[{"id":50004,"name":"Out"}],"waitTime":5}],"version":"1.0"}`,
			wantSub: "same array side",
		},
		{
			name: "duplicate link",
			doc: `{"links":[{"leftPinId":50002,"rightPinId":50003},{"leftPinId":50002,"rightPinId":50003}],"nodes":[` +
				`{"kind":"Wait","position":{"x":0,"y":0},"inPins":[{"id":50001,"name":"In"}],"outPins":[{"id":50002,"name":"Out"}],"waitTime":5},` +
				`{"kind":"Wait","position":{"x":0,"y":0},"inPins":[{"id":50003,"name":"In"}],"outPins":[{"id":50004,"name":"Out"}],"waitTime":5}],"version":"1.0"}`,
			wantSub: "duplicate link",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Read() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Read() error = %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestReadUnknownKind(t *testing.T) {
	// Unknown kinds decode structurally with a nil config; extra fields
	// are dropped rather than rejected.
	doc := `{"links":[],"nodes":[{"kind":"FutureNode","position":{"x":1,"y":2},"inPins":[{"id":50001,"name":"In"}],"mystery":42}],"version":"1.0"}`

	g, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	n := g.Nodes()[0]
	if n.Kind != workflow.Kind("FutureNode") {
		t.Errorf("kind = %s", n.Kind)
	}
	if n.Config != nil {
		t.Errorf("config = %+v, want nil", n.Config)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	g := buildSample(t)
	path := filepath.Join(t.TempDir(), "farm.json")

	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got.NodeCount() != g.NodeCount() || got.LinkCount() != g.LinkCount() {
		t.Errorf("file round trip counts = %d nodes, %d links", got.NodeCount(), got.LinkCount())
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadFile() on a missing file should fail")
	}
}
