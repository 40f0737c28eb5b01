package workflow

import (
	"errors"
	"fmt"
	"slices"
)

// baseID is the first pin identifier offset. IDs issued by a graph start
// above it so generated documents never collide with the id ranges the
// engine reserves for hand-built workflows.
const baseID = 50000

var (
	// ErrPinNotFound is returned by [Graph.LinkPins] when a named pin is
	// absent from both of a node's pin arrays.
	ErrPinNotFound = errors.New("pin not found")

	// ErrTypeMismatch is returned by [Graph.LinkPins] when the two resolved
	// pins declare different pin types. No coercion is ever performed.
	ErrTypeMismatch = errors.New("pin type mismatch")

	// ErrInvalidLinkShape is returned by [Graph.LinkPins] when both resolved
	// pins come from output arrays or both from input arrays. A link always
	// joins exactly one output-array pin to one input-array pin.
	ErrInvalidLinkShape = errors.New("both pins on same array side")

	// ErrDuplicateLink is returned by [Graph.LinkPins] when an identical
	// (left, right) pin-id pair already exists. Only the exact ordered pair
	// is checked; the reversed pair may coexist.
	ErrDuplicateLink = errors.New("duplicate link")

	// ErrGraphHasCycle is returned by [Graph.Validate] when the node-level
	// link graph contains a directed cycle. Patterns never produce cycles;
	// retry semantics belong to the engine, not to back-edges.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Link is a directed edge between two pins, recorded as the ordered
// (left, right) pin-id pair the wire format expects: LeftPinID always
// resolves to an output-array pin and RightPinID to an input-array pin.
type Link struct {
	LeftPinID  int
	RightPinID int
}

// Graph owns all nodes and links of one workflow. Nodes are created
// through the factory methods (AddStart, AddIf, AddMoveTo, ...) and wired
// with LinkPins. Both sequences are append-only; a graph is built once,
// serialized, and discarded.
//
// The pin-id allocator is scoped to the graph instance, so independent
// graphs never need coordination. A single Graph must not be mutated from
// multiple goroutines.
type Graph struct {
	nodes  []*Node
	links  []Link
	lastID int
}

// New creates an empty workflow graph.
func New() *Graph {
	return &Graph{lastID: baseID}
}

// allocateID issues the next pin identifier, strictly greater than every
// id issued before it on this graph.
func (g *Graph) allocateID() int {
	g.lastID++
	return g.lastID
}

// addNode instantiates the kind's pin template with fresh ids and appends
// the node. All factories funnel through here.
func (g *Graph) addNode(kind Kind, pos Position, cfg Config) *Node {
	spec := kinds[kind]
	n := &Node{Kind: kind, Position: pos, Config: cfg}
	for _, d := range spec.inPins {
		n.InPins = append(n.InPins, Pin{ID: g.allocateID(), Name: d.name, Type: d.typ})
	}
	for _, d := range spec.outPins {
		n.OutPins = append(n.OutPins, Pin{ID: g.allocateID(), Name: d.name, Type: d.typ})
	}
	g.nodes = append(g.nodes, n)
	return n
}

// RestoreNode re-registers a node decoded from the wire format, keeping
// its original pin ids. Pin types are recovered from the kind template;
// names without a template entry default to Execution. The allocator is
// advanced past every restored id so later factory calls cannot collide.
//
// This exists for the wire reader; use the per-kind factories for
// construction.
func (g *Graph) RestoreNode(kind Kind, pos Position, inPins, outPins []Pin, cfg Config) *Node {
	n := &Node{Kind: kind, Position: pos, Config: cfg}
	for _, p := range inPins {
		p.Type = pinTypeFor(kind, p.Name, sideInput)
		n.InPins = append(n.InPins, p)
		g.lastID = max(g.lastID, p.ID)
	}
	for _, p := range outPins {
		p.Type = pinTypeFor(kind, p.Name, sideOutput)
		n.OutPins = append(n.OutPins, p)
		g.lastID = max(g.lastID, p.ID)
	}
	g.nodes = append(g.nodes, n)
	return n
}

// LinkPins joins a pin of node a to a pin of node b. Each name is resolved
// against its node's output array first, then its input array. The
// resolved pins must share a pin type, and exactly one of them must come
// from an output array: that pin becomes the link's left id and the
// input-array pin its right id, regardless of which argument supplied
// which. The caller's argument order therefore carries no meaning beyond
// naming.
//
// Returns ErrPinNotFound, ErrTypeMismatch, ErrInvalidLinkShape or
// ErrDuplicateLink. On failure nothing is appended; on success exactly one
// link is appended and no node is mutated.
func (g *Graph) LinkPins(a *Node, pinA string, b *Node, pinB string) error {
	pa, sideA, ok := findPin(a, pinA)
	if !ok {
		return fmt.Errorf("%w: %q on %s node", ErrPinNotFound, pinA, a.Kind)
	}
	pb, sideB, ok := findPin(b, pinB)
	if !ok {
		return fmt.Errorf("%w: %q on %s node", ErrPinNotFound, pinB, b.Kind)
	}

	if pa.Type != pb.Type {
		return fmt.Errorf("%w: %s.%s is %s, %s.%s is %s",
			ErrTypeMismatch, a.Kind, pa.Name, pa.Type, b.Kind, pb.Name, pb.Type)
	}

	if sideA == sideB {
		return fmt.Errorf("%w: %s.%s and %s.%s", ErrInvalidLinkShape, a.Kind, pa.Name, b.Kind, pb.Name)
	}

	// The output-array pin always serializes as the left id, the
	// input-array pin as the right id.
	link := Link{LeftPinID: pa.ID, RightPinID: pb.ID}
	if sideA == sideInput {
		link = Link{LeftPinID: pb.ID, RightPinID: pa.ID}
	}

	if slices.Contains(g.links, link) {
		return fmt.Errorf("%w: %d -> %d", ErrDuplicateLink, link.LeftPinID, link.RightPinID)
	}

	g.links = append(g.links, link)
	return nil
}

// Nodes returns all nodes in creation order. The slice is a copy but the
// node pointers refer to the graph's own nodes.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Links returns a copy of all links in creation order.
func (g *Graph) Links() []Link { return slices.Clone(g.links) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links in the graph.
func (g *Graph) LinkCount() int { return len(g.links) }

// NodeOfPin returns the node owning the pin with the given id, or nil if
// no such pin exists in the graph.
func (g *Graph) NodeOfPin(id int) *Node {
	for _, n := range g.nodes {
		for i := range n.InPins {
			if n.InPins[i].ID == id {
				return n
			}
		}
		for i := range n.OutPins {
			if n.OutPins[i].ID == id {
				return n
			}
		}
	}
	return nil
}

// Validate checks that the node-level link graph is acyclic, treating
// each link as an edge from the node owning its left pin to the node
// owning its right pin. Returns ErrGraphHasCycle if a directed cycle
// exists, nil otherwise.
//
// Construction never enforces acyclicity; patterns are designed not to
// produce cycles and this check lets callers verify that before handing a
// document to the engine.
func (g *Graph) Validate() error {
	index := make(map[*Node]int, len(g.nodes))
	for i, n := range g.nodes {
		index[n] = i
	}
	adj := make([][]int, len(g.nodes))
	for _, l := range g.links {
		from := g.NodeOfPin(l.LeftPinID)
		to := g.NodeOfPin(l.RightPinID)
		if from == nil || to == nil {
			continue
		}
		adj[index[from]] = append(adj[index[from]], index[to])
	}

	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(g.nodes))
	var hasCycle bool

	var dfs func(i int)
	dfs = func(i int) {
		color[i] = gray
		for _, next := range adj[i] {
			switch color[next] {
			case white:
				dfs(next)
			case gray:
				hasCycle = true
				return
			}
		}
		color[i] = black
	}

	for i := range g.nodes {
		if color[i] == white {
			dfs(i)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
