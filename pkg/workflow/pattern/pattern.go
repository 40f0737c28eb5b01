// Package pattern assembles reusable, pre-wired subgraphs on top of
// workflow graph primitives.
//
// Each pattern creates a small fixed set of nodes near a caller-supplied
// anchor coordinate, wires them internally, and returns its constituent
// nodes by logical role so the caller can extend the subgraph with further
// links.
//
// # Layout
//
// Positions are cosmetic (the engine never reads them) but follow a fixed
// convention so generated workflows open cleanly in the editor: the
// primary execution chain advances right to left (decreasing X, HSpace
// apart); each nested decision depth moves down by DepthSpace; pure data
// producers sit DataOffset above the execution row that consumes them.
//
// No pattern ever emits a cyclic back-edge. Retry and looping semantics
// belong to the engine, which re-enters a subgraph on re-evaluation; an
// earlier looped design was deliberately abandoned.
package pattern

import (
	"strings"

	"github.com/matzehuels/stategraph/pkg/workflow"
)

// Layout spacing, in editor units.
const (
	// HSpace separates consecutive nodes on an execution chain.
	HSpace = 200.0
	// DepthSpace separates nested decision depths vertically.
	DepthSpace = 200.0
	// DataOffset lifts data-producing nodes above their consumers.
	DataOffset = -150.0
)

// linker chains LinkPins calls, keeping the first error. Pattern bodies
// wire many links in sequence; the accumulated error is checked once at
// the end.
type linker struct {
	g   *workflow.Graph
	err error
}

func (l *linker) link(a *workflow.Node, pinA string, b *workflow.Node, pinB string) {
	if l.err != nil {
		return
	}
	l.err = l.g.LinkPins(a, pinA, b, pinB)
}

// FindTargetNodes bundles the nodes created by FindTarget.
type FindTargetNodes struct {
	// Finder is the entity scan producing Pos, Exists and ID outputs.
	Finder *workflow.Node
	// Check is the conditional branch on the scan's Exists output.
	Check *workflow.Node
}

// FindTarget creates an entity scan over ids feeding a conditional branch
// on the target's existence. The caller wires the Check node's True/False
// inputs onward.
func FindTarget(g *workflow.Graph, ids []int, anchor workflow.Position, opts workflow.ScanOptions) (FindTargetNodes, error) {
	finder := g.AddEnemyList(ids, anchor, opts)
	check := g.AddIf(workflow.Position{X: anchor.X - HSpace, Y: anchor.Y})

	if err := g.LinkPins(finder, "Exists", check, "Condition"); err != nil {
		return FindTargetNodes{}, err
	}
	return FindTargetNodes{Finder: finder, Check: check}, nil
}

// MoveToTargetNodes bundles the nodes created by MoveToTarget.
type MoveToTargetNodes struct {
	// Offset is the standoff node between the data source and the move,
	// nil unless an offset distance was requested.
	Offset *workflow.Node
	// Move is the movement node.
	Move *workflow.Node
}

// MoveOptions tunes MoveToTarget.
type MoveOptions struct {
	// Teleport makes the movement node teleport instead of walking.
	Teleport bool
	// OffsetDistance, when non-nil, inserts an OffsetPos node so the
	// movement stops short of the target by the given distance. The
	// caller feeds the target position into the offset node's Pos input.
	OffsetDistance *float64
}

// OffsetDist is a convenience for MoveOptions.OffsetDistance literals.
func OffsetDist(v float64) *float64 { return &v }

// MoveToTarget creates a movement node, optionally preceded by a
// position-offset node wired into its Position input.
func MoveToTarget(g *workflow.Graph, anchor workflow.Position, opts MoveOptions) (MoveToTargetNodes, error) {
	if opts.OffsetDistance == nil {
		move := g.AddMoveTo(anchor, opts.Teleport, false)
		return MoveToTargetNodes{Move: move}, nil
	}

	offset := g.AddOffsetPos(anchor, *opts.OffsetDistance)
	move := g.AddMoveTo(workflow.Position{X: anchor.X - HSpace, Y: anchor.Y}, opts.Teleport, false)
	if err := g.LinkPins(offset, "Result", move, "Position"); err != nil {
		return MoveToTargetNodes{}, err
	}
	return MoveToTargetNodes{Offset: offset, Move: move}, nil
}

// PortalEntryNodes bundles the nodes created by PortalEntry.
type PortalEntryNodes struct {
	Portal *workflow.Node
}

// PortalEntry creates a single enter-portal node. The caller wires its In
// trigger and Portal ID input.
func PortalEntry(g *workflow.Graph, anchor workflow.Position) PortalEntryNodes {
	return PortalEntryNodes{Portal: g.AddEnterPortal(anchor)}
}

// DistanceCheckNodes bundles the nodes created by DistanceCheck.
type DistanceCheckNodes struct {
	Player     *workflow.Node
	Target     *workflow.Node
	Operator   *workflow.Node
	Comparison *workflow.Node
	// Check branches on whether the player is within the threshold.
	Check *workflow.Node
}

// DistanceCheck creates a branch on the player's distance to a target
// point. The data chain (player position, target point, distance operator,
// comparison) sits above the execution row.
func DistanceCheck(g *workflow.Graph, target workflow.Position, anchor workflow.Position, threshold float64) (DistanceCheckNodes, error) {
	dataY := anchor.Y + DataOffset

	player := g.AddPlayerPos(workflow.Position{X: anchor.X + HSpace, Y: dataY})
	point := g.AddPointList([]workflow.Position{target}, workflow.Position{X: anchor.X, Y: dataY}, false, 1.0)
	operator := g.AddOperator(workflow.Position{X: anchor.X - HSpace, Y: dataY}, 0, 0)
	comparison := g.AddComparison(workflow.Position{X: anchor.X - 2*HSpace, Y: dataY}, 2, threshold)
	check := g.AddIf(anchor)

	l := linker{g: g}
	l.link(player, "Pos", operator, "A")
	l.link(point, "Pos", operator, "B")
	l.link(operator, "Distance", comparison, "A")
	l.link(comparison, "Result", check, "Condition")
	if l.err != nil {
		return DistanceCheckNodes{}, l.err
	}

	return DistanceCheckNodes{
		Player:     player,
		Target:     point,
		Operator:   operator,
		Comparison: comparison,
		Check:      check,
	}, nil
}

// PatrolNodes bundles the nodes created by Patrol.
type PatrolNodes struct {
	// Points cycles through the patrol waypoints.
	Points *workflow.Node
	// Move walks toward the current waypoint.
	Move *workflow.Node
}

// Patrol creates a waypoint list feeding a movement node. The engine
// advances to the next waypoint when the player comes within
// switchDistance of the current one.
func Patrol(g *workflow.Graph, waypoints []workflow.Position, anchor workflow.Position, switchDistance float64) (PatrolNodes, error) {
	points := g.AddPointList(waypoints, anchor, false, switchDistance)
	move := g.AddMoveTo(workflow.Position{X: anchor.X - HSpace, Y: anchor.Y}, false, false)

	if err := g.LinkPins(points, "Pos", move, "Position"); err != nil {
		return PatrolNodes{}, err
	}
	return PatrolNodes{Points: points, Move: move}, nil
}

// beaconStateName derives the beacon phase's state name from the state it
// hands off to.
func beaconStateName(nextState string) string {
	return strings.Replace(nextState, "_clear", "_beacon", 1)
}
