package pattern

import "github.com/matzehuels/stategraph/pkg/workflow"

// BeaconSearchNodes bundles the nodes created by BeaconSearch.
type BeaconSearchNodes struct {
	// Depth 0: main execution chain.
	Start         *workflow.Node
	Sequence      *workflow.Node
	DistanceCheck *workflow.Node
	TeleportMove  *workflow.Node

	// Depth 0 data chain.
	PlayerPos   *workflow.Node
	BeaconPoint *workflow.Node
	Operator    *workflow.Node
	Comparison  *workflow.Node

	// Depth 1: nested decision after arriving at the beacon.
	EnemyCheck  *workflow.Node
	EnemyMove   *workflow.Node
	PushNext    *workflow.Node
	EnemyFinder *workflow.Node
	EnemyOffset *workflow.Node
}

// BeaconSearchOptions parameterizes BeaconSearch.
type BeaconSearchOptions struct {
	// EnemyID is the entity scanned for once the player is at the beacon.
	EnemyID int
	// BeaconPosition is the beacon's world coordinate.
	BeaconPosition workflow.Position
	// NextState is pushed when no enemy remains at the beacon.
	NextState string
	// DistanceThreshold is the radius within which the player counts as
	// "at the beacon".
	DistanceThreshold float64
}

// BeaconSearch builds a two-level decision graph: the outer branch
// compares the player's distance to the beacon: too far teleports toward
// it (continuation, same depth); close enough descends into a nested
// branch scanning for the enemy. Enemy found moves toward it
// (continuation); enemy gone pushes NextState (terminal).
//
// There is no loop edge back to either check: the engine re-enters the
// state on its next evaluation tick.
func BeaconSearch(g *workflow.Graph, anchor workflow.Position, opts BeaconSearchOptions) (BeaconSearchNodes, error) {
	x, y := anchor.X, anchor.Y
	var n BeaconSearchNodes

	// Depth 0 execution chain.
	n.Start = g.AddStart(beaconStateName(opts.NextState), anchor)
	n.Sequence = g.AddSequence(workflow.Position{X: x - HSpace, Y: y})
	n.DistanceCheck = g.AddIf(workflow.Position{X: x - 2*HSpace, Y: y})
	n.TeleportMove = g.AddMoveTo(workflow.Position{X: x - 3*HSpace, Y: y}, true, false)

	// Depth 0 data chain, above the execution row.
	dataY := y + DataOffset
	n.PlayerPos = g.AddPlayerPos(workflow.Position{X: x - HSpace, Y: dataY})
	n.BeaconPoint = g.AddPointList([]workflow.Position{opts.BeaconPosition}, workflow.Position{X: x - 2*HSpace, Y: dataY}, false, 1.0)
	n.Operator = g.AddOperator(workflow.Position{X: x - 3*HSpace, Y: dataY}, 0, 0)
	n.Comparison = g.AddComparison(workflow.Position{X: x - 4*HSpace, Y: dataY}, 2, opts.DistanceThreshold)

	// Depth 1: nested decision.
	depth1Y := y + DepthSpace
	n.EnemyCheck = g.AddIf(workflow.Position{X: x - 2*HSpace, Y: depth1Y})
	n.EnemyMove = g.AddMoveTo(workflow.Position{X: x - 3*HSpace, Y: depth1Y}, false, false)
	n.PushNext = g.AddPush(opts.NextState, workflow.Position{X: x - 3*HSpace, Y: depth1Y + DepthSpace})

	// Depth 1 data, between the two depths.
	enemyDataY := y + DepthSpace/2
	n.EnemyFinder = g.AddEnemyList([]int{opts.EnemyID}, workflow.Position{X: x - 3*HSpace, Y: enemyDataY}, workflow.ScanOptions{})
	n.EnemyOffset = g.AddOffsetPos(workflow.Position{X: x - 4*HSpace, Y: enemyDataY + 50}, 2.5)

	l := linker{g: g}

	// Data links.
	l.link(n.PlayerPos, "Pos", n.Operator, "A")
	l.link(n.BeaconPoint, "Pos", n.Operator, "B")
	l.link(n.Operator, "Distance", n.Comparison, "A")
	l.link(n.Comparison, "Result", n.DistanceCheck, "Condition")
	l.link(n.BeaconPoint, "Pos", n.TeleportMove, "Position")
	l.link(n.EnemyFinder, "Exists", n.EnemyCheck, "Condition")
	l.link(n.EnemyFinder, "Pos", n.EnemyOffset, "Pos")
	l.link(n.EnemyOffset, "Result", n.EnemyMove, "Position")

	// Execution links.
	l.link(n.Start, "In", n.Sequence, "Out")
	l.link(n.Sequence, "In", n.DistanceCheck, "Out")
	l.link(n.DistanceCheck, "False", n.TeleportMove, "Out") // continuation
	l.link(n.DistanceCheck, "True", n.EnemyCheck, "Out")    // nested
	l.link(n.EnemyCheck, "True", n.EnemyMove, "Out")        // continuation
	l.link(n.EnemyCheck, "False", n.PushNext, "Out")        // terminal

	if l.err != nil {
		return BeaconSearchNodes{}, l.err
	}
	return n, nil
}
