package pattern

import "github.com/matzehuels/stategraph/pkg/workflow"

// ClearMobsNodes bundles the nodes created by ClearMobs. The portal
// fields are nil when no exit portal was configured.
type ClearMobsNodes struct {
	Start        *workflow.Node
	PatrolMove   *workflow.Node
	PatrolPoints *workflow.Node

	PortalCheck  *workflow.Node
	PortalFinder *workflow.Node
	PortalMove   *workflow.Node
	PortalEnter  *workflow.Node

	EnemyCheck     *workflow.Node
	EnemyFinder    *workflow.Node
	EnemyOffset    *workflow.Node
	EnemyMove      *workflow.Node
	PatrolFallback *workflow.Node
}

// ClearMobsOptions parameterizes ClearMobs.
type ClearMobsOptions struct {
	// StateName names the state this subgraph implements. Empty defaults
	// to "clear_mobs".
	StateName string
	// EnemyIDs are the entities to hunt while patrolling.
	EnemyIDs []int
	// PortalID, when non-zero, adds a terminal hand-off through the exit
	// portal once it appears.
	PortalID int
	// Waypoints is the patrol route.
	Waypoints []workflow.Position
	// OffsetDistance is the standoff kept from an engaged enemy.
	OffsetDistance float64
}

// ClearMobs builds a patrol loop body: patrol the waypoints, check for an
// optional exit portal (terminal if present), then scan for enemies:
// found moves in with a standoff offset (continuation), none resumes the
// patrol (continuation). No back-edges; the engine re-enters the state to
// repeat the cycle.
func ClearMobs(g *workflow.Graph, anchor workflow.Position, opts ClearMobsOptions) (ClearMobsNodes, error) {
	x, y := anchor.X, anchor.Y
	var n ClearMobsNodes
	hasPortal := opts.PortalID != 0
	if opts.StateName == "" {
		opts.StateName = "clear_mobs"
	}

	// Depth 0: patrol chain.
	n.Start = g.AddStart(opts.StateName, anchor)
	n.PatrolMove = g.AddMoveTo(workflow.Position{X: x - HSpace, Y: y}, false, false)
	n.PatrolPoints = g.AddPointList(opts.Waypoints, workflow.Position{X: x - HSpace, Y: y + DataOffset}, false, 2.0)

	l := linker{g: g}
	l.link(n.PatrolPoints, "Pos", n.PatrolMove, "Position")

	if hasPortal {
		n.PortalCheck = g.AddIf(workflow.Position{X: x - 2*HSpace, Y: y})
		n.PortalFinder = g.AddEnemyList([]int{opts.PortalID}, workflow.Position{X: x - 2*HSpace, Y: y + DataOffset}, workflow.ScanOptions{ObjectType: 1})
		n.PortalMove = g.AddMoveTo(workflow.Position{X: x - 3*HSpace, Y: y}, false, false)
		n.PortalEnter = g.AddEnterPortal(workflow.Position{X: x - 4*HSpace, Y: y})

		l.link(n.PortalFinder, "Exists", n.PortalCheck, "Condition")
		l.link(n.PortalFinder, "Pos", n.PortalMove, "Position")
		l.link(n.PortalFinder, "ID", n.PortalEnter, "Portal ID")
		l.link(n.PortalCheck, "True", n.PortalMove, "Out")
		l.link(n.PortalMove, "In", n.PortalEnter, "Out")
	}

	// Depth 1: enemy decision.
	enemyDepthY := y + DepthSpace
	enemyDataY := y + DepthSpace/2

	n.EnemyCheck = g.AddIf(workflow.Position{X: x - 2*HSpace, Y: enemyDepthY})
	n.EnemyFinder = g.AddEnemyList(opts.EnemyIDs, workflow.Position{X: x - 2*HSpace, Y: enemyDataY}, workflow.ScanOptions{})
	n.EnemyOffset = g.AddOffsetPos(workflow.Position{X: x - 3*HSpace, Y: enemyDepthY}, opts.OffsetDistance)
	n.EnemyMove = g.AddMoveTo(workflow.Position{X: x - 4*HSpace, Y: enemyDepthY}, false, false)
	n.PatrolFallback = g.AddMoveTo(workflow.Position{X: x - 3*HSpace, Y: enemyDepthY + DepthSpace}, false, false)

	l.link(n.EnemyFinder, "Exists", n.EnemyCheck, "Condition")
	l.link(n.EnemyFinder, "Pos", n.EnemyOffset, "Pos")
	l.link(n.EnemyOffset, "Result", n.EnemyMove, "Position")
	l.link(n.PatrolPoints, "Pos", n.PatrolFallback, "Position")

	// Execution chain.
	l.link(n.Start, "In", n.PatrolMove, "Out")
	if hasPortal {
		l.link(n.PatrolMove, "In", n.PortalCheck, "Out")
		l.link(n.PortalCheck, "False", n.EnemyCheck, "Out") // nested
	} else {
		l.link(n.PatrolMove, "In", n.EnemyCheck, "Out") // nested
	}
	l.link(n.EnemyCheck, "True", n.EnemyMove, "Out")        // continuation
	l.link(n.EnemyCheck, "False", n.PatrolFallback, "Out")  // continuation

	if l.err != nil {
		return ClearMobsNodes{}, l.err
	}
	return n, nil
}
