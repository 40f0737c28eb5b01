package pattern

import "github.com/matzehuels/stategraph/pkg/workflow"

// Nexus defaults shared by generators and the leave pattern.
const (
	// DefaultRealmPortalID is the realm portal entity in the hub
	// (scanned as a static object).
	DefaultRealmPortalID = 1810
	// DefaultNexusWaitMillis is the settle delay after the hub map loads.
	DefaultNexusWaitMillis = 500
)

// DefaultNexusSpawn is the hub spawn/portal area.
var DefaultNexusSpawn = workflow.Position{X: 127.0, Y: 170.0}

// NexusLeaveNodes bundles the nodes created by NexusLeave.
type NexusLeaveNodes struct {
	MapChange      *workflow.Node
	Wait           *workflow.Node
	SpawnPoint     *workflow.Node
	MoveToSpawn    *workflow.Node
	PortalDetector *workflow.Node
	IfPortal       *workflow.Node
	MoveToPortal   *workflow.Node
	EnterPortal    *workflow.Node
}

// NexusLeaveOptions parameterizes NexusLeave. Zero values fall back to the
// package defaults.
type NexusLeaveOptions struct {
	// SpawnPoint is where the player appears after the hub map loads.
	SpawnPoint workflow.Position
	// PortalID is the realm portal entity to scan for.
	PortalID int
	// WaitMillis is the settle delay after the map change.
	WaitMillis int
}

// NexusLeave builds the hub-exit chain: a map-change trigger for the hub,
// a settle delay, a move to the spawn area, then a branch on the realm
// portal's existence: present moves to it and enters. Absent simply ends
// the chain; the engine retries on its next evaluation.
func NexusLeave(g *workflow.Graph, anchor workflow.Position, opts NexusLeaveOptions) (NexusLeaveNodes, error) {
	if opts.PortalID == 0 {
		opts.PortalID = DefaultRealmPortalID
	}
	if opts.WaitMillis == 0 {
		opts.WaitMillis = DefaultNexusWaitMillis
	}
	if opts.SpawnPoint == (workflow.Position{}) {
		opts.SpawnPoint = DefaultNexusSpawn
	}

	x, y := anchor.X, anchor.Y
	var n NexusLeaveNodes

	n.MapChange = g.AddMapChange("Nexus", anchor)
	n.Wait = g.AddWait(opts.WaitMillis, workflow.Position{X: x - HSpace, Y: y})
	n.SpawnPoint = g.AddPoint(opts.SpawnPoint.X, opts.SpawnPoint.Y, workflow.Position{X: x - 2*HSpace, Y: y + 150})
	n.MoveToSpawn = g.AddMoveTo(workflow.Position{X: x - 2*HSpace, Y: y}, false, false)
	n.PortalDetector = g.AddEnemyList([]int{opts.PortalID}, workflow.Position{X: x - 4*HSpace, Y: y + 100}, workflow.ScanOptions{ObjectType: 1})
	n.IfPortal = g.AddIf(workflow.Position{X: x - 3*HSpace, Y: y})
	n.MoveToPortal = g.AddMoveTo(workflow.Position{X: x - 4*HSpace, Y: y}, false, false)
	n.EnterPortal = g.AddEnterPortal(workflow.Position{X: x - 5*HSpace, Y: y})

	l := linker{g: g}

	// Execution chain.
	l.link(n.MapChange, "In", n.Wait, "Out")
	l.link(n.Wait, "In", n.MoveToSpawn, "Out")
	l.link(n.MoveToSpawn, "In", n.IfPortal, "Out")
	l.link(n.IfPortal, "True", n.MoveToPortal, "Out")
	l.link(n.MoveToPortal, "In", n.EnterPortal, "Out")

	// Data links.
	l.link(n.SpawnPoint, "Pos", n.MoveToSpawn, "Position")
	l.link(n.PortalDetector, "Exists", n.IfPortal, "Condition")
	l.link(n.PortalDetector, "Pos", n.MoveToPortal, "Position")
	l.link(n.PortalDetector, "ID", n.EnterPortal, "Portal ID")

	if l.err != nil {
		return NexusLeaveNodes{}, l.err
	}
	return n, nil
}
