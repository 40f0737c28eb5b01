package generator

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stategraph/pkg/errors"
	"github.com/matzehuels/stategraph/pkg/workflow"
	"github.com/matzehuels/stategraph/pkg/workflow/pattern"
)

// Realm farmer defaults.
const (
	// DefaultRealmMapName is the overworld map the farm runs in.
	DefaultRealmMapName = "Realm of the Mad God"
	// DefaultBeaconDistance is the radius within which the player counts
	// as having reached the beacon.
	DefaultBeaconDistance = 10.0
	// DefaultOffsetDistance is the standoff kept from engaged enemies.
	DefaultOffsetDistance = 2.5
	// DefaultExitPortalID is the portal back to the overworld, present
	// in every dungeon.
	DefaultExitPortalID = 1796
)

// BeaconSection configures the beacon-search phase of a realm farm.
type BeaconSection struct {
	// Enemy is scanned for once the player reaches the beacon.
	Enemy EntityRef `toml:"enemy" json:"enemy"`
	// Position is the beacon's world coordinate as [x, y].
	Position []float64 `toml:"position" json:"position"`
	// Distance is the arrival radius. Zero uses DefaultBeaconDistance.
	Distance float64 `toml:"distance" json:"distance,omitempty"`
}

// ClearSection configures the clear-mobs phase of a realm farm.
type ClearSection struct {
	// Enemies are hunted while patrolling.
	Enemies []EntityRef `toml:"enemies" json:"enemies,omitempty"`
	// Portal, when set, is entered once it appears.
	Portal EntityRef `toml:"portal" json:"portal,omitempty"`
	// Waypoints is the patrol route as [x, y] pairs.
	Waypoints [][]float64 `toml:"waypoints" json:"waypoints,omitempty"`
	// Offset is the enemy standoff distance. Zero uses
	// DefaultOffsetDistance.
	Offset float64 `toml:"offset" json:"offset,omitempty"`
}

// DungeonSection configures the optional dungeon phase entered through
// the clear phase's portal.
type DungeonSection struct {
	// Map is the dungeon's map name, triggering the phase on entry.
	Map string `toml:"map" json:"map,omitempty"`
	// Boss is checked last; the phase exits once it is gone.
	Boss EntityRef `toml:"boss" json:"boss"`
	// Enemies are cleared before the boss check.
	Enemies []EntityRef `toml:"enemies" json:"enemies,omitempty"`
	// ExitPortal overrides the dungeon's exit portal id. Zero uses
	// DefaultExitPortalID.
	ExitPortal int `toml:"exit_portal" json:"exitPortal,omitempty"`
}

// RealmFarmerConfig is the declarative description of a realm farming
// workflow: leave the hub, reach a beacon, clear mobs around it, and
// optionally run the dungeon behind the portal that spawns there.
type RealmFarmerConfig struct {
	// Name prefixes the generated state names ({name}_beacon,
	// {name}_clear, {name}_dungeon).
	Name string `toml:"name" json:"name"`
	// Map is the overworld map name. Empty uses DefaultRealmMapName.
	Map string `toml:"map" json:"map,omitempty"`

	Beacon  BeaconSection   `toml:"beacon" json:"beacon"`
	Clear   ClearSection    `toml:"clear" json:"clear"`
	Dungeon *DungeonSection `toml:"dungeon" json:"dungeon,omitempty"`
}

// LoadRealmFarmerConfig reads and validates a TOML realm farm config.
func LoadRealmFarmerConfig(path string) (*RealmFarmerConfig, error) {
	var cfg RealmFarmerConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *RealmFarmerConfig) validate() error {
	if err := errors.ValidateStateName(c.Name); err != nil {
		return err
	}
	if c.Beacon.Enemy.IsZero() {
		return errors.New(errors.ErrCodeInvalidConfig, "beacon.enemy is required")
	}
	if len(c.Beacon.Position) != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "beacon.position must be [x, y]")
	}
	if c.Dungeon != nil {
		if c.Dungeon.Map == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "dungeon.map is required when a dungeon phase is configured")
		}
		if c.Dungeon.Boss.IsZero() {
			return errors.New(errors.ErrCodeInvalidConfig, "dungeon.boss is required when a dungeon phase is configured")
		}
	}
	return nil
}

// GenerateRealmFarmer builds the realm farming workflow described by
// cfg. Named entity references are resolved through res.
//
// The graph is laid out in bands: the hub-exit chain at y=-200 next to
// the overworld map trigger, the beacon phase at y=0, the clear phase
// at y=600 and the optional dungeon phase at y=1200.
func GenerateRealmFarmer(cfg *RealmFarmerConfig, res Resolver) (*workflow.Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	beaconID, err := cfg.Beacon.Enemy.Resolve(res)
	if err != nil {
		return nil, err
	}
	clearIDs, err := resolveAll(cfg.Clear.Enemies, res)
	if err != nil {
		return nil, err
	}
	portalID, err := cfg.Clear.Portal.Resolve(res)
	if err != nil {
		return nil, err
	}
	waypoints, err := positions(cfg.Clear.Waypoints)
	if err != nil {
		return nil, err
	}

	mapName := cfg.Map
	if mapName == "" {
		mapName = DefaultRealmMapName
	}
	distance := cfg.Beacon.Distance
	if distance == 0 {
		distance = DefaultBeaconDistance
	}
	offset := cfg.Clear.Offset
	if offset == 0 {
		offset = DefaultOffsetDistance
	}

	beaconState := cfg.Name + "_beacon"
	clearState := cfg.Name + "_clear"

	g := workflow.New()

	// Hub exit: independent chain triggered by the hub map.
	if _, err := pattern.NexusLeave(g, workflow.Position{X: 0, Y: -200}, pattern.NexusLeaveOptions{}); err != nil {
		return nil, err
	}

	// Overworld map trigger hands control to the beacon state.
	mapRealm := g.AddMapChange(mapName, workflow.Position{X: 1800, Y: -200})
	pushBeacon := g.AddPush(beaconState, workflow.Position{X: 1400, Y: -200})
	if err := g.LinkPins(mapRealm, "In", pushBeacon, "Out"); err != nil {
		return nil, err
	}

	// Beacon phase; its start node is named {name}_beacon, derived from
	// the clear state it hands off to.
	if _, err := pattern.BeaconSearch(g, workflow.Position{X: 1600, Y: 0}, pattern.BeaconSearchOptions{
		EnemyID:           beaconID,
		BeaconPosition:    workflow.Position{X: cfg.Beacon.Position[0], Y: cfg.Beacon.Position[1]},
		NextState:         clearState,
		DistanceThreshold: distance,
	}); err != nil {
		return nil, err
	}

	// Clear phase.
	if _, err := pattern.ClearMobs(g, workflow.Position{X: 1600, Y: 600}, pattern.ClearMobsOptions{
		StateName:      clearState,
		EnemyIDs:       clearIDs,
		PortalID:       portalID,
		Waypoints:      waypoints,
		OffsetDistance: offset,
	}); err != nil {
		return nil, err
	}

	if cfg.Dungeon != nil {
		if err := addDungeonPhase(g, cfg, res); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// addDungeonPhase appends the optional dungeon band: a map trigger into
// {name}_dungeon, an additional-enemies sweep, the boss check and the
// exit-portal sequence once the boss is gone.
func addDungeonPhase(g *workflow.Graph, cfg *RealmFarmerConfig, res Resolver) error {
	d := cfg.Dungeon

	bossID, err := d.Boss.Resolve(res)
	if err != nil {
		return err
	}
	additionalIDs, err := resolveAll(d.Enemies, res)
	if err != nil {
		return err
	}
	exitPortal := d.ExitPortal
	if exitPortal == 0 {
		exitPortal = DefaultExitPortalID
	}

	dungeonState := cfg.Name + "_dungeon"
	dx, dy := 2000.0, 1200.0

	mapDungeon := g.AddMapChange(d.Map, workflow.Position{X: dx, Y: dy})
	pushDungeon := g.AddPush(dungeonState, workflow.Position{X: dx - 200, Y: dy})
	startDungeon := g.AddStart(dungeonState, workflow.Position{X: dx, Y: dy + 400})

	l := linker{g: g}
	l.link(mapDungeon, "In", pushDungeon, "Out")

	// Additional enemies are swept before the boss check; the boss check
	// entry moves to the sweep's False branch.
	entryNode, entryPin := startDungeon, "In"
	if len(additionalIDs) > 0 {
		sweep, err := pattern.FindTarget(g, additionalIDs, workflow.Position{X: dx - 200, Y: dy + 400}, workflow.ScanOptions{})
		if err != nil {
			return err
		}
		moveSweep, err := pattern.MoveToTarget(g, workflow.Position{X: dx - 600, Y: dy + 400}, pattern.MoveOptions{
			OffsetDistance: pattern.OffsetDist(DefaultOffsetDistance),
		})
		if err != nil {
			return err
		}
		l.link(startDungeon, "In", sweep.Check, "Out")
		l.link(sweep.Check, "True", moveSweep.Move, "Out")
		l.link(sweep.Finder, "Pos", moveSweep.Offset, "Pos")

		entryNode, entryPin = sweep.Check, "False"
	}

	// Boss check: present moves in, gone proceeds to the exit portal.
	boss, err := pattern.FindTarget(g, []int{bossID}, workflow.Position{X: dx - 200, Y: dy + 600}, workflow.ScanOptions{})
	if err != nil {
		return err
	}
	moveBoss, err := pattern.MoveToTarget(g, workflow.Position{X: dx - 600, Y: dy + 600}, pattern.MoveOptions{
		OffsetDistance: pattern.OffsetDist(DefaultOffsetDistance),
	})
	if err != nil {
		return err
	}
	l.link(entryNode, entryPin, boss.Check, "Out")
	l.link(boss.Check, "True", moveBoss.Move, "Out")
	l.link(boss.Finder, "Pos", moveBoss.Offset, "Pos")

	// Exit sequence. When the portal is not yet up the chain simply
	// ends; the engine retries on its next evaluation.
	exit, err := pattern.FindTarget(g, []int{exitPortal}, workflow.Position{X: dx - 600, Y: dy + 800}, workflow.ScanOptions{ObjectType: 1})
	if err != nil {
		return err
	}
	moveExit, err := pattern.MoveToTarget(g, workflow.Position{X: dx - 1000, Y: dy + 800}, pattern.MoveOptions{})
	if err != nil {
		return err
	}
	enterExit := pattern.PortalEntry(g, workflow.Position{X: dx - 1200, Y: dy + 800})

	l.link(boss.Check, "False", exit.Check, "Out")
	l.link(exit.Check, "True", moveExit.Move, "Out")
	l.link(exit.Finder, "Pos", moveExit.Move, "Position")
	l.link(moveExit.Move, "In", enterExit.Portal, "Out")
	l.link(exit.Finder, "ID", enterExit.Portal, "Portal ID")

	return l.err
}
