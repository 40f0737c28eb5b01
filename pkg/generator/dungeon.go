package generator

import (
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stategraph/pkg/errors"
	"github.com/matzehuels/stategraph/pkg/index"
	"github.com/matzehuels/stategraph/pkg/workflow"
	"github.com/matzehuels/stategraph/pkg/workflow/pattern"
)

// DefaultDungeonPortalID is the fallback portal scanned for when the
// dungeon record carries no portal id of its own.
const DefaultDungeonPortalID = 1815

// DungeonFarmerConfig is the declarative description of a dungeon
// farming workflow: hunt the realm enemy that drops the dungeon's
// portal, enter it, then clear the dungeon up to and including the
// boss. Most fields default from the dungeon's database record.
type DungeonFarmerConfig struct {
	// Dungeon is the dungeon slug, as keyed in dungeons_index.json.
	Dungeon string `toml:"dungeon" json:"dungeon"`
	// Name prefixes generated state names. Empty defaults to the slug.
	Name string `toml:"name" json:"name,omitempty"`
	// RealmMap is the overworld map name. Empty uses
	// DefaultRealmMapName.
	RealmMap string `toml:"realm_map" json:"realmMap,omitempty"`
	// DungeonMap overrides the dungeon's map name.
	DungeonMap string `toml:"dungeon_map" json:"dungeonMap,omitempty"`

	// PortalDropper overrides the realm enemy hunted for the portal.
	PortalDropper EntityRef `toml:"portal_dropper" json:"portalDropper,omitempty"`
	// Portal overrides the portal entity scanned for after the kill.
	Portal EntityRef `toml:"portal" json:"portal,omitempty"`

	// Enemies restricts the dungeon sweep to specific entities.
	Enemies []EntityRef `toml:"enemies" json:"enemies,omitempty"`
	// ClearAll sweeps every enemy in the dungeon record instead.
	ClearAll bool `toml:"clear_all" json:"clearAll,omitempty"`
	// Boss overrides the dungeon's boss.
	Boss EntityRef `toml:"boss" json:"boss,omitempty"`
}

// LoadDungeonFarmerConfig reads and validates a TOML dungeon farm
// config.
func LoadDungeonFarmerConfig(path string) (*DungeonFarmerConfig, error) {
	var cfg DungeonFarmerConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *DungeonFarmerConfig) validate() error {
	if err := errors.ValidateDungeonSlug(c.Dungeon); err != nil {
		return err
	}
	if c.Name != "" {
		if err := errors.ValidateStateName(c.Name); err != nil {
			return err
		}
	}
	return nil
}

// GenerateDungeonFarmer builds the dungeon farming workflow described
// by cfg, filling unset fields from the dungeon's database record.
//
// The realm phase sits at y=0 and the dungeon phase at y=600, each
// triggered by its map change. Neither phase loops: the engine
// re-enters a phase on its next evaluation tick.
func GenerateDungeonFarmer(cfg *DungeonFarmerConfig, dungeons *index.DungeonIndex, res Resolver) (*workflow.Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d, err := dungeons.Dungeon(cfg.Dungeon)
	if err != nil {
		return nil, err
	}

	realmMap := cfg.RealmMap
	if realmMap == "" {
		realmMap = DefaultRealmMapName
	}
	dungeonMap := cfg.DungeonMap
	if dungeonMap == "" {
		dungeonMap = d.Name
	}

	dropperID, err := cfg.PortalDropper.Resolve(res)
	if err != nil {
		return nil, err
	}
	if dropperID == 0 {
		for _, p := range d.PortalDroppedBy {
			if p.ID != 0 {
				dropperID = p.ID
				break
			}
		}
	}

	portalID, err := cfg.Portal.Resolve(res)
	if err != nil {
		return nil, err
	}
	if portalID == 0 {
		portalID = d.PortalID
	}
	if portalID == 0 {
		portalID = DefaultDungeonPortalID
	}

	bossID, err := cfg.Boss.Resolve(res)
	if err != nil {
		return nil, err
	}
	if bossID == 0 && d.Boss != nil {
		bossID = d.Boss.ID
	}

	clearIDs, err := resolveAll(cfg.Enemies, res)
	if err != nil {
		return nil, err
	}
	if cfg.ClearAll && len(clearIDs) == 0 {
		clearIDs = d.EnemyIDs(false)
	}

	g := workflow.New()
	l := linker{g: g}

	// Realm phase: find the dropper, kill it, then take the portal it
	// leaves behind.
	mapRealm := g.AddMapChange(realmMap, workflow.Position{X: 0, Y: 0})

	if dropperID != 0 {
		dropper, err := pattern.FindTarget(g, []int{dropperID}, workflow.Position{X: -200, Y: 0}, workflow.ScanOptions{})
		if err != nil {
			return nil, err
		}
		moveDropper, err := pattern.MoveToTarget(g, workflow.Position{X: -600, Y: 0}, pattern.MoveOptions{
			OffsetDistance: pattern.OffsetDist(DefaultOffsetDistance),
		})
		if err != nil {
			return nil, err
		}
		portal, err := pattern.FindTarget(g, []int{portalID}, workflow.Position{X: -800, Y: 0}, workflow.ScanOptions{ObjectType: 1})
		if err != nil {
			return nil, err
		}
		movePortal, err := pattern.MoveToTarget(g, workflow.Position{X: -1200, Y: 0}, pattern.MoveOptions{})
		if err != nil {
			return nil, err
		}
		enter := pattern.PortalEntry(g, workflow.Position{X: -1400, Y: 0})

		l.link(mapRealm, "In", dropper.Check, "Out")
		l.link(dropper.Check, "True", moveDropper.Move, "Out")
		l.link(dropper.Finder, "Pos", moveDropper.Offset, "Pos")

		l.link(moveDropper.Move, "In", portal.Check, "Out")
		l.link(portal.Check, "True", movePortal.Move, "Out")
		l.link(portal.Finder, "Pos", movePortal.Move, "Position")
		l.link(movePortal.Move, "In", enter.Portal, "Out")
		l.link(portal.Finder, "ID", enter.Portal, "Portal ID")
	}

	// Dungeon phase: sweep enemies and the boss.
	mapDungeon := g.AddMapChange(dungeonMap, workflow.Position{X: 0, Y: 600})

	sweepIDs := clearIDs
	if bossID != 0 && !slices.Contains(sweepIDs, bossID) {
		sweepIDs = append(slices.Clone(sweepIDs), bossID)
	}

	if len(sweepIDs) > 0 {
		sweep, err := pattern.FindTarget(g, sweepIDs, workflow.Position{X: -200, Y: 600}, workflow.ScanOptions{})
		if err != nil {
			return nil, err
		}
		moveSweep, err := pattern.MoveToTarget(g, workflow.Position{X: -600, Y: 600}, pattern.MoveOptions{
			OffsetDistance: pattern.OffsetDist(DefaultOffsetDistance),
		})
		if err != nil {
			return nil, err
		}

		l.link(mapDungeon, "In", sweep.Check, "Out")
		l.link(sweep.Check, "True", moveSweep.Move, "Out")
		l.link(sweep.Finder, "Pos", moveSweep.Offset, "Pos")
	}

	if l.err != nil {
		return nil, l.err
	}
	return g, nil
}

// StateName returns the prefix used for this config's state names.
func (c *DungeonFarmerConfig) StateName() string {
	if c.Name != "" {
		return c.Name
	}
	return strings.ReplaceAll(c.Dungeon, "-", "_")
}
