// Package index builds in-memory lookup tables from the canonical
// reference-data files: dungeons_index.json (bosses, enemies, portals,
// portal droppers) and biomes_complete.json (monsters, heroes,
// encounters, beacon guardians).
//
// Indexes are constructed explicitly from caller-supplied paths and
// passed to consumers as values; there is no package-level instance.
package index

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/matzehuels/stategraph/pkg/errors"
)

// Entity types as they appear in search filters and API responses.
const (
	TypeEnemy          = "enemy"
	TypeBoss           = "boss"
	TypePortal         = "portal"
	TypeHero           = "hero"
	TypeEncounter      = "encounter"
	TypeBeaconGuardian = "beacon_guardian"
)

// Entity is a game entity with the metadata needed to resolve names to
// engine ids and to answer search queries.
type Entity struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
	Type string `json:"type"`

	Dungeon         string `json:"dungeon,omitempty"`
	Biome           string `json:"biome,omitempty"`
	Category        string `json:"category,omitempty"`
	DropsDungeon    string `json:"dropsDungeon,omitempty"`
	DropsGuaranteed bool   `json:"dropsGuaranteed,omitempty"`
}

// EntityIndex maps entity names and ids to entities.
type EntityIndex struct {
	byName map[string]*Entity // lowercase name -> entity
	byID   map[int]*Entity

	byDungeon map[string][]*Entity
	byBiome   map[string][]*Entity
	portals   map[string]*Entity // dungeon name -> portal entity
	bosses    map[string]*Entity // dungeon name -> boss entity

	names []string // sorted lowercase names, for deterministic search
}

// LoadEntityIndex builds an entity index from the two canonical sources.
// Either path may be empty to skip that source.
func LoadEntityIndex(dungeonsPath, biomesPath string) (*EntityIndex, error) {
	idx := &EntityIndex{
		byName:    make(map[string]*Entity),
		byID:      make(map[int]*Entity),
		byDungeon: make(map[string][]*Entity),
		byBiome:   make(map[string][]*Entity),
		portals:   make(map[string]*Entity),
		bosses:    make(map[string]*Entity),
	}

	if dungeonsPath != "" {
		dungeons, err := loadDungeonFile(dungeonsPath)
		if err != nil {
			return nil, err
		}
		idx.addDungeons(dungeons)
	}
	if biomesPath != "" {
		biomes, err := loadBiomeFile(biomesPath)
		if err != nil {
			return nil, err
		}
		idx.addBiomes(biomes)
	}

	idx.names = make([]string, 0, len(idx.byName))
	for name := range idx.byName {
		idx.names = append(idx.names, name)
	}
	sort.Strings(idx.names)

	return idx, nil
}

// add inserts an entity into the primary and secondary indexes. When a
// name collides the entry with richer provenance wins, matching how the
// sources overlap (a biome monster may already exist as a portal dropper).
func (idx *EntityIndex) add(e *Entity) {
	key := strings.ToLower(e.Name)

	if existing, ok := idx.byName[key]; ok {
		if existing.Dungeon != "" && e.Dungeon == "" {
			return
		}
		if existing.Biome != "" && e.Biome == "" {
			return
		}
	}

	idx.byName[key] = e
	idx.byID[e.ID] = e

	if e.Dungeon != "" {
		idx.byDungeon[e.Dungeon] = append(idx.byDungeon[e.Dungeon], e)
	}
	if e.Biome != "" {
		idx.byBiome[e.Biome] = append(idx.byBiome[e.Biome], e)
	}
}

func (idx *EntityIndex) addDungeons(dungeons []*Dungeon) {
	for _, d := range dungeons {
		if d.PortalID != 0 {
			portal := &Entity{
				Name:    d.Name + " Portal",
				ID:      d.PortalID,
				Type:    TypePortal,
				Dungeon: d.Name,
			}
			idx.add(portal)
			idx.portals[d.Name] = portal
		}

		if d.Boss != nil && d.Boss.ID != 0 {
			boss := &Entity{
				Name:    d.Boss.Name,
				ID:      d.Boss.ID,
				Type:    TypeBoss,
				Dungeon: d.Name,
			}
			idx.add(boss)
			idx.bosses[d.Name] = boss
		}

		for _, e := range d.Enemies {
			if e.ID == 0 {
				continue
			}
			typ := TypeEnemy
			if e.Category != "" && e.Category != TypeEnemy {
				typ = e.Category
			}
			idx.add(&Entity{
				Name:     e.Name,
				ID:       e.ID,
				Type:     typ,
				Dungeon:  d.Name,
				Category: e.Category,
			})
		}

		for _, p := range d.PortalDroppedBy {
			if p.ID == 0 {
				continue
			}
			key := strings.ToLower(p.Name)
			if existing, ok := idx.byName[key]; ok {
				if existing.DropsDungeon == "" {
					existing.DropsDungeon = d.Name
					existing.DropsGuaranteed = p.Guaranteed
				}
				continue
			}
			idx.add(&Entity{
				Name:            p.Name,
				ID:              p.ID,
				Type:            TypeEnemy,
				Biome:           p.Biome,
				DropsDungeon:    d.Name,
				DropsGuaranteed: p.Guaranteed,
			})
		}
	}
}

func (idx *EntityIndex) addBiomes(biomes []*Biome) {
	for _, b := range biomes {
		for _, m := range b.Monsters {
			idx.addBiomeEntity(m, TypeEnemy, b.Name)
		}
		for _, h := range b.Heroes {
			idx.addBiomeEntity(h, TypeHero, b.Name)
		}
		for _, e := range b.Encounters {
			idx.addBiomeEntity(e, TypeEncounter, b.Name)
		}
		if g := b.BeaconGuardian; g != nil && g.ID != 0 {
			idx.add(&Entity{
				Name:  g.Name,
				ID:    g.ID,
				Type:  TypeBeaconGuardian,
				Biome: b.Name,
			})
		}
	}
}

func (idx *EntityIndex) addBiomeEntity(m biomeEntity, typ, biome string) {
	if m.ID == 0 {
		return
	}
	key := strings.ToLower(m.Name)
	if existing, ok := idx.byName[key]; ok {
		if existing.Biome == "" {
			existing.Biome = biome
		}
		return
	}
	idx.add(&Entity{
		Name:            m.Name,
		ID:              m.ID,
		Type:            typ,
		Biome:           biome,
		DropsDungeon:    m.DropsDungeon,
		DropsGuaranteed: m.Guaranteed,
	})
}

// Lookup finds an entity by exact name, case-insensitively.
func (idx *EntityIndex) Lookup(name string) (*Entity, error) {
	e, ok := idx.byName[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeEntityNotFound, "no entity named %q", name)
	}
	return e, nil
}

// ByID finds an entity by its engine id.
func (idx *EntityIndex) ByID(id int) (*Entity, error) {
	e, ok := idx.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeEntityNotFound, "no entity with id %d", id)
	}
	return e, nil
}

// ResolveID returns the engine id for an entity name.
func (idx *EntityIndex) ResolveID(name string) (int, error) {
	e, err := idx.Lookup(name)
	if err != nil {
		return 0, err
	}
	return e.ID, nil
}

// Search finds entities by partial name match. Exact matches rank first,
// then prefix matches, then substring matches; within a rank results
// follow name order. types, when non-empty, restricts the entity types
// returned.
func (idx *EntityIndex) Search(query string, limit int, types ...string) []*Entity {
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(query)

	allowed := func(e *Entity) bool {
		if len(types) == 0 {
			return true
		}
		for _, t := range types {
			if e.Type == t {
				return true
			}
		}
		return false
	}

	var results []*Entity
	seen := make(map[string]bool)

	take := func(name string, e *Entity) bool {
		if seen[name] || !allowed(e) {
			return len(results) < limit
		}
		seen[name] = true
		results = append(results, e)
		return len(results) < limit
	}

	if e, ok := idx.byName[q]; ok {
		take(q, e)
	}
	for _, name := range idx.names {
		if len(results) >= limit {
			break
		}
		if strings.HasPrefix(name, q) {
			take(name, idx.byName[name])
		}
	}
	for _, name := range idx.names {
		if len(results) >= limit {
			break
		}
		if strings.Contains(name, q) {
			take(name, idx.byName[name])
		}
	}

	return results
}

// DungeonPortal returns the portal entity registered for a dungeon name.
func (idx *EntityIndex) DungeonPortal(dungeonName string) (*Entity, bool) {
	p, ok := idx.portals[dungeonName]
	return p, ok
}

// DungeonBoss returns the boss entity registered for a dungeon name.
func (idx *EntityIndex) DungeonBoss(dungeonName string) (*Entity, bool) {
	b, ok := idx.bosses[dungeonName]
	return b, ok
}

// DungeonEntities returns the entities belonging to a dungeon.
func (idx *EntityIndex) DungeonEntities(dungeonName string) []*Entity {
	return idx.byDungeon[dungeonName]
}

// BiomeEntities returns the entities belonging to a biome.
func (idx *EntityIndex) BiomeEntities(biomeName string) []*Entity {
	return idx.byBiome[biomeName]
}

// Len reports the number of distinct entity names indexed.
func (idx *EntityIndex) Len() int {
	return len(idx.byName)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "reference data file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "reading %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing %s", path)
	}
	return nil
}

// sortedKeys gives map iteration a stable order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
