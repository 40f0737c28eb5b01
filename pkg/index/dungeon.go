package index

import (
	"github.com/matzehuels/stategraph/pkg/errors"
)

// Boss is a dungeon boss entry.
type Boss struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// Enemy is a dungeon enemy entry. Category distinguishes regular
// enemies from minibosses and treasure-room bosses.
type Enemy struct {
	Name     string `json:"name"`
	ID       int    `json:"id"`
	Category string `json:"category,omitempty"`
}

// PortalDropper is a realm entity that drops a dungeon's portal.
type PortalDropper struct {
	Name       string `json:"name"`
	ID         int    `json:"id"`
	Biome      string `json:"biome,omitempty"`
	Guaranteed bool   `json:"guaranteed,omitempty"`
}

// Dungeon describes one dungeon from dungeons_index.json.
type Dungeon struct {
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Difficulty      string          `json:"difficulty,omitempty"`
	Boss            *Boss           `json:"boss,omitempty"`
	Enemies         []Enemy         `json:"enemies,omitempty"`
	PortalID        int             `json:"portal_id,omitempty"`
	PortalDroppedBy []PortalDropper `json:"portal_dropped_by,omitempty"`
}

// IsBiomeDungeon reports whether this dungeon's portal drops from realm
// biome enemies rather than existing statically.
func (d *Dungeon) IsBiomeDungeon() bool {
	return len(d.PortalDroppedBy) > 0
}

// Biomes lists the distinct biomes in which this dungeon's portal drops.
func (d *Dungeon) Biomes() []string {
	seen := make(map[string]bool)
	var biomes []string
	for _, p := range d.PortalDroppedBy {
		if p.Biome == "" || seen[p.Biome] {
			continue
		}
		seen[p.Biome] = true
		biomes = append(biomes, p.Biome)
	}
	return biomes
}

// EnemyIDs returns the engine ids of all dungeon enemies, with the boss
// first when includeBoss is set. Entries without an id are skipped.
func (d *Dungeon) EnemyIDs(includeBoss bool) []int {
	var ids []int
	if includeBoss && d.Boss != nil && d.Boss.ID != 0 {
		ids = append(ids, d.Boss.ID)
	}
	for _, e := range d.Enemies {
		if e.ID != 0 {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// biomeEntity is the common shape of monster, hero and encounter entries
// in biomes_complete.json.
type biomeEntity struct {
	Name         string `json:"name"`
	ID           int    `json:"id"`
	DropsDungeon string `json:"drops_dungeon,omitempty"`
	Guaranteed   bool   `json:"guaranteed,omitempty"`
}

// Biome describes one biome from biomes_complete.json.
type Biome struct {
	Slug           string
	Name           string
	Monsters       []biomeEntity
	Heroes         []biomeEntity
	Encounters     []biomeEntity
	BeaconGuardian *biomeEntity
}

// dungeonRecord mirrors one value of the dungeons_index.json top-level
// object, keyed by slug.
type dungeonRecord struct {
	Name            string          `json:"name"`
	Difficulty      string          `json:"difficulty"`
	PortalID        int             `json:"portal_id"`
	Boss            *Boss           `json:"boss"`
	Enemies         []Enemy         `json:"enemies"`
	PortalDroppedBy []PortalDropper `json:"portal_dropped_by"`
}

type biomeRecord struct {
	Name           string        `json:"name"`
	Monsters       []biomeEntity `json:"monsters"`
	Heroes         []biomeEntity `json:"heroes"`
	Encounters     []biomeEntity `json:"encounters"`
	BeaconGuardian *biomeEntity  `json:"beacon_guardian"`
}

// loadDungeonFile parses dungeons_index.json into Dungeon values,
// ordered by slug.
func loadDungeonFile(path string) ([]*Dungeon, error) {
	var records map[string]dungeonRecord
	if err := readJSONFile(path, &records); err != nil {
		return nil, err
	}

	dungeons := make([]*Dungeon, 0, len(records))
	for _, slug := range sortedKeys(records) {
		rec := records[slug]
		name := rec.Name
		if name == "" {
			name = slug
		}
		dungeons = append(dungeons, &Dungeon{
			Slug:            slug,
			Name:            name,
			Difficulty:      rec.Difficulty,
			Boss:            rec.Boss,
			Enemies:         rec.Enemies,
			PortalID:        rec.PortalID,
			PortalDroppedBy: rec.PortalDroppedBy,
		})
	}
	return dungeons, nil
}

// loadBiomeFile parses biomes_complete.json into Biome values, ordered
// by slug. Top-level keys starting with an underscore hold file metadata
// and are skipped.
func loadBiomeFile(path string) ([]*Biome, error) {
	var raw map[string]biomeRecord
	if err := readJSONFile(path, &raw); err != nil {
		return nil, err
	}

	var biomes []*Biome
	for _, slug := range sortedKeys(raw) {
		if len(slug) > 0 && slug[0] == '_' {
			continue
		}
		rec := raw[slug]
		name := rec.Name
		if name == "" {
			name = slug
		}
		biomes = append(biomes, &Biome{
			Slug:           slug,
			Name:           name,
			Monsters:       rec.Monsters,
			Heroes:         rec.Heroes,
			Encounters:     rec.Encounters,
			BeaconGuardian: rec.BeaconGuardian,
		})
	}
	return biomes, nil
}

// DungeonIndex maps dungeon slugs to dungeons.
type DungeonIndex struct {
	bySlug map[string]*Dungeon
	slugs  []string
}

// LoadDungeonIndex builds a dungeon index from dungeons_index.json.
func LoadDungeonIndex(path string) (*DungeonIndex, error) {
	dungeons, err := loadDungeonFile(path)
	if err != nil {
		return nil, err
	}

	idx := &DungeonIndex{bySlug: make(map[string]*Dungeon, len(dungeons))}
	for _, d := range dungeons {
		idx.bySlug[d.Slug] = d
		idx.slugs = append(idx.slugs, d.Slug)
	}
	return idx, nil
}

// Dungeon finds a dungeon by slug.
func (idx *DungeonIndex) Dungeon(slug string) (*Dungeon, error) {
	d, ok := idx.bySlug[slug]
	if !ok {
		return nil, errors.New(errors.ErrCodeDungeonNotFound, "no dungeon with slug %q", slug)
	}
	return d, nil
}

// Dungeons returns all dungeons in slug order.
func (idx *DungeonIndex) Dungeons() []*Dungeon {
	out := make([]*Dungeon, len(idx.slugs))
	for i, slug := range idx.slugs {
		out[i] = idx.bySlug[slug]
	}
	return out
}

// Len reports the number of dungeons indexed.
func (idx *DungeonIndex) Len() int {
	return len(idx.slugs)
}
