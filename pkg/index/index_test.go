package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stategraph/pkg/errors"
)

const dungeonsFixture = `{
  "pirate_cave": {
    "name": "Pirate Cave",
    "difficulty": "1",
    "portal_id": 1815,
    "boss": {"name": "Dreadstump the Pirate King", "id": 2401},
    "enemies": [
      {"name": "Pirate", "id": 2402},
      {"name": "Pirate Commander", "id": 2403, "category": "miniboss"},
      {"name": "Unidentified Pirate", "id": 0}
    ],
    "portal_dropped_by": [
      {"name": "Snake", "id": 2601, "biome": "Beaches", "guaranteed": false}
    ]
  },
  "abyss": {
    "name": "Abyss of Demons",
    "difficulty": "6",
    "portal_id": 1828,
    "boss": {"name": "Archdemon Malphas", "id": 2501},
    "enemies": [
      {"name": "Abyss Demon", "id": 2502}
    ],
    "portal_dropped_by": []
  }
}`

const biomesFixture = `{
  "_meta": {"name": "generated"},
  "beaches": {
    "name": "Beaches",
    "monsters": [
      {"name": "Snake", "id": 2601, "drops_dungeon": "Pirate Cave"},
      {"name": "Scorpion Queen", "id": 2602}
    ],
    "heroes": [
      {"name": "Bandit Leader", "id": 2603}
    ],
    "encounters": [
      {"name": "Lord of the Lost Lands", "id": 2604}
    ],
    "beacon_guardian": {"name": "Beach Guardian", "id": 2605}
  }
}`

// writeFixtures writes both reference files into a temp dir and returns
// their paths.
func writeFixtures(t *testing.T) (dungeonsPath, biomesPath string) {
	t.Helper()
	dir := t.TempDir()

	dungeonsPath = filepath.Join(dir, "dungeons_index.json")
	if err := os.WriteFile(dungeonsPath, []byte(dungeonsFixture), 0o644); err != nil {
		t.Fatalf("write dungeons fixture: %v", err)
	}

	biomesPath = filepath.Join(dir, "biomes_complete.json")
	if err := os.WriteFile(biomesPath, []byte(biomesFixture), 0o644); err != nil {
		t.Fatalf("write biomes fixture: %v", err)
	}
	return dungeonsPath, biomesPath
}

func loadTestIndex(t *testing.T) *EntityIndex {
	t.Helper()
	dungeonsPath, biomesPath := writeFixtures(t)
	idx, err := LoadEntityIndex(dungeonsPath, biomesPath)
	if err != nil {
		t.Fatalf("LoadEntityIndex() error = %v", err)
	}
	return idx
}

func TestLoadEntityIndexMissingFile(t *testing.T) {
	_, err := LoadEntityIndex(filepath.Join(t.TempDir(), "nope.json"), "")
	if err == nil {
		t.Fatal("LoadEntityIndex() with missing file succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}

func TestLoadEntityIndexMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dungeons_index.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadEntityIndex(path, "")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestEntityIndexLookup(t *testing.T) {
	idx := loadTestIndex(t)

	tests := []struct {
		name     string
		query    string
		wantID   int
		wantType string
		wantErr  bool
	}{
		{"boss", "Archdemon Malphas", 2501, TypeBoss, false},
		{"case insensitive", "archdemon malphas", 2501, TypeBoss, false},
		{"dungeon enemy", "Abyss Demon", 2502, TypeEnemy, false},
		{"miniboss keeps category type", "Pirate Commander", 2403, "miniboss", false},
		{"synthesized portal", "Pirate Cave Portal", 1815, TypePortal, false},
		{"biome monster", "Scorpion Queen", 2602, TypeEnemy, false},
		{"hero", "Bandit Leader", 2603, TypeHero, false},
		{"encounter", "Lord of the Lost Lands", 2604, TypeEncounter, false},
		{"beacon guardian", "Beach Guardian", 2605, TypeBeaconGuardian, false},
		{"zero id skipped", "Unidentified Pirate", 0, "", true},
		{"unknown", "Nonexistent", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := idx.Lookup(tt.query)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Lookup(%q) succeeded, want error", tt.query)
				}
				if !errors.Is(err, errors.ErrCodeEntityNotFound) {
					t.Errorf("error code = %v, want ENTITY_NOT_FOUND", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.query, err)
			}
			if e.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", e.ID, tt.wantID)
			}
			if e.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", e.Type, tt.wantType)
			}
		})
	}
}

func TestEntityIndexByID(t *testing.T) {
	idx := loadTestIndex(t)

	e, err := idx.ByID(2401)
	if err != nil {
		t.Fatalf("ByID(2401) error = %v", err)
	}
	if e.Name != "Dreadstump the Pirate King" {
		t.Errorf("Name = %q, want %q", e.Name, "Dreadstump the Pirate King")
	}

	if _, err := idx.ByID(99999); !errors.Is(err, errors.ErrCodeEntityNotFound) {
		t.Errorf("ByID(99999) error code = %v, want ENTITY_NOT_FOUND", errors.GetCode(err))
	}
}

func TestEntityIndexDropperMergesWithBiomeMonster(t *testing.T) {
	idx := loadTestIndex(t)

	// Snake appears both as a portal dropper (pirate_cave) and as a
	// beaches monster; the index must hold a single merged entry.
	e, err := idx.Lookup("Snake")
	if err != nil {
		t.Fatalf("Lookup(Snake) error = %v", err)
	}
	if e.ID != 2601 {
		t.Errorf("ID = %d, want 2601", e.ID)
	}
	if e.Biome != "Beaches" {
		t.Errorf("Biome = %q, want Beaches", e.Biome)
	}
	if e.DropsDungeon != "Pirate Cave" {
		t.Errorf("DropsDungeon = %q, want Pirate Cave", e.DropsDungeon)
	}
}

func TestEntityIndexSearch(t *testing.T) {
	idx := loadTestIndex(t)

	t.Run("prefix before substring", func(t *testing.T) {
		results := idx.Search("pirate", 10)
		if len(results) < 2 {
			t.Fatalf("Search(pirate) returned %d results, want at least 2", len(results))
		}
		// Prefix matches ("Pirate", "Pirate Cave Portal", ...) come
		// before substring matches ("Dreadstump the Pirate King").
		for i, r := range results {
			if r.Name == "Dreadstump the Pirate King" {
				if i == 0 {
					t.Error("substring match ranked first, want prefix matches first")
				}
			}
		}
	})

	t.Run("exact match ranks first", func(t *testing.T) {
		results := idx.Search("Snake", 10)
		if len(results) == 0 || results[0].Name != "Snake" {
			t.Errorf("Search(Snake)[0] = %+v, want exact match first", results)
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		results := idx.Search("a", 3)
		if len(results) > 3 {
			t.Errorf("Search with limit 3 returned %d results", len(results))
		}
	})

	t.Run("type filter", func(t *testing.T) {
		results := idx.Search("a", 20, TypeBoss)
		for _, r := range results {
			if r.Type != TypeBoss {
				t.Errorf("filtered search returned type %q", r.Type)
			}
		}
	})

	t.Run("deterministic order", func(t *testing.T) {
		a := idx.Search("e", 20)
		b := idx.Search("e", 20)
		if len(a) != len(b) {
			t.Fatalf("result counts differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i].Name != b[i].Name {
				t.Errorf("result %d differs: %q vs %q", i, a[i].Name, b[i].Name)
			}
		}
	})
}

func TestEntityIndexDungeonAccessors(t *testing.T) {
	idx := loadTestIndex(t)

	portal, ok := idx.DungeonPortal("Pirate Cave")
	if !ok || portal.ID != 1815 {
		t.Errorf("DungeonPortal(Pirate Cave) = %+v, %v; want id 1815", portal, ok)
	}

	boss, ok := idx.DungeonBoss("Abyss of Demons")
	if !ok || boss.ID != 2501 {
		t.Errorf("DungeonBoss(Abyss of Demons) = %+v, %v; want id 2501", boss, ok)
	}

	// Portal, boss, Pirate and Pirate Commander; the zero-id enemy is
	// skipped and the dropper belongs to a biome, not the dungeon.
	entities := idx.DungeonEntities("Pirate Cave")
	if len(entities) != 4 {
		t.Errorf("DungeonEntities(Pirate Cave) returned %d entities, want 4", len(entities))
	}
}

func TestDungeonIndex(t *testing.T) {
	dungeonsPath, _ := writeFixtures(t)
	idx, err := LoadDungeonIndex(dungeonsPath)
	if err != nil {
		t.Fatalf("LoadDungeonIndex() error = %v", err)
	}

	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}

	t.Run("slug order", func(t *testing.T) {
		dungeons := idx.Dungeons()
		if dungeons[0].Slug != "abyss" || dungeons[1].Slug != "pirate_cave" {
			t.Errorf("Dungeons() order = [%s %s], want [abyss pirate_cave]", dungeons[0].Slug, dungeons[1].Slug)
		}
	})

	t.Run("lookup by slug", func(t *testing.T) {
		d, err := idx.Dungeon("pirate_cave")
		if err != nil {
			t.Fatalf("Dungeon(pirate_cave) error = %v", err)
		}
		if d.Name != "Pirate Cave" || d.PortalID != 1815 {
			t.Errorf("Dungeon = %+v", d)
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := idx.Dungeon("nope")
		if !errors.Is(err, errors.ErrCodeDungeonNotFound) {
			t.Errorf("error code = %v, want DUNGEON_NOT_FOUND", errors.GetCode(err))
		}
	})

	t.Run("enemy ids include boss first", func(t *testing.T) {
		d, _ := idx.Dungeon("pirate_cave")
		ids := d.EnemyIDs(true)
		want := []int{2401, 2402, 2403}
		if len(ids) != len(want) {
			t.Fatalf("EnemyIDs = %v, want %v", ids, want)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Errorf("EnemyIDs[%d] = %d, want %d", i, ids[i], want[i])
			}
		}
	})

	t.Run("biome dungeon detection", func(t *testing.T) {
		pirate, _ := idx.Dungeon("pirate_cave")
		if !pirate.IsBiomeDungeon() {
			t.Error("pirate_cave should be a biome dungeon")
		}
		if got := pirate.Biomes(); len(got) != 1 || got[0] != "Beaches" {
			t.Errorf("Biomes() = %v, want [Beaches]", got)
		}

		abyss, _ := idx.Dungeon("abyss")
		if abyss.IsBiomeDungeon() {
			t.Error("abyss should not be a biome dungeon")
		}
	})
}
