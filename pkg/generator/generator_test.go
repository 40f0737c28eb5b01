package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stategraph/pkg/errors"
	"github.com/matzehuels/stategraph/pkg/workflow"
)

// fakeResolver resolves names from a fixed table.
type fakeResolver map[string]int

func (r fakeResolver) ResolveID(name string) (int, error) {
	id, ok := r[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeEntityNotFound, "no entity named %q", name)
	}
	return id, nil
}

func TestEntityRefUnmarshalTOML(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantID   int
		wantName string
		wantErr  bool
	}{
		{"integer id", `ref = 53009`, 53009, "", false},
		{"string name", `ref = "Sprite God"`, 0, "Sprite God", false},
		{"float id", `ref = 53009.0`, 53009, "", false},
		{"boolean rejected", `ref = true`, 0, "", true},
		{"table rejected", `ref = { id = 1 }`, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				Ref EntityRef `toml:"ref"`
			}
			_, err := toml.Decode(tt.src, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if dst.Ref.ID != tt.wantID || dst.Ref.Name != tt.wantName {
				t.Errorf("ref = %+v, want id %d name %q", dst.Ref, tt.wantID, tt.wantName)
			}
		})
	}
}

func TestEntityRefResolve(t *testing.T) {
	res := fakeResolver{"Sprite God": 9828}

	tests := []struct {
		name    string
		ref     EntityRef
		want    int
		wantErr bool
	}{
		{"numeric passthrough", EntityRef{ID: 42}, 42, false},
		{"named", EntityRef{Name: "Sprite God"}, 9828, false},
		{"zero", EntityRef{}, 0, false},
		{"unknown name", EntityRef{Name: "Nonexistent"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ref.Resolve(res)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("named without resolver", func(t *testing.T) {
		_, err := EntityRef{Name: "Sprite God"}.Resolve(nil)
		if !errors.Is(err, errors.ErrCodeEntityNotFound) {
			t.Errorf("error code = %v, want ENTITY_NOT_FOUND", errors.GetCode(err))
		}
	})
}

const realmConfigTOML = `
name = "sprite_world"

[beacon]
enemy = "Captured Sprite Beacon"
position = [1246.81, 532.26]

[clear]
enemies = ["Sprite God"]
portal = 14861
offset = 2.5
waypoints = [
  [1316.47, 536.50],
  [1304.53, 471.53],
  [1361.44, 422.06],
]
`

func spriteResolver() fakeResolver {
	return fakeResolver{
		"Captured Sprite Beacon": 53009,
		"Sprite God":             9828,
		"Limon the Sprite God":   9829,
	}
}

func loadRealmConfig(t *testing.T, src string) *RealmFarmerConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), "farm.toml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadRealmFarmerConfig(path)
	if err != nil {
		t.Fatalf("LoadRealmFarmerConfig() error = %v", err)
	}
	return cfg
}

// startNames collects the state names of all Start nodes in the graph.
func startNames(g *workflow.Graph) []string {
	var names []string
	for _, n := range g.Nodes() {
		if n.Kind == workflow.KindStart {
			names = append(names, n.Config.(*workflow.StartConfig).Name)
		}
	}
	return names
}

func TestGenerateRealmFarmer(t *testing.T) {
	cfg := loadRealmConfig(t, realmConfigTOML)

	g, err := GenerateRealmFarmer(cfg, spriteResolver())
	if err != nil {
		t.Fatalf("GenerateRealmFarmer() error = %v", err)
	}

	if err := g.Validate(); err != nil {
		t.Fatalf("generated graph is cyclic: %v", err)
	}

	names := startNames(g)
	wantNames := map[string]bool{"sprite_world_beacon": false, "sprite_world_clear": false}
	for _, n := range names {
		if _, ok := wantNames[n]; ok {
			wantNames[n] = true
		}
	}
	for name, found := range wantNames {
		if !found {
			t.Errorf("missing start node for state %q (got %v)", name, names)
		}
	}

	// The clear phase's enemy scan must carry the resolved id.
	var sawResolvedEnemy bool
	for _, n := range g.Nodes() {
		if n.Kind != workflow.KindEnemyList {
			continue
		}
		ids := n.Config.(*workflow.EnemyListConfig).EnemyIDs
		for _, id := range ids {
			if id == 9828 {
				sawResolvedEnemy = true
			}
		}
	}
	if !sawResolvedEnemy {
		t.Error("no enemy scan carries the resolved Sprite God id 9828")
	}
}

func TestGenerateRealmFarmerWithDungeonPhase(t *testing.T) {
	cfg := loadRealmConfig(t, realmConfigTOML+`
[dungeon]
map = "Sprite World"
boss = "Limon the Sprite God"
enemies = [9828]
`)

	g, err := GenerateRealmFarmer(cfg, spriteResolver())
	if err != nil {
		t.Fatalf("GenerateRealmFarmer() error = %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("generated graph is cyclic: %v", err)
	}

	var sawDungeonStart, sawExitPortalScan bool
	for _, n := range g.Nodes() {
		switch n.Kind {
		case workflow.KindStart:
			if n.Config.(*workflow.StartConfig).Name == "sprite_world_dungeon" {
				sawDungeonStart = true
			}
		case workflow.KindEnemyList:
			c := n.Config.(*workflow.EnemyListConfig)
			if c.ObjectType == 1 && len(c.EnemyIDs) == 1 && c.EnemyIDs[0] == DefaultExitPortalID {
				sawExitPortalScan = true
			}
		}
	}
	if !sawDungeonStart {
		t.Error("missing start node for the dungeon state")
	}
	if !sawExitPortalScan {
		t.Errorf("no portal scan for the default exit portal %d", DefaultExitPortalID)
	}
}

func TestGenerateRealmFarmerValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing name", `
[beacon]
enemy = 53009
position = [1.0, 2.0]
`},
		{"missing beacon enemy", `
name = "farm"
[beacon]
position = [1.0, 2.0]
`},
		{"bad beacon position", `
name = "farm"
[beacon]
enemy = 53009
position = [1.0]
`},
		{"dungeon without boss", `
name = "farm"
[beacon]
enemy = 53009
position = [1.0, 2.0]
[dungeon]
map = "Sprite World"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "farm.toml")
			if err := os.WriteFile(path, []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRealmFarmerConfig(path); err == nil {
				t.Error("LoadRealmFarmerConfig() succeeded, want validation error")
			}
		})
	}
}

func TestGenerateRealmFarmerUnresolvableEntity(t *testing.T) {
	cfg := loadRealmConfig(t, realmConfigTOML)

	_, err := GenerateRealmFarmer(cfg, fakeResolver{})
	if !errors.Is(err, errors.ErrCodeEntityNotFound) {
		t.Errorf("error code = %v, want ENTITY_NOT_FOUND", errors.GetCode(err))
	}
}

func TestGenerateRealmFarmerWaypointShape(t *testing.T) {
	cfg := loadRealmConfig(t, `
name = "farm"
[beacon]
enemy = 53009
position = [1.0, 2.0]
[clear]
waypoints = [[1.0, 2.0, 3.0]]
`)

	_, err := GenerateRealmFarmer(cfg, nil)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want INVALID_CONFIG", errors.GetCode(err))
	}
}
