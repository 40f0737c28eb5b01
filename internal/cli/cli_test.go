package cli

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stategraph/pkg/wire"
)

const dungeonsFixture = `{
  "pirate_cave": {
    "name": "Pirate Cave",
    "difficulty": "1",
    "portal_id": 1815,
    "boss": {"name": "Dreadstump the Pirate King", "id": 2401},
    "enemies": [{"name": "Pirate", "id": 2402}],
    "portal_dropped_by": [{"name": "Snake", "id": 2601, "biome": "Beaches"}]
  }
}`

// writeDataDir creates a data directory holding the dungeon fixture.
func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, dungeonsFile), []byte(dungeonsFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"generate", "inspect", "render", "serve", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("command %q not registered (got %v)", want, names)
		}
	}
}

func TestGenerateDungeonCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	dataDir := writeDataDir(t)
	output := filepath.Join(t.TempDir(), "pirate.json")

	root := c.RootCommand()
	root.SetArgs([]string{
		"generate", "dungeon", "pirate_cave",
		"--data", dataDir,
		"--clear-all",
		"-o", output,
	})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	g, err := wire.ReadFile(output)
	if err != nil {
		t.Fatalf("output is not a readable workflow: %v", err)
	}
	if g.NodeCount() == 0 {
		t.Error("generated workflow is empty")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("generated workflow is cyclic: %v", err)
	}
}

func TestGenerateDungeonRequiresSlugOrConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"generate", "dungeon"})
	root.SetErr(io.Discard)
	root.SetOut(io.Discard)

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "slug or --config") {
		t.Errorf("Execute() error = %v, want a slug/--config error", err)
	}
}

func TestRenderRejectsInvalidFormat(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", "in.json", "--format", "gif"})
	root.SetErr(io.Discard)
	root.SetOut(io.Discard)

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("Execute() error = %v, want an invalid format error", err)
	}
}

func TestInspectDungeonUnknownSlug(t *testing.T) {
	c := New(io.Discard, LogInfo)
	dataDir := writeDataDir(t)

	root := c.RootCommand()
	root.SetArgs([]string{"inspect", "dungeon", "nope", "--data", dataDir})
	root.SetErr(io.Discard)
	root.SetOut(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("Execute() succeeded for an unknown slug")
	}
}
