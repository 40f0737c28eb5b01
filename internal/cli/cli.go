// Package cli implements the stategraph command-line interface.
//
// Commands generate workflow graphs from farm configs, inspect the
// reference database, render workflows as diagrams, and serve the
// editor API. All commands support --verbose (-v) for debug-level
// logging via the charmbracelet/log library.
package cli

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stategraph/pkg/buildinfo"
	"github.com/matzehuels/stategraph/pkg/index"
)

// appName is the application name used for directories and display.
const appName = "stategraph"

// Reference data filenames expected under the data directory.
const (
	dungeonsFile = "dungeons_index.json"
	biomesFile   = "biomes_complete.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Stategraph generates workflow graphs for the automation engine",
		Long:         `Stategraph builds typed workflow graphs (entity scans, movement, branching, state hand-offs) from declarative farm configs and serializes them for the automation engine's editor and runtime.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadEntityIndex loads the entity index from a data directory.
func loadEntityIndex(dataDir string) (*index.EntityIndex, error) {
	return index.LoadEntityIndex(
		filepath.Join(dataDir, dungeonsFile),
		filepath.Join(dataDir, biomesFile),
	)
}

// loadDungeonIndex loads the dungeon index from a data directory.
func loadDungeonIndex(dataDir string) (*index.DungeonIndex, error) {
	return index.LoadDungeonIndex(filepath.Join(dataDir, dungeonsFile))
}
