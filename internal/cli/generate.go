package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stategraph/pkg/generator"
	"github.com/matzehuels/stategraph/pkg/index"
	"github.com/matzehuels/stategraph/pkg/wire"
	"github.com/matzehuels/stategraph/pkg/workflow"
)

// generateOpts holds the flags shared by the generate subcommands.
type generateOpts struct {
	config  string // TOML config path
	output  string // output file path; empty derives from the state name
	dataDir string // reference data directory
}

// generateCommand creates the generate command with its realm and
// dungeon subcommands.
func (c *CLI) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a workflow from a farm config",
	}

	cmd.AddCommand(c.generateRealmCommand())
	cmd.AddCommand(c.generateDungeonCommand())

	return cmd
}

// generateRealmCommand builds a realm farming workflow from a TOML
// config: hub exit, beacon search, mob clearing and an optional dungeon
// phase.
func (c *CLI) generateRealmCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "realm",
		Short: "Generate a realm farming workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerateRealm(&opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML farm config (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <name>.json)")
	cmd.Flags().StringVar(&opts.dataDir, "data", "data", "reference data directory")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// generateDungeonCommand builds a dungeon farming workflow. The dungeon
// can be named directly by slug, with the roster pulled from the
// reference data, or described fully in a TOML config.
func (c *CLI) generateDungeonCommand() *cobra.Command {
	var opts generateOpts
	var clearAll bool
	var name string

	cmd := &cobra.Command{
		Use:   "dungeon [slug]",
		Short: "Generate a dungeon farming workflow",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.config == "" && len(args) == 0 {
				return fmt.Errorf("either a dungeon slug or --config is required")
			}

			var cfg *generator.DungeonFarmerConfig
			if opts.config != "" {
				loaded, err := generator.LoadDungeonFarmerConfig(opts.config)
				if err != nil {
					return err
				}
				cfg = loaded
			} else {
				cfg = &generator.DungeonFarmerConfig{
					Dungeon:  args[0],
					Name:     name,
					ClearAll: clearAll,
				}
			}
			return c.runGenerateDungeon(cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML farm config (overrides the slug)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <name>.json)")
	cmd.Flags().StringVar(&opts.dataDir, "data", "data", "reference data directory")
	cmd.Flags().BoolVar(&clearAll, "clear-all", false, "clear the full enemy roster before the boss")
	cmd.Flags().StringVar(&name, "name", "", "state name (default: derived from the slug)")

	return cmd
}

func (c *CLI) runGenerateRealm(opts *generateOpts) error {
	p := newProgress(c.Logger)

	cfg, err := generator.LoadRealmFarmerConfig(opts.config)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded config %s", opts.config)

	entities, err := c.loadEntities(opts.dataDir)
	if err != nil {
		return err
	}

	g, err := generator.GenerateRealmFarmer(cfg, entities)
	if err != nil {
		return err
	}

	return c.writeWorkflow(g, cfg.Name, opts.output, p)
}

func (c *CLI) runGenerateDungeon(cfg *generator.DungeonFarmerConfig, opts *generateOpts) error {
	p := newProgress(c.Logger)

	entities, err := c.loadEntities(opts.dataDir)
	if err != nil {
		return err
	}
	dungeons, err := loadDungeonIndex(opts.dataDir)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded %d dungeons", dungeons.Len())

	g, err := generator.GenerateDungeonFarmer(cfg, dungeons, entities)
	if err != nil {
		return err
	}

	return c.writeWorkflow(g, cfg.StateName(), opts.output, p)
}

// loadEntities loads the entity index, warning rather than failing when
// the data directory is absent so fully id-based configs keep working.
func (c *CLI) loadEntities(dataDir string) (*index.EntityIndex, error) {
	entities, err := loadEntityIndex(dataDir)
	if err != nil {
		return nil, err
	}
	if entities.Len() == 0 {
		printWarning("no reference data under %s; named entities will not resolve", dataDir)
	} else {
		c.Logger.Debugf("Loaded %d entities", entities.Len())
	}
	return entities, nil
}

func (c *CLI) writeWorkflow(g *workflow.Graph, name, output string, p *progress) error {
	if output == "" {
		output = name + ".json"
	}
	if err := wire.WriteFile(g, output); err != nil {
		return err
	}

	p.done("Generated workflow")
	printSuccess("Generated %s", name)
	printFile(output)
	printStats(g.NodeCount(), g.LinkCount())
	printNextStep("Preview it", "stategraph render "+output)
	return nil
}
