package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stategraph/pkg/index"
)

// inspectCommand creates the inspect command with its dungeon and
// entity subcommands for browsing the reference data.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the reference data",
	}

	cmd.AddCommand(c.inspectDungeonCommand())
	cmd.AddCommand(c.inspectEntityCommand())

	return cmd
}

func (c *CLI) inspectDungeonCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "dungeon [slug]",
		Short: "Show a dungeon's roster, or list all dungeons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dungeons, err := loadDungeonIndex(dataDir)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return listDungeons(dungeons)
			}
			return showDungeon(dungeons, args[0])
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "data", "reference data directory")

	return cmd
}

func (c *CLI) inspectEntityCommand() *cobra.Command {
	var dataDir string
	var limit int

	cmd := &cobra.Command{
		Use:   "entity [query]",
		Short: "Search entities by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := loadEntityIndex(dataDir)
			if err != nil {
				return err
			}
			return searchEntities(entities, args[0], limit)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "data", "reference data directory")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")

	return cmd
}

func listDungeons(dungeons *index.DungeonIndex) error {
	all := dungeons.Dungeons()
	if len(all) == 0 {
		printWarning("no dungeons in the reference data")
		return nil
	}

	fmt.Println(StyleTitle.Render("Dungeons"))
	for _, d := range all {
		line := d.Slug
		if d.Difficulty != "" {
			line += " " + StyleDim.Render("("+d.Difficulty+")")
		}
		printDetail("%s", line)
	}
	printDetail("%d total", len(all))
	return nil
}

func showDungeon(dungeons *index.DungeonIndex, slug string) error {
	d, err := dungeons.Dungeon(slug)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(d.Name))
	printKeyValue("slug", d.Slug)
	if d.Difficulty != "" {
		printKeyValue("difficulty", d.Difficulty)
	}
	if d.PortalID != 0 {
		printKeyValue("portal", strconv.Itoa(d.PortalID))
	}
	if d.Boss != nil {
		printKeyValue("boss", fmt.Sprintf("%s (%d)", d.Boss.Name, d.Boss.ID))
	}

	if len(d.Enemies) > 0 {
		printInfo("Enemies")
		for _, e := range d.Enemies {
			line := fmt.Sprintf("%s (%d)", e.Name, e.ID)
			if e.Category != "" && e.Category != "enemy" {
				line += " " + StyleDim.Render(e.Category)
			}
			printDetail("%s", line)
		}
	}

	if len(d.PortalDroppedBy) > 0 {
		printInfo("Portal dropped by")
		for _, p := range d.PortalDroppedBy {
			line := fmt.Sprintf("%s (%d)", p.Name, p.ID)
			if p.Biome != "" {
				line += " " + StyleDim.Render("in "+p.Biome)
			}
			if p.Guaranteed {
				line += " " + StyleWarning.Render("guaranteed")
			}
			printDetail("%s", line)
		}
	}
	return nil
}

func searchEntities(entities *index.EntityIndex, query string, limit int) error {
	results := entities.Search(query, limit)
	if len(results) == 0 {
		printWarning("no entities matching %q", query)
		return nil
	}

	for _, e := range results {
		line := fmt.Sprintf("%s (%d) %s", e.Name, e.ID, StyleDim.Render(e.Type))
		switch {
		case e.Dungeon != "":
			line += " " + StyleDim.Render("in "+e.Dungeon)
		case e.Biome != "":
			line += " " + StyleDim.Render("in "+e.Biome)
		}
		printDetail("%s", line)
	}
	printDetail("%d results", len(results))
	return nil
}
