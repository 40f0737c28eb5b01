package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stategraph/pkg/workflow"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes config payloads in node labels and pin names on
	// edges. When false, only node kinds are shown.
	Detailed bool
}

// ToDOT converts a workflow graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes are labeled with their kind (plus a config summary when
// detailed); execution links draw solid, data links dashed.
func ToDOT(g *workflow.Graph, opts Options) string {
	nodes := g.Nodes()

	// Pin id -> owning node index and pin, for edge endpoints and
	// styling.
	type pinRef struct {
		node int
		pin  workflow.Pin
	}
	byPin := make(map[int]pinRef)
	for i, n := range nodes {
		for _, p := range n.InPins {
			byPin[p.ID] = pinRef{node: i, pin: p}
		}
		for _, p := range n.OutPins {
			byPin[p.ID] = pinRef{node: i, pin: p}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph W {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, n := range nodes {
		label := fmtLabel(n, opts.Detailed)
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", i, label)
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		left, okL := byPin[l.LeftPinID]
		right, okR := byPin[l.RightPinID]
		if !okL || !okR {
			continue
		}

		var attrs []string
		if left.pin.Type != workflow.Execution {
			attrs = append(attrs, "style=dashed", "color=grey40")
		}
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", left.pin.Name+" > "+right.pin.Name), "fontsize=9")
		}

		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", left.node, right.node, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", left.node, right.node)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *workflow.Node, detailed bool) string {
	label := string(n.Kind)
	if !detailed {
		return label
	}
	if summary := configSummary(n.Config); summary != "" {
		label += "\n" + summary
	}
	return label
}

// configSummary renders the interesting part of a node's config payload
// for detailed labels. Kinds with no payload, or none worth showing,
// yield an empty string.
func configSummary(c workflow.Config) string {
	switch cfg := c.(type) {
	case *workflow.StartConfig:
		return "state: " + cfg.Name
	case *workflow.PushConfig:
		return "push: " + cfg.Target
	case *workflow.WaitConfig:
		return fmt.Sprintf("%d ms", cfg.WaitMillis)
	case *workflow.MapChangeConfig:
		return "map: " + cfg.MapName
	case *workflow.EnemyListConfig:
		if len(cfg.EnemyIDs) == 1 {
			return fmt.Sprintf("id %d", cfg.EnemyIDs[0])
		}
		return fmt.Sprintf("%d ids", len(cfg.EnemyIDs))
	case *workflow.PointConfig:
		return fmt.Sprintf("(%.1f, %.1f)", cfg.Point.X, cfg.Point.Y)
	case *workflow.PointListConfig:
		return fmt.Sprintf("%d points", len(cfg.Points))
	case *workflow.ComparisonConfig:
		return fmt.Sprintf("cmp %d, %g", cfg.ComparisonType, cfg.Value)
	case *workflow.UseItemConfig:
		return fmt.Sprintf("item %d", cfg.ItemID)
	case *workflow.SendMessageConfig:
		return "msg: " + cfg.Message
	case *workflow.OffsetPosConfig:
		return fmt.Sprintf("offset %g", cfg.Distance)
	default:
		return ""
	}
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz
// engine. The returned bytes are ready for display or conversion with
// [ToPDF] or [ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element with a zero-origin
// viewBox so embedding contexts scale it predictably.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
