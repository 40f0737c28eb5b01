// Package render draws workflow graphs as Graphviz node-link diagrams.
//
// [ToDOT] converts a graph to DOT source; [RenderSVG] rasterizes DOT
// through the embedded Graphviz engine. Execution links draw solid,
// data links dashed.
//
//	dot := render.ToDOT(g, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(dot)
//
// [ToPDF] and [ToPNG] convert the SVG further using the external
// rsvg-convert tool (from librsvg).
package render
