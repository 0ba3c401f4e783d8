package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/trackhub/pkg/trackhub"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the kind, track settings and file paths to node labels.
	// When false, only the component ID is shown.
	Detailed bool
}

// ToDOT converts the tree rooted at root to Graphviz DOT format.
// Node identifiers are assigned in pre-order, so the same tree always
// produces the same DOT source.
func ToDOT(root trackhub.Component, opts Options) string {
	var nodes, edges bytes.Buffer
	ids := make(map[trackhub.Component]string)

	_ = trackhub.Walk(root, func(c trackhub.Component, _ int) error {
		id := "n" + strconv.Itoa(len(ids))
		ids[c] = id
		fmt.Fprintf(&nodes, "  %s [%s];\n", id, strings.Join(fmtAttrs(c, fmtLabel(c, opts.Detailed)), ", "))
		if p := c.Parent(); p != nil {
			if pid, ok := ids[p]; ok {
				fmt.Fprintf(&edges, "  %s -> %s;\n", pid, id)
			}
		}
		return nil
	})

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	buf.Write(nodes.Bytes())
	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c trackhub.Component, detailed bool) string {
	if !detailed {
		return c.ID()
	}

	parts := []string{c.ID(), c.Kind().String()}
	switch c := c.(type) {
	case *trackhub.Track:
		parts = append(parts, "type: "+c.TrackType, "url: "+c.URL)
	case *trackhub.ViewTrack:
		parts = append(parts, "view: "+c.View, "type: "+c.TrackType)
	case *trackhub.CompositeTrack:
		parts = append(parts, "type: "+c.TrackType)
	}
	if fc, ok := trackhub.AsFile(c); ok {
		if fn, err := fc.LocalFn(); err == nil {
			parts = append(parts, "file: "+fn)
		}
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(c trackhub.Component, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if _, ok := trackhub.AsFile(c); ok {
		attrs = append(attrs, "shape=note", "style=filled", "fillcolor=lightyellow")
		return attrs
	}
	switch c.Kind() {
	case trackhub.KindCompositeTrack:
		attrs = append(attrs, "fillcolor=lightblue")
	case trackhub.KindViewTrack:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=aliceblue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
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

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// viewBox starts at the origin so the SVG scales in a browser.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
