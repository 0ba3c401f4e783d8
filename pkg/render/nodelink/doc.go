// Package nodelink renders a hub's component tree as a node-link diagram.
//
// # Overview
//
// Every component becomes a box and every parent/child link an arrow, top
// to bottom from hub.txt down to the leaf tracks. Components that own a
// file (hub, genomes file, trackDb root, trackDb) are drawn as notes;
// composite and view tracks are filled so the track family stands out.
//
// # Usage
//
//	dot := nodelink.ToDOT(hub, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Detailed: labels also show the component kind, the track type and
//     data URL of tracks, and the local path of file-owning components
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
