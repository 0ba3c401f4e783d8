// Package render holds visual renderings of a hub's component tree.
//
// The [nodelink] subpackage draws the tree as a Graphviz node-link diagram:
//
//	dot := nodelink.ToDOT(hub, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/matzehuels/trackhub/pkg/render/nodelink
package render
