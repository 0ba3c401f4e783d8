package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
	hubio "github.com/matzehuels/trackhub/pkg/io"
	"github.com/matzehuels/trackhub/pkg/render/nodelink"
	"github.com/matzehuels/trackhub/pkg/trackhub"
)

const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file, "-" for stdout
	format   string // "svg", "dot" or "json"
	detailed bool   // show kinds, track settings and file paths
}

// graphCommand creates the graph command for drawing the component tree.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "graph [manifest]",
		Short: "Draw the hub's component tree with Graphviz",
		Long: `Draw the hub's component tree with Graphviz.

Files owned by the hub (hub.txt, genomes.txt, trackDb files) are drawn as
notes; composite and view tracks are shaded. The default output is
<hub>.svg next to the manifest; use -o - to write to stdout.

The json format writes the tree as nodes and edges for other tools.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateGraphFormat(opts.format); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), manifestArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, json")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show kinds, track settings and file paths")

	return cmd
}

func validateGraphFormat(f string) error {
	switch f {
	case formatDOT, formatSVG, formatJSON:
		return nil
	}
	return herrors.New(herrors.ErrCodeInvalidFormat, "invalid format %q: must be %s, %s or %s", f, formatSVG, formatDOT, formatJSON)
}

func (c *CLI) runGraph(ctx context.Context, path string, opts graphOpts) error {
	uhub, err := c.loadHub(path, "")
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	data, err := renderGraph(ctx, uhub.Hub(), opts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = uhub.Hub().Name + "." + opts.format
	}
	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := afero.WriteFile(c.fs, output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Generated graph")
	printFile(output)
	return nil
}

func renderGraph(ctx context.Context, root trackhub.Component, opts graphOpts) ([]byte, error) {
	if opts.format == formatJSON {
		var buf bytes.Buffer
		if err := hubio.WriteJSON(root, &buf); err != nil {
			return nil, fmt.Errorf("export graph: %w", err)
		}
		return buf.Bytes(), nil
	}

	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: opts.detailed})
	if opts.format == formatDOT {
		return []byte(dot), nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()
	data, err := nodelink.RenderSVG(dot)
	if err != nil {
		spinner.StopWithError("Graph rendering failed")
		return nil, fmt.Errorf("render graph: %w", err)
	}
	spinner.Stop()
	return data, nil
}
