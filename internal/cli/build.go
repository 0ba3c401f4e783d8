package cli

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
	"github.com/matzehuels/trackhub/pkg/trackhub"
)

// buildCommand creates the build command for rendering a hub.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "build [manifest]",
		Short: "Render a hub from a manifest",
		Long: `Render a hub from a manifest.

The whole hub tree is validated before anything is written, so an invalid
manifest leaves the output directory untouched. Existing files are
overwritten; data directories for each trackDb are created if missing.

With --dry-run the hub is rendered in memory and only the file list is
shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), manifestArg(args), output, dryRun)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (overrides [hub] output)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "render in memory without writing files")

	return cmd
}

// runBuild loads the manifest and renders the hub.
func (c *CLI) runBuild(ctx context.Context, path, output string, dryRun bool) error {
	prog := newProgress(c.Logger)

	uhub, err := c.loadHub(path, output)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	fs := c.fs
	if dryRun {
		fs = afero.NewMemMapFs()
	}

	paths, err := uhub.Render(ctx, fs)
	if err != nil {
		printError("%s", herrors.UserMessage(err))
		return fmt.Errorf("render %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Rendered %d files", len(paths)))

	printSuccess("Hub %s", StyleHighlight.Render(uhub.Hub().Name))
	printHubStats(len(uhub.GenomeHubs()), countTracks(uhub.Hub()), len(paths), dryRun)
	for _, p := range paths {
		printFile(p)
	}
	if dryRun {
		return nil
	}

	printNewline()
	printNextStep("Serve it to the browser", "trackhub serve "+hubDir(uhub))
	return nil
}

// countTracks returns the number of leaf tracks below c.
func countTracks(c trackhub.Component) int {
	n := 0
	_ = trackhub.Walk(c, func(c trackhub.Component, _ int) error {
		if c.Kind() == trackhub.KindTrack {
			n++
		}
		return nil
	})
	return n
}
