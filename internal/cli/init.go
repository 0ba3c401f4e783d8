package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trackhub/pkg/manifest"
)

// initCommand creates the init command for writing a starter manifest.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [manifest]",
		Short: "Write a starter hub manifest",
		Long: `Write a starter hub manifest.

The manifest describes one hub for hg18 with a ChIP-seq experiment and a
stranded GRO-seq experiment, each with a READ (bam) and a SIG (bigWig)
view. Edit it, then run 'build'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInit(manifestArg(args), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing manifest")

	return cmd
}

func (c *CLI) runInit(path string, force bool) error {
	exists, err := afero.Exists(c.fs, path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if exists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := afero.WriteFile(c.fs, path, manifest.Template(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Created %s", StyleHighlight.Render(path))
	printNextStep("Build the hub", "trackhub build "+path)
	return nil
}
