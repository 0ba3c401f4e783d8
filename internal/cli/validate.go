package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check a manifest without writing files",
		Long: `Check a manifest without writing files.

The manifest is decoded, its hub tree is built and validated, and every
file path and body is computed. A manifest that validates can only fail to
build on I/O errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(manifestArg(args))
		},
	}
}

func (c *CLI) runValidate(path string) error {
	uhub, err := c.loadHub(path, "")
	if err != nil {
		printError("%s", herrors.UserMessage(err))
		return fmt.Errorf("load %s: %w", path, err)
	}

	plan, err := uhub.Hub().Plan()
	if err != nil {
		printError("[%s] %s", herrors.GetCode(err), herrors.UserMessage(err))
		return fmt.Errorf("validate %s: %w", path, err)
	}

	printSuccess("%s is valid", StyleHighlight.Render(path))
	printHubStats(len(uhub.GenomeHubs()), countTracks(uhub.Hub()), len(plan.Files), true)
	for _, d := range plan.DataDirs {
		printDetail("data dir %s", d)
	}
	return nil
}
