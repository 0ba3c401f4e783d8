package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	herrors "github.com/matzehuels/trackhub/pkg/errors"
)

// previewCommand creates the preview command for browsing rendered files.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [manifest]",
		Short: "Browse the rendered hub files without writing them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manifestArg(args)
			uhub, err := c.loadHub(path, "")
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			plan, err := uhub.Hub().Plan()
			if err != nil {
				printError("%s", herrors.UserMessage(err))
				return fmt.Errorf("render %s: %w", path, err)
			}

			p := tea.NewProgram(NewPreviewModel(plan.Files), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
