package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trackhub/pkg/trackhub"
)

// treeCommand creates the tree command for listing a hub's components.
func (c *CLI) treeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [manifest]",
		Short: "Show the hub's component tree as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manifestArg(args)
			uhub, err := c.loadHub(path, "")
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			fmt.Println(treeTable(uhub.Hub()).Render())
			return nil
		},
	}
}

// treeRows returns one row per component in pre-order: indented ID, kind,
// file path and a short description of track settings. Paths that cannot
// be resolved yet are shown as "—".
func treeRows(root trackhub.Component) [][]string {
	var rows [][]string
	_ = trackhub.Walk(root, func(c trackhub.Component, depth int) error {
		file := ""
		if fc, ok := trackhub.AsFile(c); ok {
			file = "—"
			if fn, err := fc.LocalFn(); err == nil {
				file = fn
			}
		}
		rows = append(rows, []string{
			strings.Repeat("  ", depth) + c.ID(),
			c.Kind().String(),
			file,
			describe(c),
		})
		return nil
	})
	return rows
}

func describe(c trackhub.Component) string {
	switch c := c.(type) {
	case *trackhub.Track:
		return c.TrackType + " " + c.URL
	case *trackhub.ViewTrack:
		return fmt.Sprintf("%s view, %d tracks", c.View, len(c.Tracks()))
	case *trackhub.CompositeTrack:
		return fmt.Sprintf("%d views", len(c.Views()))
	}
	return ""
}

func treeTable(root trackhub.Component) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := treeRows(root)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Component", "Kind", "File", "Details").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if row >= len(rows) {
				return base
			}
			switch col {
			case 0:
				if rows[row][2] != "" {
					return base.Foreground(colorCyan)
				}
				return base.Foreground(colorWhite)
			case 2:
				return base.Foreground(colorBlue)
			}
			return base.Foreground(colorDim)
		})
}
