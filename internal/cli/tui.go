package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/trackhub/pkg/trackhub"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	contentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// PreviewModel - Browse rendered files
// =============================================================================

// PreviewModel is the bubbletea model for browsing the files of a rendered
// hub: the file list on top, the selected file's content below.
type PreviewModel struct {
	Files  []trackhub.File
	Cursor int
	Scroll int // first content line shown
	Height int // content lines shown
}

// NewPreviewModel creates a preview of files.
func NewPreviewModel(files []trackhub.File) PreviewModel {
	return PreviewModel{Files: files, Height: 20}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Scroll = 0
			}
		case "down", "j", "tab":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				m.Scroll = 0
			}
		case "pgdown", "f", " ":
			m.Scroll = min(m.Scroll+m.Height, m.maxScroll())
		case "pgup", "b":
			m.Scroll = max(m.Scroll-m.Height, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-len(m.Files)-8, 5)
		m.Scroll = min(m.Scroll, m.maxScroll())
	}
	return m, nil
}

func (m PreviewModel) lines() []string {
	if len(m.Files) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(m.Files[m.Cursor].Content), "\n"), "\n")
}

func (m PreviewModel) maxScroll() int {
	return max(len(m.lines())-m.Height, 0)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rendered Files"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ file  space/b scroll  q quit"))
	b.WriteString("\n\n")

	if len(m.Files) == 0 {
		b.WriteString(listDimStyle.Render("  no files"))
		return b.String()
	}

	for i, f := range m.Files {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("%s%-40s %s", cursor, f.Path, listDimStyle.Render(f.Kind.String()))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	lines := m.lines()
	end := min(m.Scroll+m.Height, len(lines))
	b.WriteString(contentStyle.Render(strings.Join(lines[m.Scroll:end], "\n")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  lines %d-%d of %d", m.Scroll+1, end, len(lines))))

	return b.String()
}
