package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/trackhub/pkg/trackhub"
)

func previewFiles() []trackhub.File {
	var long strings.Builder
	for i := 0; i < 30; i++ {
		long.WriteString("track t\n")
	}
	return []trackhub.File{
		{Path: "hub/hub.txt", Kind: trackhub.KindHub, Content: []byte("hub test\nshortLabel Test\n")},
		{Path: "hub/hg18/trackDb.XX.txt", Kind: trackhub.KindTrackDb, Content: []byte(long.String())},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m PreviewModel, keys ...string) PreviewModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(PreviewModel)
	}
	return m
}

func TestPreviewNavigation(t *testing.T) {
	m := NewPreviewModel(previewFiles())

	m = update(m, "down")
	if m.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.Cursor)
	}
	m = update(m, "down")
	if m.Cursor != 1 {
		t.Errorf("cursor moved past the last file: %d", m.Cursor)
	}

	m = update(m, "f")
	if m.Scroll != 10 {
		t.Errorf("scroll = %d, want 10 (30 lines, 20 shown)", m.Scroll)
	}
	m = update(m, "up")
	if m.Cursor != 0 || m.Scroll != 0 {
		t.Errorf("cursor, scroll = %d, %d, want 0, 0", m.Cursor, m.Scroll)
	}
}

func TestPreviewView(t *testing.T) {
	m := NewPreviewModel(previewFiles())
	view := m.View()

	for _, want := range []string{"hub/hub.txt", "hub/hg18/trackDb.XX.txt", "shortLabel Test", "lines 1-2 of 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPreviewQuit(t *testing.T) {
	_, cmd := NewPreviewModel(previewFiles()).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestPreviewEmpty(t *testing.T) {
	if !strings.Contains(NewPreviewModel(nil).View(), "no files") {
		t.Error("empty preview should say so")
	}
}
