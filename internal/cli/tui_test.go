package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestListDatasets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c_memorable_moments.txt", "a_example.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := listDatasets(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "a_example" || got[1].Name != "c_memorable_moments" {
		t.Errorf("listDatasets() = %+v", got)
	}
	if got[0].Size != 2 {
		t.Errorf("size = %d, want 2", got[0].Size)
	}
}

func TestListDatasetsMissingDir(t *testing.T) {
	if _, err := listDatasets(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("listDatasets(missing) succeeded")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDatasetListModel(t *testing.T) {
	datasets := []Dataset{
		{Name: "a_example", ModTime: time.Now()},
		{Name: "b_lovely_landscapes", ModTime: time.Now()},
		{Name: "c_memorable_moments", ModTime: time.Now()},
	}
	var m tea.Model = NewDatasetListModel(datasets)

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("down")) // clamped at the last row
	m, _ = m.Update(key("k"))
	if got := m.(DatasetListModel).Cursor; got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}

	view := m.View()
	for _, d := range datasets {
		if !strings.Contains(view, d.Name) {
			t.Errorf("view missing %q", d.Name)
		}
	}
	if !strings.Contains(view, "[2/3]") {
		t.Errorf("view missing position:\n%s", view)
	}

	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Error("enter should quit the program")
	}
	sel := m.(DatasetListModel).Selected
	if sel == nil || sel.Name != "b_lovely_landscapes" {
		t.Errorf("selected = %+v", sel)
	}
}

func TestDatasetListModelQuit(t *testing.T) {
	var m tea.Model = NewDatasetListModel([]Dataset{{Name: "a"}})
	m, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Error("q should quit the program")
	}
	if m.(DatasetListModel).Selected != nil {
		t.Error("quit should not select")
	}
}

func TestDatasetListModelScroll(t *testing.T) {
	datasets := make([]Dataset, 10)
	for i := range datasets {
		datasets[i] = Dataset{Name: string(rune('a' + i))}
	}
	var m tea.Model = NewDatasetListModel(datasets)
	m, _ = m.Update(tea.WindowSizeMsg{Height: 8})
	for range 7 {
		m, _ = m.Update(key("down"))
	}
	dm := m.(DatasetListModel)
	if dm.Height != 5 || dm.Offset != 3 {
		t.Errorf("height/offset = %d/%d, want 5/3", dm.Height, dm.Offset)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	if got := formatRelativeTime(time.Now().Add(-90 * time.Minute)); got != "1h ago" {
		t.Errorf("formatRelativeTime(-90m) = %q", got)
	}
	old := time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := formatRelativeTime(old); got != "Mar 4, 2020" {
		t.Errorf("formatRelativeTime(2020) = %q", got)
	}
}
