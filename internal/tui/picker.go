package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1001pranav/fintrax/internal/backup"
)

type fileItem struct {
	name string
}

func (f fileItem) Title() string       { return f.name }
func (f fileItem) Description() string { return "" }
func (f fileItem) FilterValue() string { return f.name }

type fileItemDelegate struct{}

func (d fileItemDelegate) Height() int  { return 1 }
func (d fileItemDelegate) Spacing() int { return 0 }
func (d fileItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}
func (d fileItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(fileItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = "> "
	}
	fmt.Fprint(w, prefix+entry.name)
}

func newFileList() list.Model {
	l := list.New([]list.Item{}, fileItemDelegate{}, 40, 10)
	l.Title = "Backups"
	l.Styles.Title = titleStyle
	l.Styles.NoItems = lipgloss.NewStyle()
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// loadBackupFilesCmd returns a Bubble Tea command that scans dir for backup
// bundles and per-collection CSV files.
func loadBackupFilesCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return filesLoadedMsg{err: fmt.Errorf("read dir: %w", err)}
		}
		var items []list.Item
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			lower := strings.ToLower(name)
			if strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".csv") {
				items = append(items, fileItem{name: name})
			}
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].(fileItem).name < items[j].(fileItem).name
		})
		return filesLoadedMsg{items: items}
	}
}

// typeFromFilename recovers the collection name from an exported CSV
// filename such as "fintrax-tasks-2026-08-29.csv". Returns "" when the name
// does not carry a known collection.
func typeFromFilename(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(base, "-")
	if len(parts) < 2 || parts[0] != "fintrax" {
		return ""
	}
	if backup.KnownType(parts[1]) {
		return parts[1]
	}
	return ""
}
