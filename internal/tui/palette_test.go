package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/1001pranav/fintrax/internal/keymap"
)

func TestRankShortcutsEmptyQueryKeepsOrder(t *testing.T) {
	defs := keymap.DefaultShortcuts()
	ranked := rankShortcuts("", defs)
	require.Len(t, ranked, len(defs))
	require.Equal(t, defs[0].ID, ranked[0].ID)
}

func TestRankShortcutsSubstring(t *testing.T) {
	ranked := rankShortcuts("export", keymap.DefaultShortcuts())
	require.NotEmpty(t, ranked)
	require.Equal(t, "export-backup", ranked[0].ID)
}

func TestRankShortcutsToleratesTypo(t *testing.T) {
	ranked := rankShortcuts("exprot", keymap.DefaultShortcuts())
	require.NotEmpty(t, ranked)
	require.Equal(t, "export-backup", ranked[0].ID)
}

func TestRankShortcutsSkipsDisabled(t *testing.T) {
	defs := []keymap.Shortcut{
		{ID: "a", Key: "a", Description: "Alpha", Category: keymap.CategoryGeneral, Disabled: true},
		{ID: "b", Key: "b", Description: "Alpha beta", Category: keymap.CategoryGeneral},
	}
	ranked := rankShortcuts("alpha", defs)
	require.Len(t, ranked, 1)
	require.Equal(t, "b", ranked[0].ID)
}

func TestTypeFromFilename(t *testing.T) {
	require.Equal(t, "tasks", typeFromFilename("/backups/fintrax-tasks-2026-08-29.csv"))
	require.Equal(t, "savings", typeFromFilename("fintrax-savings-2026-08-29.csv"))
	require.Equal(t, "", typeFromFilename("notes.csv"))
	require.Equal(t, "", typeFromFilename("fintrax-unknown-2026-08-29.csv"))
}
