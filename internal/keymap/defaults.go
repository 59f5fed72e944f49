package keymap

// DefaultShortcuts is the stock fintrax table. Every combo tuple must be
// unique across enabled entries; NewRegistry enforces this at startup.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{ID: "go-dashboard", Key: "h", Description: "Go to dashboard", Category: CategoryNavigation},
		{ID: "go-projects", Key: "p", Description: "Go to projects", Category: CategoryNavigation},
		{ID: "go-tasks", Key: "t", Description: "Go to tasks", Category: CategoryNavigation},
		{ID: "go-finance", Key: "f", Description: "Go to finance", Category: CategoryNavigation},

		{ID: "new-task", Key: "n", Description: "New task", Category: CategoryActions},
		{ID: "export-backup", Key: "e", Description: "Export backup", Category: CategoryActions},
		{ID: "import-backup", Key: "i", Description: "Import backup", Category: CategoryActions},
		{ID: "save", Key: "s", Ctrl: true, Description: "Save changes", Category: CategoryActions},

		{ID: "toggle-view", Key: "v", Description: "Toggle board view", Category: CategoryViews},
		{ID: "command-palette", Key: "p", Meta: true, Shift: true, Description: "Command palette", Category: CategoryViews},

		{ID: "help", Key: "?", Description: "Show shortcuts", Category: CategoryModals},
		{ID: "close", Key: "escape", Description: "Close modal", Category: CategoryModals},

		{ID: "quit", Key: "q", Description: "Quit", Category: CategoryGeneral},
		{ID: "quit-hard", Key: "c", Ctrl: true, Description: "Quit", Category: CategoryGeneral},
	}
}
