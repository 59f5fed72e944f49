package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1001pranav/fintrax/internal/backup"
	"github.com/1001pranav/fintrax/internal/config"
	"github.com/1001pranav/fintrax/internal/database"
	"github.com/1001pranav/fintrax/internal/database/repository"
	"github.com/1001pranav/fintrax/internal/keymap"
	"github.com/1001pranav/fintrax/internal/service"
	"github.com/1001pranav/fintrax/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := os.MkdirAll(cfg.Backup.Dir, 0o755); err != nil {
		log.Fatalf("mkdir backup dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// repositories
	repos := tui.Repos{
		Projects:     repository.NewProjectRepo(db),
		Roadmaps:     repository.NewRoadmapRepo(db),
		Tasks:        repository.NewTaskRepo(db),
		Transactions: repository.NewTransactionRepo(db),
		Savings:      repository.NewSavingRepo(db),
		Loans:        repository.NewLoanRepo(db),
	}

	backups := &service.BackupService{
		Projects:     repos.Projects,
		Roadmaps:     repos.Roadmaps,
		Tasks:        repos.Tasks,
		Transactions: repos.Transactions,
		Savings:      repos.Savings,
		Loans:        repos.Loans,
	}

	exporter := &backup.Exporter{
		Fetchers:  backups.Fetchers(),
		Saver:     backup.DirSaver{Dir: cfg.Backup.Dir},
		UserEmail: cfg.Backup.UserEmail,
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		log.Fatalf("shortcuts: %v", err)
	}

	p := tea.NewProgram(tui.New(ctx, cfg, repos, backups, exporter, registry), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// buildRegistry assembles the shortcut table from the defaults plus any
// rebinds declared in the config file.
func buildRegistry(cfg config.Config) (*keymap.Registry, error) {
	registry, err := keymap.NewRegistry(keymap.DefaultShortcuts())
	if err != nil {
		return nil, err
	}
	overrides := make([]keymap.Override, 0, len(cfg.Shortcuts))
	for _, o := range cfg.Shortcuts {
		ev := keymap.ParseKey(o.Combo)
		overrides = append(overrides, keymap.Override{
			ID:    o.ID,
			Key:   ev.Key,
			Ctrl:  ev.Ctrl,
			Alt:   ev.Alt,
			Shift: ev.Shift,
			Meta:  ev.Meta,
		})
	}
	if err := registry.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	return registry, nil
}
