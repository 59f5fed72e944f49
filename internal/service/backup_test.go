package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/1001pranav/fintrax/internal/backup"
	"github.com/1001pranav/fintrax/internal/database"
	"github.com/1001pranav/fintrax/internal/database/repository"
)

func newTestService(t *testing.T) *BackupService {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))

	return &BackupService{
		Projects:     repository.NewProjectRepo(db),
		Roadmaps:     repository.NewRoadmapRepo(db),
		Tasks:        repository.NewTaskRepo(db),
		Transactions: repository.NewTransactionRepo(db),
		Savings:      repository.NewSavingRepo(db),
		Loans:        repository.NewLoanRepo(db),
	}
}

func TestImportBundleIntoDatabase(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	svc := newTestService(t)

	bundle := backup.Bundle{
		Metadata: backup.Metadata{ExportDate: "2024-06-01T00:00:00Z", Version: backup.Version},
		Data: map[string][]backup.Record{
			"projects": {
				{"project_id": "p1", "name": "Fintrax", "status": "active"},
			},
			"tasks": {
				{"title": "ship backup", "project_id": "p1", "due_days": float64(3)},
				{"description": "invalid, no title"},
			},
			"loans": {
				{"name": "car", "total_amount": float64(9000), "duration_months": float64(36)},
			},
		},
	}
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)

	res, err := backup.ImportCompleteBackup(ctx, strings.NewReader(string(raw)), svc.Importers())
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, map[string]int{"projects": 1, "tasks": 1, "loans": 1}, res.Imported)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "tasks[1]")

	tasks, err := svc.Tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "ship backup", tasks[0].Title)
	require.NotEmpty(t, tasks[0].ID, "missing id must be assigned")
	require.Equal(t, int64(3), tasks[0].DueDays)
	require.NotEmpty(t, tasks[0].CreatedAt)

	loans, err := svc.Loans.List(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.Equal(t, 9000.0, loans[0].TotalAmount)
	require.Equal(t, int64(36), loans[0].DurationMonths)
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	src := newTestService(t)

	require.NoError(t, src.Projects.Insert(ctx, repository.Project{
		ID: "p1", Name: "Fintrax", Status: "active",
		CreatedAt: database.Now(), UpdatedAt: database.Now(),
	}))
	require.NoError(t, src.Transactions.Insert(ctx, repository.Transaction{
		ID: "t1", Name: "groceries, weekly", Amount: 42.5, Type: "expense",
		Date: "2024-05-30", CreatedAt: database.Now(), UpdatedAt: database.Now(),
	}))
	require.NoError(t, src.Savings.Insert(ctx, repository.Saving{
		ID: "s1", Source: "bank", Amount: 1000, InterestRate: 4.1,
		CreatedAt: database.Now(), UpdatedAt: database.Now(),
	}))

	dir := t.TempDir()
	e := &backup.Exporter{Fetchers: src.Fetchers(), Saver: backup.DirSaver{Dir: dir}}
	name, err := e.ExportCompleteBackup(ctx)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	dst := newTestService(t)
	res, err := backup.ImportCompleteBackup(ctx, f, dst.Importers())
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Empty(t, res.Errors)
	require.Equal(t, map[string]int{"projects": 1, "transactions": 1, "savings": 1}, res.Imported)

	txs, err := dst.Transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "groceries, weekly", txs[0].Name)
	require.Equal(t, 42.5, txs[0].Amount)
}

func TestImportIndividualCSVIntoDatabase(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	svc := newTestService(t)

	headers, err := backup.HeadersFor(backup.TypeTransactions)
	require.NoError(t, err)
	text := backup.ToCSV([]backup.Record{
		{"name": "rent", "amount": 1800, "transaction_type": "expense", "date": "2024-06-01"},
		{"name": "", "amount": 10},
	}, headers)

	res, err := backup.ImportIndividualCSV(ctx, strings.NewReader(text), backup.TypeTransactions,
		svc.Importers()[backup.TypeTransactions])
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 1, res.Imported[backup.TypeTransactions])
	require.Len(t, res.Errors, 1)

	txs, err := svc.Transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "rent", txs[0].Name)
	require.Equal(t, 1800.0, txs[0].Amount)
}
