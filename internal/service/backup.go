// Package service wires the storage repositories to the backup pipeline's
// collaborator contracts: six fetchers feeding export and six importers
// consuming validated records.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/1001pranav/fintrax/internal/backup"
	"github.com/1001pranav/fintrax/internal/database"
	"github.com/1001pranav/fintrax/internal/database/repository"
)

// BackupService converts between typed rows and the loose records that
// cross the backup boundary. Conversion lives here so neither the
// repositories nor the pipeline know about each other's shapes.
type BackupService struct {
	Projects     *repository.ProjectRepo
	Roadmaps     *repository.RoadmapRepo
	Tasks        *repository.TaskRepo
	Transactions *repository.TransactionRepo
	Savings      *repository.SavingRepo
	Loans        *repository.LoanRepo
}

// Fetchers returns the per-collection export fetchers.
func (s *BackupService) Fetchers() backup.Fetchers {
	return backup.Fetchers{
		backup.TypeProjects: func(ctx context.Context) ([]backup.Record, error) {
			rows, err := s.Projects.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]backup.Record, 0, len(rows))
			for _, p := range rows {
				out = append(out, backup.Record{
					"project_id": p.ID, "name": p.Name, "description": p.Description,
					"status": p.Status, "start_date": p.StartDate, "end_date": p.EndDate,
					"created_at": p.CreatedAt, "updated_at": p.UpdatedAt,
				})
			}
			return out, nil
		},
		backup.TypeRoadmaps: func(ctx context.Context) ([]backup.Record, error) {
			rows, err := s.Roadmaps.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]backup.Record, 0, len(rows))
			for _, m := range rows {
				out = append(out, backup.Record{
					"roadmap_id": m.ID, "name": m.Name, "description": m.Description,
					"project_id": m.ProjectID, "status": m.Status,
					"created_at": m.CreatedAt, "updated_at": m.UpdatedAt,
				})
			}
			return out, nil
		},
		backup.TypeTasks: func(ctx context.Context) ([]backup.Record, error) {
			rows, err := s.Tasks.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]backup.Record, 0, len(rows))
			for _, t := range rows {
				out = append(out, backup.Record{
					"task_id": t.ID, "title": t.Title, "description": t.Description,
					"priority": t.Priority, "status": t.Status, "due_days": t.DueDays,
					"start_date": t.StartDate, "end_date": t.EndDate,
					"project_id": t.ProjectID, "roadmap_id": t.RoadmapID,
					"created_at": t.CreatedAt, "updated_at": t.UpdatedAt,
				})
			}
			return out, nil
		},
		backup.TypeTransactions: func(ctx context.Context) ([]backup.Record, error) {
			rows, err := s.Transactions.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]backup.Record, 0, len(rows))
			for _, t := range rows {
				out = append(out, backup.Record{
					"transaction_id": t.ID, "name": t.Name, "amount": t.Amount,
					"category": t.Category, "transaction_type": t.Type, "date": t.Date,
					"notes": t.Notes, "created_at": t.CreatedAt, "updated_at": t.UpdatedAt,
				})
			}
			return out, nil
		},
		backup.TypeSavings: func(ctx context.Context) ([]backup.Record, error) {
			rows, err := s.Savings.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]backup.Record, 0, len(rows))
			for _, v := range rows {
				out = append(out, backup.Record{
					"savings_id": v.ID, "source": v.Source, "amount": v.Amount,
					"interest_rate": v.InterestRate, "maturity_date": v.MaturityDate,
					"notes": v.Notes, "created_at": v.CreatedAt, "updated_at": v.UpdatedAt,
				})
			}
			return out, nil
		},
		backup.TypeLoans: func(ctx context.Context) ([]backup.Record, error) {
			rows, err := s.Loans.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]backup.Record, 0, len(rows))
			for _, l := range rows {
				out = append(out, backup.Record{
					"loan_id": l.ID, "name": l.Name, "total_amount": l.TotalAmount,
					"interest_rate": l.InterestRate, "emi": l.EMI,
					"duration_months": l.DurationMonths, "start_date": l.StartDate,
					"created_at": l.CreatedAt, "updated_at": l.UpdatedAt,
				})
			}
			return out, nil
		},
	}
}

// Importers returns the per-collection import functions. Records arrive
// pre-validated; ids are assigned when missing and timestamps stamped when
// absent, so CSV-sourced rows (all strings, no ids) insert cleanly.
func (s *BackupService) Importers() backup.Importers {
	return backup.Importers{
		backup.TypeProjects: func(ctx context.Context, records []backup.Record) error {
			for i, rec := range records {
				p := repository.Project{
					ID:          idOr(rec, "project_id"),
					Name:        str(rec, "name"),
					Description: str(rec, "description"),
					Status:      strOr(rec, "status", "active"),
					StartDate:   str(rec, "start_date"),
					EndDate:     str(rec, "end_date"),
					CreatedAt:   strOr(rec, "created_at", database.Now()),
					UpdatedAt:   strOr(rec, "updated_at", database.Now()),
				}
				if err := s.Projects.Insert(ctx, p); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}
			return nil
		},
		backup.TypeRoadmaps: func(ctx context.Context, records []backup.Record) error {
			for i, rec := range records {
				m := repository.Roadmap{
					ID:          idOr(rec, "roadmap_id"),
					Name:        str(rec, "name"),
					Description: str(rec, "description"),
					ProjectID:   str(rec, "project_id"),
					Status:      strOr(rec, "status", "active"),
					CreatedAt:   strOr(rec, "created_at", database.Now()),
					UpdatedAt:   strOr(rec, "updated_at", database.Now()),
				}
				if err := s.Roadmaps.Insert(ctx, m); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}
			return nil
		},
		backup.TypeTasks: func(ctx context.Context, records []backup.Record) error {
			for i, rec := range records {
				t := repository.Task{
					ID:          idOr(rec, "task_id"),
					Title:       str(rec, "title"),
					Description: str(rec, "description"),
					Priority:    strOr(rec, "priority", "low"),
					Status:      strOr(rec, "status", "todo"),
					DueDays:     integer(rec, "due_days"),
					StartDate:   str(rec, "start_date"),
					EndDate:     str(rec, "end_date"),
					ProjectID:   str(rec, "project_id"),
					RoadmapID:   str(rec, "roadmap_id"),
					CreatedAt:   strOr(rec, "created_at", database.Now()),
					UpdatedAt:   strOr(rec, "updated_at", database.Now()),
				}
				if err := s.Tasks.Insert(ctx, t); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}
			return nil
		},
		backup.TypeTransactions: func(ctx context.Context, records []backup.Record) error {
			for i, rec := range records {
				t := repository.Transaction{
					ID:        idOr(rec, "transaction_id"),
					Name:      firstText(rec, "name", "source"),
					Amount:    num(rec, "amount"),
					Category:  str(rec, "category"),
					Type:      strOr(rec, "transaction_type", "expense"),
					Date:      str(rec, "date"),
					Notes:     str(rec, "notes"),
					CreatedAt: strOr(rec, "created_at", database.Now()),
					UpdatedAt: strOr(rec, "updated_at", database.Now()),
				}
				if err := s.Transactions.Insert(ctx, t); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}
			return nil
		},
		backup.TypeSavings: func(ctx context.Context, records []backup.Record) error {
			for i, rec := range records {
				v := repository.Saving{
					ID:           idOr(rec, "savings_id"),
					Source:       firstText(rec, "source", "name"),
					Amount:       num(rec, "amount"),
					InterestRate: num(rec, "interest_rate"),
					MaturityDate: str(rec, "maturity_date"),
					Notes:        str(rec, "notes"),
					CreatedAt:    strOr(rec, "created_at", database.Now()),
					UpdatedAt:    strOr(rec, "updated_at", database.Now()),
				}
				if err := s.Savings.Insert(ctx, v); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}
			return nil
		},
		backup.TypeLoans: func(ctx context.Context, records []backup.Record) error {
			for i, rec := range records {
				l := repository.Loan{
					ID:             idOr(rec, "loan_id"),
					Name:           str(rec, "name"),
					TotalAmount:    num(rec, "total_amount"),
					InterestRate:   num(rec, "interest_rate"),
					EMI:            num(rec, "emi"),
					DurationMonths: integer(rec, "duration_months"),
					StartDate:      str(rec, "start_date"),
					CreatedAt:      strOr(rec, "created_at", database.Now()),
					UpdatedAt:      strOr(rec, "updated_at", database.Now()),
				}
				if err := s.Loans.Insert(ctx, l); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}
			return nil
		},
	}
}

// str returns the value in its string form, empty for nil. Numeric ids
// arriving from JSON as float64 come back without a trailing fraction.
func str(rec backup.Record, key string) string {
	switch v := rec[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func strOr(rec backup.Record, key, fallback string) string {
	if s := strings.TrimSpace(str(rec, key)); s != "" {
		return s
	}
	return fallback
}

func firstText(rec backup.Record, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(str(rec, k)); s != "" {
			return s
		}
	}
	return ""
}

func idOr(rec backup.Record, key string) string {
	if s := strings.TrimSpace(str(rec, key)); s != "" {
		return s
	}
	return uuid.NewString()
}

func num(rec backup.Record, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func integer(rec backup.Record, key string) int64 {
	return int64(num(rec, key))
}
