package repository

import (
	"context"
	"database/sql"
)

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Insert(ctx context.Context, t Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(transaction_id, name, amount, category, transaction_type, date, notes, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, t.ID, t.Name, t.Amount, t.Category, t.Type, t.Date, t.Notes, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TransactionRepo) List(ctx context.Context) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT transaction_id, name, amount, category, transaction_type, date, notes, created_at, updated_at
	FROM transactions ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Name, &t.Amount, &t.Category, &t.Type, &t.Date, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}

// SavingRepo handles savings.
type SavingRepo struct {
	db *sql.DB
}

func NewSavingRepo(db *sql.DB) *SavingRepo { return &SavingRepo{db: db} }

func (r *SavingRepo) Insert(ctx context.Context, s Saving) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO savings(savings_id, source, amount, interest_rate, maturity_date, notes, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?);
	`, s.ID, s.Source, s.Amount, s.InterestRate, s.MaturityDate, s.Notes, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *SavingRepo) List(ctx context.Context) ([]Saving, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT savings_id, source, amount, interest_rate, maturity_date, notes, created_at, updated_at
	FROM savings ORDER BY created_at, savings_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Saving
	for rows.Next() {
		var s Saving
		if err := rows.Scan(&s.ID, &s.Source, &s.Amount, &s.InterestRate, &s.MaturityDate, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SavingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM savings`).Scan(&n)
	return n, err
}

// LoanRepo handles loans.
type LoanRepo struct {
	db *sql.DB
}

func NewLoanRepo(db *sql.DB) *LoanRepo { return &LoanRepo{db: db} }

func (r *LoanRepo) Insert(ctx context.Context, l Loan) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO loans(loan_id, name, total_amount, interest_rate, emi, duration_months, start_date, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, l.ID, l.Name, l.TotalAmount, l.InterestRate, l.EMI, l.DurationMonths, l.StartDate, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *LoanRepo) List(ctx context.Context) ([]Loan, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT loan_id, name, total_amount, interest_rate, emi, duration_months, start_date, created_at, updated_at
	FROM loans ORDER BY created_at, loan_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.Name, &l.TotalAmount, &l.InterestRate, &l.EMI, &l.DurationMonths, &l.StartDate, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LoanRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM loans`).Scan(&n)
	return n, err
}
