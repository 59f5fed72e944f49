// Package repository provides typed access to the fintrax tables, one repo
// per collection. Dates are stored as ISO strings so rows map cleanly onto
// the backup wire format.
package repository

// Project represents a projects row.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      string
	StartDate   string
	EndDate     string
	CreatedAt   string
	UpdatedAt   string
}

// Roadmap represents a roadmaps row.
type Roadmap struct {
	ID          string
	Name        string
	Description string
	ProjectID   string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// Task represents a tasks row.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    string
	Status      string
	DueDays     int64
	StartDate   string
	EndDate     string
	ProjectID   string
	RoadmapID   string
	CreatedAt   string
	UpdatedAt   string
}

// Transaction represents a transactions row.
type Transaction struct {
	ID        string
	Name      string
	Amount    float64
	Category  string
	Type      string
	Date      string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// Saving represents a savings row.
type Saving struct {
	ID           string
	Source       string
	Amount       float64
	InterestRate float64
	MaturityDate string
	Notes        string
	CreatedAt    string
	UpdatedAt    string
}

// Loan represents a loans row.
type Loan struct {
	ID             string
	Name           string
	TotalAmount    float64
	InterestRate   float64
	EMI            float64
	DurationMonths int64
	StartDate      string
	CreatedAt      string
	UpdatedAt      string
}
