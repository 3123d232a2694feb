package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hadirly/attendance-backend-go/internal/domain/employee"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, branch_id, full_name, employee_code,
			   last_latitude, last_longitude, last_location_at,
			   created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID, &e.CompanyID, &e.BranchID, &e.FullName, &e.EmployeeCode,
		&e.LastLatitude, &e.LastLongitude, &e.LastLocationAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return e, nil
}

// Exists implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Exists(ctx context.Context, id string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1 AND company_id = $2)`,
		id, companyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}

	return exists, nil
}

// UpdateLastKnownLocation implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateLastKnownLocation(ctx context.Context, id string, latitude, longitude float64, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			last_latitude = $1,
			last_longitude = $2,
			last_location_at = $3,
			updated_at = NOW()
		WHERE id = $4
		  AND (last_location_at IS NULL OR last_location_at <= $3)
	`

	// The last_location_at guard keeps out-of-order fire-and-forget
	// updates from rolling the directory backwards.
	if _, err := q.Exec(ctx, query, latitude, longitude, at, id); err != nil {
		return fmt.Errorf("failed to update last known location: %w", err)
	}

	return nil
}
