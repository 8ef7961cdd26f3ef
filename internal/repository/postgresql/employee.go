package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Upsert implements employee.EmployeeRepository.
func (r *employeeRepository) Upsert(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (telegram_id, full_name, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (telegram_id)
		DO UPDATE SET full_name = EXCLUDED.full_name, is_active = TRUE, updated_at = NOW()
		RETURNING telegram_id, full_name, is_active, created_at, updated_at
	`

	var out employee.Employee
	err := q.QueryRow(ctx, query, emp.TelegramID, emp.FullName).Scan(
		&out.TelegramID, &out.FullName, &out.IsActive, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upsert employee: %w", err)
	}

	return out, nil
}

// GetByTelegramID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByTelegramID(ctx context.Context, telegramID int64, includeInactive bool) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT telegram_id, full_name, is_active, created_at, updated_at
		FROM employees
		WHERE telegram_id = $1
	`
	if !includeInactive {
		query += " AND is_active = TRUE"
	}

	var out employee.Employee
	err := q.QueryRow(ctx, query, telegramID).Scan(
		&out.TelegramID, &out.FullName, &out.IsActive, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return out, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT telegram_id, full_name, is_active, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.TelegramID, &emp.FullName, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// SetActive implements employee.EmployeeRepository.
func (r *employeeRepository) SetActive(ctx context.Context, telegramID int64, isActive bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET is_active = $2, updated_at = NOW() WHERE telegram_id = $1
	`, telegramID, isActive)
	if err != nil {
		return fmt.Errorf("failed to set employee active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
