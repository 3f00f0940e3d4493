package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Houeta/staff-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a violation of the unique
// index on employees.email.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CreateEmployee inserts a new employee and returns it with the id the
// database assigned. Email uniqueness is enforced by the unique index,
// so two concurrent inserts of the same email cannot both succeed.
func (r *Repository) CreateEmployee(
	ctx context.Context,
	name, email string,
	age int,
	department string,
) (models.Employee, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("insert_employee").Observe(duration)
	}()
	query := `
		INSERT INTO employees (name, email, age, department)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	employee := models.Employee{Name: name, Email: email, Age: age, Department: department}

	err := r.db.QueryRow(ctx, query, name, email, age, department).Scan(&employee.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Employee{}, ErrDuplicateEmail
		}
		return models.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
	}

	return employee, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error) {
	var result models.Employee

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("get_employee_by_id").Observe(duration)
	}()
	query := `SELECT id, name, email, age, department FROM employees WHERE id=$1`

	err := r.db.QueryRow(ctx, query, identifier).Scan(
		&result.ID, &result.Name, &result.Email, &result.Age, &result.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, ErrNotFound
		}
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return result, nil
}

// ListEmployees returns employees matching the filter, ordered by id.
// Department is an exact match, search a case-insensitive substring
// match on name. Offset/limit apply only when Limit is positive.
func (r *Repository) ListEmployees(
	ctx context.Context,
	filter models.EmployeeFilter,
) ([]models.Employee, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("list_employees").Observe(duration)
	}()

	var builder strings.Builder
	builder.WriteString(`SELECT id, name, email, age, department FROM employees`)

	var conditions []string
	var args []any

	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		conditions = append(conditions, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	builder.WriteString(" ORDER BY id")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		builder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
		args = append(args, filter.Offset)
		builder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	rows, err := r.db.Query(ctx, builder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(
			&employee.ID, &employee.Name, &employee.Email, &employee.Age, &employee.Department,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, employee)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}

// UpdateEmployee writes the full row for employee.ID. The caller merges
// partial fields into the stored record first; the unique index still
// guards email collisions at write time.
func (r *Repository) UpdateEmployee(ctx context.Context, employee models.Employee) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("update_employee").Observe(duration)
	}()
	query := `
		UPDATE employees
		SET name = $2, email = $3, age = $4, department = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1;
	`

	tag, err := r.db.Exec(ctx, query,
		employee.ID, employee.Name, employee.Email, employee.Age, employee.Department)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update employee data: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteEmployee permanently removes the row with the given id.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("delete_employee").Observe(duration)
	}()
	query := `DELETE FROM employees WHERE id = $1;`

	tag, err := r.db.Exec(ctx, query, identifier)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
