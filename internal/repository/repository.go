package repository

import (
	"context"
	"errors"

	"github.com/Houeta/staff-api/internal/metrics"
	"github.com/Houeta/staff-api/internal/models"
)

// ErrNotFound is returned when an id does not resolve to a row.
var ErrNotFound = errors.New("employee not found")

// ErrDuplicateEmail is returned when a write collides with the unique
// index on email. The index is the only duplicate check; there is no
// separate read-before-write.
var ErrDuplicateEmail = errors.New("email already exists")

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	CreateEmployee(ctx context.Context, name, email string, age int, department string) (models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error)
	ListEmployees(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, employee models.Employee) error
	DeleteEmployee(ctx context.Context, identifier int) error
}

func NewEmployeeRepository(db Database, mtr *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: mtr}
}
