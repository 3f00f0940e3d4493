package employees

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Houeta/staff-api/internal/apperror"
	"github.com/Houeta/staff-api/internal/lib/logger/sl"
	"github.com/Houeta/staff-api/internal/models"
	"github.com/Houeta/staff-api/internal/repository"
)

const (
	minAge = 18
	maxAge = 100

	// DefaultPerPage is the page size used when per_page is omitted.
	DefaultPerPage = 10
	maxPerPage     = 100
)

// Staff orchestrates validation and persistence for employee records.
type Staff struct {
	log  *slog.Logger
	repo repository.EmployeeRepoIface
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface) *Staff {
	return &Staff{log: log, repo: repo}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// ListParams carries the optional list filters and pagination values.
// Defaults for omitted pagination are the caller's job; the service
// rejects anything outside page >= 1, per_page in [1,100], so an
// explicit zero is an error, not a default.
type ListParams struct {
	Department string
	Search     string
	Page       int
	PerPage    int
}

// Create validates the payload and inserts a new employee. The store's
// unique index is the only duplicate-email authority; a collision comes
// back as a DUPLICATE_KEY error.
func (s *Staff) Create(ctx context.Context, req models.CreateEmployeeRequest) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	name := strings.TrimSpace(req.Name)
	department := strings.TrimSpace(req.Department)

	if name == "" {
		return models.Employee{}, apperror.InvalidField("Name", "must not be empty")
	}
	if department == "" {
		return models.Employee{}, apperror.InvalidField("Department", "must not be empty")
	}
	if !isValidEmail(req.Email) {
		return models.Employee{}, apperror.InvalidField("Email", "must be a valid email address")
	}
	if req.Age < minAge || req.Age > maxAge {
		return models.Employee{}, apperror.InvalidField("Age", "must be between 18 and 100")
	}

	employee, err := s.repo.CreateEmployee(ctx, name, req.Email, req.Age, department)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.Employee{}, apperror.DuplicateEmail(req.Email)
		}
		log.ErrorContext(ctx, "failed to create employee", sl.Err(err))
		return models.Employee{}, apperror.ErrInternal
	}

	log.InfoContext(ctx, "employee created", "id", employee.ID, "email", employee.Email)

	return employee, nil
}

// List returns employees matching the optional filters, paginated.
func (s *Staff) List(ctx context.Context, params ListParams) ([]models.Employee, error) {
	const opn = "Employee.List"
	log := s.initLogger(opn)

	if params.Page < 1 {
		return nil, apperror.InvalidField("Page", "must be greater than or equal to 1")
	}
	if params.PerPage < 1 || params.PerPage > maxPerPage {
		return nil, apperror.InvalidField("Per Page", "must be between 1 and 100")
	}

	filter := models.EmployeeFilter{
		Department: params.Department,
		Search:     params.Search,
		Offset:     (params.Page - 1) * params.PerPage,
		Limit:      params.PerPage,
	}

	employees, err := s.repo.ListEmployees(ctx, filter)
	if err != nil {
		log.ErrorContext(ctx, "failed to list employees", sl.Err(err))
		return nil, apperror.ErrInternal
	}

	return employees, nil
}

// ListForExport returns all employees matching the filters, without
// pagination. Search matching is case-insensitive, same as List.
func (s *Staff) ListForExport(ctx context.Context, department, search string) ([]models.Employee, error) {
	const opn = "Employee.ListForExport"
	log := s.initLogger(opn)

	employees, err := s.repo.ListEmployees(ctx, models.EmployeeFilter{
		Department: department,
		Search:     search,
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to list employees for export", sl.Err(err))
		return nil, apperror.ErrInternal
	}

	return employees, nil
}

// Update applies the provided fields to an existing employee and
// returns the full updated record. Omitted fields keep their stored
// values; provided fields are validated before they are applied.
func (s *Staff) Update(
	ctx context.Context,
	identifier int,
	req models.UpdateEmployeeRequest,
) (models.Employee, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn)

	employee, err := s.repo.GetEmployeeByID(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Employee{}, apperror.NotFound(identifier)
		}
		log.ErrorContext(ctx, "failed to load employee for update", sl.Err(err))
		return models.Employee{}, apperror.ErrInternal
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return models.Employee{}, apperror.InvalidField("Name", "must not be empty")
		}
		employee.Name = name
	}
	if req.Email != nil {
		if !isValidEmail(*req.Email) {
			return models.Employee{}, apperror.InvalidField("Email", "must be a valid email address")
		}
		employee.Email = *req.Email
	}
	if req.Age != nil {
		if *req.Age < minAge || *req.Age > maxAge {
			return models.Employee{}, apperror.InvalidField("Age", "must be between 18 and 100")
		}
		employee.Age = *req.Age
	}
	if req.Department != nil {
		department := strings.TrimSpace(*req.Department)
		if department == "" {
			return models.Employee{}, apperror.InvalidField("Department", "must not be empty")
		}
		employee.Department = department
	}

	if err = s.repo.UpdateEmployee(ctx, employee); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return models.Employee{}, apperror.DuplicateEmail(employee.Email)
		case errors.Is(err, repository.ErrNotFound):
			// row vanished between the read and the write
			return models.Employee{}, apperror.NotFound(identifier)
		default:
			log.ErrorContext(ctx, "failed to update employee", sl.Err(err))
			return models.Employee{}, apperror.ErrInternal
		}
	}

	log.InfoContext(ctx, "employee updated", "id", employee.ID)

	return employee, nil
}

// Delete permanently removes the employee with the given id.
func (s *Staff) Delete(ctx context.Context, identifier int) error {
	const opn = "Employee.Delete"
	log := s.initLogger(opn)

	if err := s.repo.DeleteEmployee(ctx, identifier); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(identifier)
		}
		log.ErrorContext(ctx, "failed to delete employee", sl.Err(err))
		return apperror.ErrInternal
	}

	log.InfoContext(ctx, "employee deleted", "id", identifier)

	return nil
}

// isValidEmail checks if the given email address is valid. The domain
// must contain at least one dot, so "user@localhost" is rejected.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")

	return strings.Contains(email[at+1:], ".")
}
