package models

// Employee represents an employee entity.
type Employee struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Age        int    `json:"age"`
	Department string `json:"department"`
}

// CreateEmployeeRequest is the payload for creating an employee.
// All fields are required; syntax and bounds are checked by the binding
// layer, whitespace trimming by the service.
type CreateEmployeeRequest struct {
	Name       string `binding:"required"                json:"name"`
	Email      string `binding:"required,email"          json:"email"`
	Age        int    `binding:"required,gte=18,lte=100" json:"age"`
	Department string `binding:"required"                json:"department"`
}

// UpdateEmployeeRequest is the payload for a partial update. Nil means
// the field was omitted and keeps its stored value; a present field is
// validated before it is applied.
type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `binding:"omitempty,email" json:"email"`
	Age        *int    `json:"age"`
	Department *string `json:"department"`
}

// EmployeeFilter is the predicate set applied to list and export reads.
// Zero values mean "no predicate"; Limit <= 0 disables pagination.
type EmployeeFilter struct {
	Department string
	Search     string
	Offset     int
	Limit      int
}
