package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Houeta/staff-api/internal/models"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned when the format tag is neither "csv" nor "json".
var ErrUnknownFormat = fmt.Errorf("unknown export format, expected %q or %q", FormatCSV, FormatJSON)

// csvHeader is the fixed first row of every CSV export.
var csvHeader = []string{"id", "name", "email", "age", "department"}

// Render serializes employees into the requested format and returns
// the payload with its content type. It is a pure function: no store
// or validation access.
func Render(employees []models.Employee, format string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		payload, err := renderCSV(employees)
		if err != nil {
			return nil, "", err
		}
		return payload, "text/csv", nil
	case FormatJSON:
		payload, err := json.Marshal(employees)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal employees: %w", err)
		}
		return payload, "application/json", nil
	default:
		return nil, "", ErrUnknownFormat
	}
}

// renderCSV writes one row per employee after the header. encoding/csv
// quotes fields containing delimiters, quotes or newlines.
func renderCSV(employees []models.Employee) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, employee := range employees {
		record := []string{
			strconv.Itoa(employee.ID),
			employee.Name,
			employee.Email,
			strconv.Itoa(employee.Age),
			employee.Department,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
