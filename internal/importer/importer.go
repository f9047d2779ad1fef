// Package importer parses Excel workbooks with expense data. The first
// sheet is read, the first row is the header. Column names are matched case
// insensitively and common aliases are accepted.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var ErrNoData = errors.New("the file is empty or has no data")

// columnAliases maps lower-cased header names to the canonical column.
var columnAliases = map[string]string{
	"expense details": "Expense details",
	"expense_details": "Expense details",
	"expense":         "Expense details",
	"expense name":    "Expense details",
	"name":            "Expense details",
	"period":          "Period",
	"category":        "Category",
	"budget":          "Budget",
	"cost":            "Cost",
	"actual":          "Cost",
	"actual cost":     "Cost",
	"notes":           "Notes",
	"note":            "Notes",
}

// Row is one expense parsed from the workbook.
type Row struct {
	Name     string
	Category string
	Period   string
	Budget   decimal.Decimal
	Cost     decimal.Decimal
	Notes    string

	// Line is the 1-based row number in the workbook, for error messages.
	Line int
}

// Parse reads the workbook and returns the expense rows. Rows without a name
// or category are skipped. An error is returned when the workbook cannot be
// read or the required columns are missing.
func Parse(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error reading Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading Excel file: %w", err)
	}

	if len(rows) < 2 {
		return nil, ErrNoData
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(header))]
		if ok {
			columns[canonical] = i
		}
	}

	var missing []string
	for _, required := range []string{"Expense details", "Category"} {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		available := make([]string, 0, len(rows[0]))
		for _, header := range rows[0] {
			available = append(available, strings.TrimSpace(header))
		}

		return nil, fmt.Errorf("missing required columns: %s. Available columns: %s",
			strings.Join(missing, ", "), strings.Join(available, ", "))
	}

	var parsed []Row
	for i, cells := range rows[1:] {
		row := Row{
			Name:     cell(cells, columns, "Expense details"),
			Category: cell(cells, columns, "Category"),
			Period:   cell(cells, columns, "Period"),
			Notes:    cell(cells, columns, "Notes"),
			Budget:   parseDecimal(cell(cells, columns, "Budget")),
			Cost:     parseDecimal(cell(cells, columns, "Cost")),
			Line:     i + 2,
		}

		if row.Name == "" || row.Category == "" {
			continue
		}

		parsed = append(parsed, row)
	}

	if len(parsed) == 0 {
		return nil, ErrNoData
	}

	return parsed, nil
}

func cell(cells []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(cells) {
		return ""
	}

	return strings.TrimSpace(cells[i])
}

// parseDecimal is lenient, unparseable amounts become zero.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}

	return d
}
