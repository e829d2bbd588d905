package export

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Employees"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type column struct {
	header string
	width  float64
	value  func(e models.Employee) any
}

var columns = []column{
	{"ID", 8, func(e models.Employee) any { return e.ID }},
	{"Name", 28, func(e models.Employee) any { return e.Name }},
	{"Email", 32, func(e models.Employee) any { return e.Email }},
	{"Position", 24, func(e models.Employee) any { return e.Position }},
	{"Department", 16, func(e models.Employee) any { return e.Department }},
	{"Salary", 14, func(e models.Employee) any { return e.Salary }},
	{"Hire Date", 14, func(e models.Employee) any { return e.HireDate.Format("2006-01-02") }},
	{"Status", 12, func(e models.Employee) any { return string(e.Status) }},
}

// BuildWorkbook renders the employees as a single-sheet workbook with a bold, frozen header row.
func BuildWorkbook(employees []models.Employee) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err = f.SetCellValue(SheetName, cell, col.header); err != nil {
			return nil, fmt.Errorf("failed to write header %s: %w", col.header, err)
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err = f.SetColWidth(SheetName, name, name, col.width); err != nil {
			return nil, fmt.Errorf("failed to set width of %s: %w", name, err)
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err = f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for r, employee := range employees {
		row := make([]any, 0, len(columns))
		for _, col := range columns {
			row = append(row, col.value(employee))
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err = f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write employee %d: %w", employee.ID, err)
		}
	}

	if err = f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	return f, nil
}

// WriteEmployees builds the workbook and streams it to w.
func WriteEmployees(w io.Writer, employees []models.Employee) error {
	f, err := BuildWorkbook(employees)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}
