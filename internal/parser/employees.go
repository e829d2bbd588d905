package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/PuerkitoBio/goquery"
)

const UserAgent = "staffbook-importer/1.0"

var (
	ErrNoTable       = errors.New("no staff table found")
	ErrMissingColumn = errors.New("required column missing")
	ErrFetch         = errors.New("failed to fetch staff table")
)

type column int

const (
	colName column = iota
	colEmail
	colPosition
	colDepartment
	colSalary
	colHireDate
	columnCount
)

var columnNames = [columnCount]string{"name", "email", "position", "department", "salary", "hire date"}

// headerAliases maps normalized header text to the column it names.
var headerAliases = map[string]column{
	"name":       colName,
	"full name":  colName,
	"fullname":   colName,
	"email":      colEmail,
	"e-mail":     colEmail,
	"mail":       colEmail,
	"position":   colPosition,
	"title":      colPosition,
	"job title":  colPosition,
	"department": colDepartment,
	"dept":       colDepartment,
	"division":   colDepartment,
	"salary":     colSalary,
	"hire date":  colHireDate,
	"hire_date":  colHireDate,
	"hired":      colHireDate,
	"start date": colHireDate,
}

// FetchStaffTable downloads src and parses its staff table.
func FetchStaffTable(ctx context.Context, client *http.Client, src string) ([]models.EmployeeDraft, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", src, err)
	}

	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w, received status code: %d", ErrFetch, resp.StatusCode)
	}

	return ParseStaffTable(resp.Body)
}

// ParseStaffTable reads the first table whose header row names every required column.
// Columns may appear in any order; unknown columns are ignored and blank rows skipped.
func ParseStaffTable(in io.Reader) ([]models.EmployeeDraft, error) {
	doc, err := goquery.NewDocumentFromReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read html: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, ErrNoTable
	}

	var lastErr error
	for i := range tables.Length() {
		drafts, errTable := parseTable(tables.Eq(i))
		if errTable == nil {
			return drafts, nil
		}
		lastErr = errTable
	}

	return nil, lastErr
}

func parseTable(table *goquery.Selection) ([]models.EmployeeDraft, error) {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, ErrNoTable
	}

	index, err := headerIndex(rows.First())
	if err != nil {
		return nil, err
	}

	drafts := []models.EmployeeDraft{}
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		value := func(col column) string {
			pos := index[col]
			if pos >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(pos).Text())
		}

		draft := models.EmployeeDraft{
			Name:       value(colName),
			Email:      value(colEmail),
			Position:   value(colPosition),
			Department: value(colDepartment),
			Salary:     cleanSalary(value(colSalary)),
			HireDate:   value(colHireDate),
		}
		if draft == (models.EmployeeDraft{}) {
			return
		}

		drafts = append(drafts, draft)
	})

	return drafts, nil
}

func headerIndex(header *goquery.Selection) ([columnCount]int, error) {
	var index [columnCount]int
	for i := range index {
		index[i] = -1
	}

	header.Find("th, td").Each(func(pos int, cell *goquery.Selection) {
		key := strings.Join(strings.Fields(strings.ToLower(cell.Text())), " ")
		if col, ok := headerAliases[key]; ok && index[col] < 0 {
			index[col] = pos
		}
	})

	var missing []string
	for col, pos := range index {
		if pos < 0 {
			missing = append(missing, columnNames[col])
		}
	}
	if len(missing) > 0 {
		return index, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return index, nil
}

// cleanSalary drops currency signs, thousands separators and spaces.
func cleanSalary(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, raw)
}
