package parser_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/UnknownOlympus/staffbook/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staffPage = `
<html><body>
	<table id="nav"><tr><td>Home</td><td>About</td></tr></table>
	<table>
		<tr>
			<th>Full Name</th>
			<th>Dept</th>
			<th>E-mail</th>
			<th>Notes</th>
			<th>Title</th>
			<th>Salary</th>
			<th>Hire  Date</th>
		</tr>
		<tr>
			<td> John Doe </td>
			<td>IT</td>
			<td>john.doe@example.com</td>
			<td>remote</td>
			<td>Software Engineer</td>
			<td>$4,500.50</td>
			<td>2023-05-01</td>
		</tr>
		<tr><td></td><td></td><td></td><td></td><td></td><td></td><td></td></tr>
		<tr>
			<td>Jane Smith</td>
			<td>HR</td>
			<td></td>
			<td></td>
			<td>Recruiter</td>
			<td>3 200</td>
			<td>2022-11-20</td>
		</tr>
	</table>
</body></html>`

func TestParseStaffTable(t *testing.T) {
	t.Parallel()

	drafts, err := parser.ParseStaffTable(strings.NewReader(staffPage))

	require.NoError(t, err)
	assert.Equal(t, []models.EmployeeDraft{
		{
			Name:       "John Doe",
			Email:      "john.doe@example.com",
			Position:   "Software Engineer",
			Department: "IT",
			Salary:     "4500.50",
			HireDate:   "2023-05-01",
		},
		{
			Name:       "Jane Smith",
			Position:   "Recruiter",
			Department: "HR",
			Salary:     "3200",
			HireDate:   "2022-11-20",
		},
	}, drafts)
}

func TestParseStaffTable_MissingColumn(t *testing.T) {
	t.Parallel()

	html := `<table><tr><th>Name</th><th>Email</th><th>Position</th></tr>
		<tr><td>A</td><td>a@example.com</td><td>Dev</td></tr></table>`

	_, err := parser.ParseStaffTable(strings.NewReader(html))

	require.ErrorIs(t, err, parser.ErrMissingColumn)
	assert.Contains(t, err.Error(), "department, salary, hire date")
}

func TestParseStaffTable_NoTable(t *testing.T) {
	t.Parallel()

	_, err := parser.ParseStaffTable(strings.NewReader(`<p>nothing here</p>`))

	require.ErrorIs(t, err, parser.ErrNoTable)
}

func TestParseStaffTable_HeaderOnly(t *testing.T) {
	t.Parallel()

	html := `<table><tr><td>name</td><td>email</td><td>position</td>
		<td>department</td><td>salary</td><td>hired</td></tr></table>`

	drafts, err := parser.ParseStaffTable(strings.NewReader(html))

	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestFetchStaffTable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != parser.UserAgent {
			t.Errorf("Expected User-Agent to be %s, got %s", parser.UserAgent, r.Header.Get("User-Agent"))
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(staffPage))
	}))
	defer ts.Close()

	t.Run("success", func(t *testing.T) {
		drafts, err := parser.FetchStaffTable(context.Background(), ts.Client(), ts.URL+"/staff")

		require.NoError(t, err)
		assert.Len(t, drafts, 2)
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := parser.FetchStaffTable(context.Background(), ts.Client(), ts.URL+"/missing")

		require.ErrorIs(t, err, parser.ErrFetch)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := parser.FetchStaffTable(context.Background(), ts.Client(), "http://127.0.0.1:1/")

		require.Error(t, err)
	})
}
