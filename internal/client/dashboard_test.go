package client_test

import (
	"testing"

	"github.com/UnknownOlympus/staffbook/internal/client"
	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/stretchr/testify/assert"
)

func staff() []models.Employee {
	return []models.Employee{
		{ID: 1, Name: "Ann Lee", Status: models.StatusActive},
		{ID: 7, Name: "Bob ANNERS", Status: models.StatusInactive},
		{ID: 3, Name: "Carl Ray", Status: models.StatusActive},
	}
}

func TestSearchByName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{1, 7}, ids(client.SearchByName(staff(), " ann ")))
	assert.Equal(t, []int{1, 7, 3}, ids(client.SearchByName(staff(), "")))
	assert.Empty(t, client.SearchByName(staff(), "zed"))
}

func TestRecentHires(t *testing.T) {
	t.Parallel()

	list := staff()

	assert.Equal(t, []int{7, 3}, ids(client.RecentHires(list, 2)))
	assert.Equal(t, []int{7, 3, 1}, ids(client.RecentHires(list, 5)))
	assert.Empty(t, client.RecentHires(list, 0))
	assert.Equal(t, 1, list[0].ID, "input must not be reordered")
}

func TestGlobalAverageSalary(t *testing.T) {
	t.Parallel()

	stats := models.Stats{DepartmentBreakdown: []models.DepartmentStats{
		{Department: "HR", AverageSalary: 3000},
		{Department: "IT", AverageSalary: 1500},
	}}

	// unweighted: (3000 + 1500) / 2
	assert.Equal(t, int64(2250), client.GlobalAverageSalary(stats))
	assert.Equal(t, int64(0), client.GlobalAverageSalary(models.Stats{}))
}

func TestCountByStatus(t *testing.T) {
	t.Parallel()

	counts := client.CountByStatus(staff())

	assert.Equal(t, 2, counts[models.StatusActive])
	assert.Equal(t, 1, counts[models.StatusInactive])
}

func ids(list []models.Employee) []int {
	out := make([]int, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}
