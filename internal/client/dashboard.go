package client

import (
	"math"
	"sort"
	"strings"

	"github.com/UnknownOlympus/staffbook/internal/models"
)

// SearchByName keeps the employees whose name contains query, ignoring case. An empty query keeps all.
func SearchByName(employees []models.Employee, query string) []models.Employee {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return employees
	}

	found := make([]models.Employee, 0, len(employees))
	for _, employee := range employees {
		if strings.Contains(strings.ToLower(employee.Name), query) {
			found = append(found, employee)
		}
	}

	return found
}

// RecentHires returns at most n employees, newest identifiers first.
func RecentHires(employees []models.Employee, n int) []models.Employee {
	if n <= 0 {
		return []models.Employee{}
	}

	sorted := make([]models.Employee, len(employees))
	copy(sorted, employees)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

// GlobalAverageSalary is the unweighted mean of the department averages, rounded. Zero without departments.
func GlobalAverageSalary(stats models.Stats) int64 {
	if len(stats.DepartmentBreakdown) == 0 {
		return 0
	}

	var sum int64
	for _, dept := range stats.DepartmentBreakdown {
		sum += dept.AverageSalary
	}

	return int64(math.Round(float64(sum) / float64(len(stats.DepartmentBreakdown))))
}

// CountByStatus tallies employees per status.
func CountByStatus(employees []models.Employee) map[models.Status]int {
	counts := map[models.Status]int{models.StatusActive: 0, models.StatusInactive: 0}
	for _, employee := range employees {
		counts[employee.Status]++
	}

	return counts
}
