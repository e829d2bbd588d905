package models

// DepartmentAggregate is one raw GROUP BY row as read from the store.
type DepartmentAggregate struct {
	Department    string
	Count         int64
	AverageSalary float64
}

// DepartmentStats is the per-department entry of the statistics response.
type DepartmentStats struct {
	Department    string `json:"department"`
	Count         int64  `json:"count"`
	AverageSalary int64  `json:"average_salary"`
}

// Stats is the aggregate view over all employee records.
type Stats struct {
	TotalEmployees      int64             `json:"total_employees"`
	DepartmentBreakdown []DepartmentStats `json:"department_breakdown"`
}
