package importer

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/tamathecxder/randomail"
)

var seedDepartments = map[string][]string{
	"IT":        {"Software Engineer", "DevOps Engineer", "QA Engineer"},
	"HR":        {"Recruiter", "HR Manager"},
	"Finance":   {"Accountant", "Financial Analyst"},
	"Marketing": {"Marketing Specialist", "Content Manager"},
}

var seedOrder = []string{"IT", "HR", "Finance", "Marketing"}

var (
	firstNames = []string{"Anna", "Ben", "Chloe", "Dmytro", "Eva", "Farid", "Greta", "Hugo", "Iryna", "Jonas"}
	lastNames  = []string{"Kowalski", "Lee", "Moreau", "Novak", "Okafor", "Petrenko", "Quinn", "Rossi", "Sato"}
)

// Seed builds n demo drafts spread round-robin across departments.
// Salaries range from 1500 to 5950; hire dates within the last five years of now.
func Seed(n int, now time.Time) []models.EmployeeDraft {
	if n <= 0 {
		return nil
	}

	drafts := make([]models.EmployeeDraft, 0, n)
	for i := range n {
		dept := seedOrder[i%len(seedOrder)]
		positions := seedDepartments[dept]

		hired := now.AddDate(0, 0, -rand.IntN(5*365))

		drafts = append(drafts, models.EmployeeDraft{
			Name: fmt.Sprintf("%s %s",
				firstNames[rand.IntN(len(firstNames))], lastNames[rand.IntN(len(lastNames))]),
			Email:      randomail.GenerateRandomEmail(),
			Position:   positions[rand.IntN(len(positions))],
			Department: dept,
			Salary:     strconv.Itoa(1500 + rand.IntN(90)*50),
			HireDate:   hired.Format(time.DateOnly),
		})
	}

	return drafts
}
