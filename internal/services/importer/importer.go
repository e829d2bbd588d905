package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/UnknownOlympus/staffbook/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/tamathecxder/randomail"
)

// EmployeeCreator persists one draft. *client.Client satisfies it.
type EmployeeCreator interface {
	CreateEmployee(ctx context.Context, draft models.EmployeeDraft) (models.Employee, error)
}

// RowError records a draft the service refused.
type RowError struct {
	Row   int
	Name  string
	Email string
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Name, e.Err)
}

// Report summarizes an import run.
type Report struct {
	Created []models.Employee
	Failed  []RowError
	Fixed   int
}

type Importer struct {
	log     *slog.Logger
	creator EmployeeCreator
}

func New(log *slog.Logger, creator EmployeeCreator) *Importer {
	return &Importer{log: log, creator: creator}
}

func (i *Importer) initLogger(opn string) *slog.Logger {
	return i.log.With(
		slog.String("op", opn),
		slog.String("division", "import"),
	)
}

// Run creates every draft in order. A rejected row is recorded and the run goes on;
// only a cancelled context stops it early. With fixEmails, rows without a usable email
// get a random placeholder address instead of being rejected.
func (i *Importer) Run(ctx context.Context, drafts []models.EmployeeDraft, fixEmails bool) (Report, error) {
	const opn = "Import.Run"
	log := i.initLogger(opn)

	report := Report{Created: make([]models.Employee, 0, len(drafts))}
	if fixEmails {
		drafts, report.Fixed = fixInvalidEmail(ctx, log, drafts)
	}

	for idx, draft := range drafts {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("import interrupted at row %d: %w", idx+1, err)
		}

		employee, err := i.creator.CreateEmployee(ctx, draft)
		if err != nil {
			log.InfoContext(ctx, "Row rejected", "row", idx+1, "name", draft.Name, sl.Err(err))
			report.Failed = append(report.Failed, RowError{Row: idx + 1, Name: draft.Name, Email: draft.Email, Err: err})
			continue
		}

		log.DebugContext(ctx, "Row imported", "row", idx+1, "id", employee.ID)
		report.Created = append(report.Created, employee)
	}

	log.InfoContext(ctx, "Import finished", "created", len(report.Created), "failed", len(report.Failed))

	return report, nil
}

func fixInvalidEmail(
	ctx context.Context,
	log *slog.Logger,
	drafts []models.EmployeeDraft,
) ([]models.EmployeeDraft, int) {
	var invalidCounter int
	fixed := make([]models.EmployeeDraft, 0, len(drafts))

	for _, draft := range drafts {
		email := strings.TrimSpace(draft.Email)
		switch {
		case email == "":
			log.DebugContext(ctx, "Email was not specified, generate random email", "employee", draft.Name)
			draft.Email = randomail.GenerateRandomEmail()
			invalidCounter++
		case !isValidEmail(email):
			log.InfoContext(ctx, "Employee has invalid email, it will be replaced with temporary random email.",
				"name", draft.Name, "email", draft.Email,
			)
			draft.Email = randomail.GenerateRandomEmail()
			invalidCounter++
		}

		fixed = append(fixed, draft)
	}

	if invalidCounter != 0 {
		log.WarnContext(ctx, "Number of employees with no or invalid email addresses", "value", invalidCounter)
	}

	return fixed, invalidCounter
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
