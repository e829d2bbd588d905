package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/UnknownOlympus/staffbook/internal/client"
	"github.com/UnknownOlympus/staffbook/internal/models"
	"github.com/UnknownOlympus/staffbook/internal/parser"
	"github.com/UnknownOlympus/staffbook/internal/services/importer"
	"github.com/spf13/cobra"
)

func (c *commander) listCmd() *cobra.Command {
	var (
		filter models.EmployeeFilter
		search string
		recent int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.api.ListEmployees(cmd.Context(), filter)
			if err != nil {
				return err
			}

			list = client.SearchByName(list, search)
			if recent > 0 {
				list = client.RecentHires(list, recent)
			}

			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPOSITION\tDEPARTMENT\tSALARY\tHIRED\tSTATUS")
			for _, e := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
					e.ID, e.Name, e.Email, e.Position, e.Department, e.Salary, e.HireDate.Format(time.DateOnly), e.Status)
			}
			if err = tw.Flush(); err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}

			counts := client.CountByStatus(list)
			fmt.Fprintf(c.out, "\n%d shown (%d active, %d inactive)\n",
				len(list), counts[models.StatusActive], counts[models.StatusInactive])

			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Department, "department", "", "exact department")
	cmd.Flags().StringVar(&filter.Status, "status", "", "active or inactive")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name substring")
	cmd.Flags().IntVar(&recent, "recent", 0, "only the N most recently added")

	return cmd
}

func (c *commander) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			employee, err := c.api.GetEmployee(cmd.Context(), id)
			if err != nil {
				return err
			}

			return c.printJSON(employee)
		},
	}
}

func (c *commander) createCmd() *cobra.Command {
	var draft models.EmployeeDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			employee, err := c.api.CreateEmployee(cmd.Context(), draft)
			if err != nil {
				return err
			}

			return c.printJSON(employee)
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "full name")
	cmd.Flags().StringVar(&draft.Email, "email", "", "unique email")
	cmd.Flags().StringVar(&draft.Position, "position", "", "position")
	cmd.Flags().StringVar(&draft.Department, "department", "", "department")
	cmd.Flags().StringVar(&draft.Salary, "salary", "", "monthly salary")
	cmd.Flags().StringVar(&draft.HireDate, "hire-date", time.Now().Format(time.DateOnly), "hire date")

	return cmd
}

func (c *commander) updateCmd() *cobra.Command {
	var patch models.EmployeePatch

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change some fields of an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			employee, err := c.api.UpdateEmployee(cmd.Context(), id, patch)
			if err != nil {
				return err
			}

			return c.printJSON(employee)
		},
	}

	cmd.Flags().StringVar(&patch.Name, "name", "", "new name")
	cmd.Flags().StringVar(&patch.Email, "email", "", "new email")
	cmd.Flags().StringVar(&patch.Position, "position", "", "new position")
	cmd.Flags().StringVar(&patch.Department, "department", "", "new department")
	cmd.Flags().StringVar(&patch.Salary, "salary", "", "new salary")
	cmd.Flags().StringVar(&patch.Status, "status", "", "active or inactive")

	return cmd
}

func (c *commander) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err = c.api.DeleteEmployee(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(c.out, "employee %d deleted\n", id)

			return nil
		},
	}
}

func (c *commander) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Head count and average salary per department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.api.Stats(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DEPARTMENT\tCOUNT\tAVG SALARY")
			for _, dept := range stats.DepartmentBreakdown {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", dept.Department, dept.Count, dept.AverageSalary)
			}
			if err = tw.Flush(); err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}

			fmt.Fprintf(c.out, "\ntotal employees: %d\naverage salary: %d\n",
				stats.TotalEmployees, client.GlobalAverageSalary(stats))

			return nil
		},
	}
}

func (c *commander) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download all employees as an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer file.Close()

			if err = c.api.ExportEmployees(cmd.Context(), file); err != nil {
				return err
			}

			fmt.Fprintf(c.out, "written %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "employees.xlsx", "output file")

	return cmd
}

func (c *commander) importCmd() *cobra.Command {
	var fixEmails bool

	cmd := &cobra.Command{
		Use:   "import FILE|URL",
		Short: "Create employees from an HTML staff table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := c.readDrafts(cmd, args[0])
			if err != nil {
				return err
			}

			report, err := importer.New(c.log, c.api).Run(cmd.Context(), drafts, fixEmails)
			c.printReport(report)

			return err
		},
	}

	cmd.Flags().BoolVar(&fixEmails, "fix-emails", false, "replace missing or invalid emails with random ones")

	return cmd
}

func (c *commander) seedCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("-n must be positive, got %d", count)
			}

			report, err := importer.New(c.log, c.api).Run(cmd.Context(), importer.Seed(count, time.Now()), false)
			c.printReport(report)

			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of employees")

	return cmd
}

func (c *commander) readDrafts(cmd *cobra.Command, src string) ([]models.EmployeeDraft, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return parser.FetchStaffTable(cmd.Context(), client.CreateHTTPClient(c.log), src)
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer file.Close()

	return parser.ParseStaffTable(file)
}

func (c *commander) printReport(report importer.Report) {
	fmt.Fprintf(c.out, "created: %d, failed: %d", len(report.Created), len(report.Failed))
	if report.Fixed > 0 {
		fmt.Fprintf(c.out, ", emails replaced: %d", report.Fixed)
	}
	fmt.Fprintln(c.out)

	for _, rowErr := range report.Failed {
		fmt.Fprintln(c.out, "  "+rowErr.Error())
	}
}

func (c *commander) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
