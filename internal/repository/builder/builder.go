package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder assembles SELECT and UPDATE statements with positional PostgreSQL placeholders.
// Conditions are written with `?` markers which Build rewrites to $1, $2, ...
type SQLBuilder struct {
	table     string
	columns   []string
	setCols   []string
	setArgs   []any
	where     []string
	whereArgs []any
	orderBy   []string
	returning []string
	isUpdate  bool
}

// Select starts a SELECT statement for the given columns.
func Select(cols ...string) *SQLBuilder {
	return &SQLBuilder{columns: cols}
}

// Update starts an UPDATE statement for table.
func Update(table string) *SQLBuilder {
	return &SQLBuilder{table: table, isUpdate: true}
}

// From sets the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Set adds an assignment to an UPDATE.
func (b *SQLBuilder) Set(col string, val any) *SQLBuilder {
	b.setCols = append(b.setCols, col)
	b.setArgs = append(b.setArgs, val)
	return b
}

// SetRaw adds an assignment whose right side is an SQL expression without arguments.
func (b *SQLBuilder) SetRaw(col, expr string) *SQLBuilder {
	b.setCols = append(b.setCols, col+" = "+expr)
	b.setArgs = append(b.setArgs, rawMarker{})
	return b
}

// Where adds a condition. Multiple conditions are joined with AND.
func (b *SQLBuilder) Where(condition string, args ...any) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// WhereIf adds the condition only when ok is true.
func (b *SQLBuilder) WhereIf(ok bool, condition string, args ...any) *SQLBuilder {
	if !ok {
		return b
	}
	return b.Where(condition, args...)
}

// OrderBy appends an ORDER BY term.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Returning sets the RETURNING column list of an UPDATE.
func (b *SQLBuilder) Returning(cols ...string) *SQLBuilder {
	b.returning = cols
	return b
}

// HasAssignments reports whether any Set call was made.
func (b *SQLBuilder) HasAssignments() bool {
	return len(b.setCols) > 0
}

type rawMarker struct{}

// Build returns the SQL text and its arguments in placeholder order.
func (b *SQLBuilder) Build() (string, []any, error) {
	var sb strings.Builder
	args := make([]any, 0, len(b.setArgs)+len(b.whereArgs))
	argIndex := 1

	if b.table == "" {
		return "", nil, fmt.Errorf("table is not set")
	}

	if b.isUpdate {
		if len(b.setCols) == 0 {
			return "", nil, fmt.Errorf("update of %s has no assignments", b.table)
		}
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		clauses := make([]string, 0, len(b.setCols))
		for i, col := range b.setCols {
			if _, raw := b.setArgs[i].(rawMarker); raw {
				clauses = append(clauses, col)
				continue
			}
			clauses = append(clauses, fmt.Sprintf("%s = $%d", col, argIndex))
			args = append(args, b.setArgs[i])
			argIndex++
		}
		sb.WriteString(strings.Join(clauses, ", "))
	} else {
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		parts := strings.Split(strings.Join(b.where, " AND "), "?")
		for i, part := range parts {
			sb.WriteString(part)
			if i < len(parts)-1 {
				fmt.Fprintf(&sb, "$%d", argIndex)
				argIndex++
			}
		}
		args = append(args, b.whereArgs...)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}

	if argIndex-1 != len(args) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", argIndex-1, len(args))
	}

	return sb.String(), args, nil
}
