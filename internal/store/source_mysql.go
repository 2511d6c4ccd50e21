package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "listing/internal/db"
	"listing/internal/domain"
	"listing/internal/domain/models"
)

// MySQLSource reads one row per record from Table. Columns are matched to
// record fields by name; fields without a column take their defaults.
type MySQLSource struct {
	DB    *sql.DB
	Table string
}

func (s MySQLSource) String() string { return "mysql:" + s.table() }

func (s MySQLSource) table() string {
	if t := strings.TrimSpace(s.Table); t != "" {
		return t
	}
	return "users"
}

func (s MySQLSource) Records(ctx context.Context) ([]models.Record, error) {
	table := s.table()
	fail := func(err error) ([]models.Record, error) {
		return nil, domain.LoadError{Source: s.String(), Err: err}
	}

	if s.DB == nil {
		return fail(fmt.Errorf("db not connected"))
	}
	if !intdb.ValidIdentifier(table) {
		return fail(fmt.Errorf("invalid table name %q", table))
	}
	if !intdb.HasTable(ctx, s.DB, table) {
		return fail(fmt.Errorf("table %s not found", table))
	}
	cols, err := intdb.Columns(ctx, s.DB, table)
	if err != nil {
		return fail(err)
	}

	selected := make([]string, 0, len(cols))
	for _, f := range models.Fields() {
		if cols[f.String()] {
			selected = append(selected, f.String())
		}
	}
	if len(selected) == 0 {
		return fail(fmt.Errorf("table %s has no record columns", table))
	}

	quoted := make([]string, len(selected))
	for i, c := range selected {
		quoted[i] = "`" + c + "`"
	}
	query := fmt.Sprintf("SELECT %s FROM `%s`", strings.Join(quoted, ", "), table)
	if cols["id"] {
		query += " ORDER BY `id` ASC"
	}

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return fail(err)
	}
	defer rows.Close()

	records := []models.Record{}
	vals := make([]sql.NullString, len(selected))
	dest := make([]any, len(selected))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return fail(err)
		}
		raw := make(map[string]any, len(selected))
		for i, c := range selected {
			if vals[i].Valid {
				raw[c] = vals[i].String
			}
		}
		records = append(records, models.RecordFromMap(raw))
	}
	if err := rows.Err(); err != nil {
		return fail(err)
	}
	return records, nil
}
