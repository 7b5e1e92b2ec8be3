package tabio

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/bisegni/tabl/pkg/logger"
	"github.com/bisegni/tabl/pkg/table"
)

// SQLiteTable reads one table, or an arbitrary query, from a SQLite
// database file. Each iteration opens its own connection so passes stay
// independent.
type SQLiteTable struct {
	Path  string
	Table string
	Query string // overrides Table when set
}

// NewSQLiteTable builds a table over one SQLite table.
func NewSQLiteTable(path, tableName string) *SQLiteTable {
	return &SQLiteTable{Path: path, Table: tableName}
}

func (t *SQLiteTable) Iterate() (table.RowIterator, error) {
	db, err := sql.Open("sqlite", t.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", t.Path, err)
	}
	q := t.Query
	if q == "" {
		q = fmt.Sprintf(`SELECT * FROM %q`, t.Table)
	}
	rows, err := db.Query(q)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("query %s: %w", t.Path, err)
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		db.Close()
		return nil, err
	}
	return &sqliteIterator{db: db, rows: rows, fields: cols}, nil
}

type sqliteIterator struct {
	db     *sql.DB
	rows   *sql.Rows
	fields []string
	cur    table.Row
	err    error
}

func (it *sqliteIterator) Fields() []string { return it.fields }

func (it *sqliteIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.rows.Next() {
		return false
	}
	vals := make([]interface{}, len(it.fields))
	ptrs := make([]interface{}, len(vals))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := it.rows.Scan(ptrs...); err != nil {
		it.err = err
		return false
	}
	row := make(table.Row, len(vals))
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			row[i] = string(b)
		} else {
			row[i] = v
		}
	}
	it.cur = row
	return true
}

func (it *sqliteIterator) Row() table.Row { return it.cur }

func (it *sqliteIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

func (it *sqliteIterator) Close() error {
	err := it.rows.Close()
	if cerr := it.db.Close(); err == nil {
		err = cerr
	}
	return err
}

// sqliteTableNames lists the user tables of a database file.
func sqliteTableNames(path string) ([]string, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables in %s: %w", path, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// WriteSQLite creates, or replaces, a table in a SQLite database and fills
// it with the stream's rows inside one transaction. Column types are left to
// SQLite's dynamic typing; structured cell values are stored as JSON text.
func WriteSQLite(path, tableName string, it table.RowIterator) error {
	fields := it.Fields()
	if len(fields) == 0 {
		return fmt.Errorf("cannot create table %q from an empty header", tableName)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = fmt.Sprintf("%q", f)
		marks[i] = "?"
	}
	if _, err := db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, tableName)); err != nil {
		return fmt.Errorf("drop %q: %w", tableName, err)
	}
	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE %q (%s)`, tableName, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("create %q: %w", tableName, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %q VALUES (%s)`, tableName, strings.Join(marks, ", ")))
	if err != nil {
		tx.Rollback()
		return err
	}

	count := 0
	for it.Next() {
		row := it.Row()
		args := make([]interface{}, len(fields))
		for i := range fields {
			if i < len(row) {
				args[i] = sqlValue(row[i])
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("insert into %q: %w", tableName, err)
		}
		count++
	}
	if err := it.Error(); err != nil {
		stmt.Close()
		tx.Rollback()
		return err
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Debug("wrote sqlite table", "path", path, "table", tableName, "rows", count)
	return nil
}

// sqlValue flattens a cell for the driver.
func sqlValue(v interface{}) interface{} {
	switch v.(type) {
	case nil, bool, int, int64, float64, string, []byte:
		return v
	default:
		if f, ok := table.Float64(v); ok {
			return f
		}
		return formatCell(v)
	}
}
