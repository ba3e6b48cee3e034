package duck

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	nt "grille/entity"
)

const table = "grille_rows"

// Column is a column of the loaded table.
type Column struct {
	Name string
	Type string
}

// Duck serves rows loaded from a file into an in-memory duckdb.
type Duck struct {
	db       *sql.DB
	logger   nt.Logger
	filter   nt.Filter
	sorts    []nt.Sort
	filename string
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open duckdb")
		return
	}

	dk = &Duck{
		db:     db,
		sorts:  []nt.Sort{},
		logger: lgr,
	}

	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Load a json, ndjson, csv or parquet file
func (dk *Duck) Load(ctx context.Context, path string) (err error) {

	reader, err := readerFor(path)
	if err != nil {
		return
	}

	_, err = dk.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table))
	if err != nil {
		err = errors.Wrapf(err, "failed to drop table")
		return
	}

	_, err = dk.db.Exec(fmt.Sprintf(`
		CREATE TABLE %s AS
		SELECT
			ROW_NUMBER() OVER () AS _row_id,
			*
		FROM %s('%s')
	`, table, reader, strings.ReplaceAll(path, "'", "''")))
	if err != nil {
		err = errors.Wrapf(err, "failed to load %s", path)
		return
	}

	dk.filename = path
	dk.logger.Info(ctx, "loaded rows", "path", path, "reader", reader)
	return
}

// Name returns the name of the loaded file
func (dk *Duck) Name() string {
	return dk.filename
}

// Columns of the loaded table in file order.
func (dk *Duck) Columns() (columns []Column, err error) {

	rows, err := dk.db.Query(`
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = ? AND column_name != '_row_id'
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		err = errors.Wrapf(err, "failed to query schema")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var column Column
		err = rows.Scan(&column.Name, &column.Type)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan column")
			return
		}
		columns = append(columns, column)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating columns")
	return
}

// SetView Filter and Sort(s)
func (dk *Duck) SetView(filter nt.Filter, sorts []nt.Sort) (err error) {
	dk.filter = filter
	dk.sorts = sorts
	return nil
}

// Count of rows in view
func (dk *Duck) Count() (count int, err error) {

	where, args := dk.whereClause()
	err = dk.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s %s", table, where), args...).Scan(&count)
	err = errors.Wrapf(err, "failed to count rows")
	return
}

// Page of rows in view
func (dk *Duck) Page(offset, size int) (page []nt.RowData, err error) {

	where, args := dk.whereClause()
	query := fmt.Sprintf("SELECT * FROM %s %s %s LIMIT %d OFFSET %d",
		table, where, dk.orderClause(), size, offset)

	rows, err := dk.db.Query(query, args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query rows")
		return
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		err = errors.Wrapf(err, "failed to get cols from query rows")
		return
	}

	page = []nt.RowData{}
	for rows.Next() {
		var vals []any
		vals, err = scanRow(rows, len(names))
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		row := nt.RowData{Values: map[string]nt.Value{}}
		for i, val := range vals {
			if names[i] == "_row_id" {
				row.Id = fmt.Sprintf("%v", val)
				continue
			}
			row.Values[names[i]] = nt.Value{Raw: val}
		}
		page = append(page, row)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

// unexported

func readerFor(path string) (reader string, err error) {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".ndjson", ".jsonl":
		reader = "read_json_auto"
	case ".csv", ".tsv":
		reader = "read_csv_auto"
	case ".parquet":
		reader = "read_parquet"
	default:
		err = errors.Errorf("unsupported file type: %s", path)
	}
	return
}

func (dk *Duck) whereClause() (clause string, args []any) {

	expr, args := buildFilterExpr(dk.filter)
	if expr == "" {
		return "", nil
	}
	return "WHERE " + expr, args
}

func (dk *Duck) orderClause() string {

	terms := []string{}
	for _, srt := range dk.sorts {
		direction := "ASC"
		if srt.Desc() {
			direction = "DESC"
		}
		terms = append(terms, fmt.Sprintf("%s %s NULLS FIRST", quote(srt.Field), direction))
	}
	terms = append(terms, "_row_id")

	return "ORDER BY " + strings.Join(terms, ", ")
}

// buildFilterExpr recursively builds filter expression (without WHERE prefix)
func buildFilterExpr(f nt.Filter) (string, []any) {

	compare := func(op string) (string, []any) {
		return fmt.Sprintf("%s %s ?", quote(f.Field), op), []any{f.Value}
	}

	switch f.Op {
	case nt.Eq:
		return compare("=")
	case nt.Ne:
		return compare("!=")
	case nt.Gt:
		return compare(">")
	case nt.Gte:
		return compare(">=")
	case nt.Lt:
		return compare("<")
	case nt.Lte:
		return compare("<=")
	case nt.Contains:
		return fmt.Sprintf("CAST(%s AS VARCHAR) ILIKE ?", quote(f.Field)), []any{"%" + text(f.Value) + "%"}
	case nt.Match:
		return fmt.Sprintf("regexp_matches(CAST(%s AS VARCHAR), ?)", quote(f.Field)), []any{text(f.Value)}
	case nt.And:
		return joinExprs(f.Children, " AND ")
	case nt.Or:
		return joinExprs(f.Children, " OR ")
	case nt.Not:
		for _, child := range f.Children {
			if !child.Enabled {
				continue
			}
			expr, args := buildFilterExpr(child)
			if expr == "" {
				break
			}
			return "NOT (" + expr + ")", args
		}
	}
	return "", nil
}

func joinExprs(children []nt.Filter, sep string) (string, []any) {

	clauses := []string{}
	args := []any{}
	for _, child := range children {
		if !child.Enabled {
			continue
		}
		if expr, childArgs := buildFilterExpr(child); expr != "" {
			clauses = append(clauses, expr)
			args = append(args, childArgs...)
		}
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "(" + strings.Join(clauses, sep) + ")", args
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func text(value any) string {
	if str, ok := value.(*string); ok && str != nil {
		return *str
	}
	return fmt.Sprintf("%v", value)
}

func scanRow(rows *sql.Rows, columnCount int) ([]any, error) {
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}
