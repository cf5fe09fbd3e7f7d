// Package duck loads a csv or json file into an in-memory DuckDB table and serves its
// rows as an editable collection, writing committed rows back to the table.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"grille/edible"
	nt "grille/entity"
)

// Todo: write back to the source file on request, only the table is updated for now

const idField = "id"

// Duck is a DuckDB-backed row store.
type Duck struct {
	db       *sql.DB
	table    string
	filename string
	fields   []nt.Field
	columns  []nt.Column
	lastId   int64

	ctx    context.Context
	logger nt.Logger
}

// New opens an in-memory database. The duckdb driver is registered by main.
func New(ctx context.Context, lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	dk = &Duck{
		db:     db,
		ctx:    ctx,
		logger: lgr,
	}
	return
}

// Close closes the database.
func (dk *Duck) Close() {
	dk.db.Close()
}

// Load reads path into table, numbering rows with an id column.
func (dk *Duck) Load(path, table string) (err error) {

	reader, err := readerFor(path)
	if err != nil {
		return
	}

	query := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT ROW_NUMBER() OVER () AS %s, * FROM %s('%s')",
		ident(table), idField, reader, strings.ReplaceAll(path, "'", "''"))

	_, err = dk.db.ExecContext(dk.ctx, query)
	if err != nil {
		err = errors.Wrapf(err, "failed to load %s", path)
		return
	}

	dk.table = table
	dk.filename = path

	dk.fields, err = getFields(dk.ctx, dk.db, table)
	if err != nil {
		return
	}

	err = dk.db.QueryRowContext(dk.ctx, fmt.Sprintf(
		"SELECT COALESCE(MAX(%s), 0) FROM %s", idField, ident(table))).Scan(&dk.lastId)
	if err != nil {
		err = errors.Wrapf(err, "failed to get last id")
		return
	}

	dk.logger.Info(dk.ctx, "loaded table", "path", path, "table", table, "fields", len(dk.fields), "last_id", dk.lastId)
	return
}

// Name returns the name of the loaded file.
func (dk *Duck) Name() string {
	return dk.filename
}

// Fields returns the table schema, id excluded.
func (dk *Duck) Fields() []nt.Field {
	return dk.fields
}

// Columns returns one column per field, for when none are configured.
func (dk *Duck) Columns() []nt.Column {

	columns := make([]nt.Column, len(dk.fields))
	for i, field := range dk.fields {
		columns[i] = nt.Column{Field: field.Name, Width: 12}
	}
	return columns
}

// Count returns the number of rows in the table.
func (dk *Duck) Count() (count int, err error) {

	err = dk.db.QueryRowContext(dk.ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", ident(dk.table))).Scan(&count)
	err = errors.Wrapf(err, "failed to count rows")
	return
}

// Rows reads every row with values in the order of columns.
func (dk *Duck) Rows(columns []nt.Column) (rows []*nt.Row, err error) {

	err = dk.checkColumns(columns)
	if err != nil {
		return
	}

	names := []string{ident(idField)}
	for _, col := range columns {
		names = append(names, ident(col.Field))
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(names, ", "), ident(dk.table), ident(idField))

	result, err := dk.db.QueryContext(dk.ctx, query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query rows")
		return
	}
	defer result.Close()

	count, err := columnCount(result)
	if err != nil {
		return
	}

	for result.Next() {
		var vals []any
		vals, err = scanRow(result, count)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		values := make([]nt.Value, count-1)
		for i, val := range vals[1:] {
			values[i] = nt.Value{Raw: val}
		}

		rows = append(rows, &nt.Row{
			Id:     fmt.Sprintf("%v", vals[0]),
			Values: values,
		})
	}

	err = result.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

// Collection reads the rows for columns into an editable collection whose commits are
// saved to the table.
func (dk *Duck) Collection(columns []nt.Column, opts ...edible.Option) (coll *edible.Collection, err error) {

	rows, err := dk.Rows(columns)
	if err != nil {
		return
	}
	dk.columns = columns

	base := []edible.Option{
		edible.WithColumns(len(columns)),
		edible.WithIds(dk.NextId),
		edible.WithCommitHook(dk.Save),
	}
	base = append(base, dk.Validators(columns)...)

	coll = edible.New(rows, append(base, opts...)...)
	return
}

// NextId hands out the id for a row being added.
func (dk *Duck) NextId() string {

	dk.lastId++
	return strconv.FormatInt(dk.lastId, 10)
}

// Save writes row to the table, inserting it when added.
func (dk *Duck) Save(row *nt.Row, added bool) (err error) {

	query, args := dk.updateQuery(row)
	if added {
		query, args = dk.insertQuery(row)
	}

	result, err := dk.db.ExecContext(dk.ctx, query, args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to save row %s", row.Id)
		return
	}

	count, err := result.RowsAffected()
	if err != nil {
		err = errors.Wrapf(err, "failed to get rows affected")
		return
	}
	if count != 1 {
		err = errors.Errorf("saving row %s affected %d rows", row.Id, count)
		return
	}

	dk.logger.Info(dk.ctx, "saved row", "id", row.Id, "added", added)
	return
}

// Validators returns a cell validator for each typed column, checking that typed text
// will cast to the column type. Numbers are checked locally, other types by duckdb.
func (dk *Duck) Validators(columns []nt.Column) (opts []edible.Option) {

	var castable func(text, fieldType string) (bool, error)
	if dk.db != nil {
		castable = dk.castable
	}

	types := dk.fieldTypes()
	for i, col := range columns {
		check := validator(types[col.Field], castable)
		if check != nil {
			opts = append(opts, edible.WithCellValidator(i, check))
		}
	}
	return
}

// unexported

func (dk *Duck) fieldTypes() map[string]string {

	types := map[string]string{}
	for _, field := range dk.fields {
		types[field.Name] = field.Type
	}
	return types
}

func (dk *Duck) checkColumns(columns []nt.Column) (err error) {

	types := dk.fieldTypes()
	for _, col := range columns {
		if _, ok := types[col.Field]; !ok {
			return errors.Errorf("no field %q in table %s", col.Field, dk.table)
		}
	}
	return
}

func (dk *Duck) updateQuery(row *nt.Row) (query string, args []any) {

	types := dk.fieldTypes()
	sets := make([]string, len(dk.columns))
	for i, col := range dk.columns {
		sets[i] = fmt.Sprintf("%s = %s", ident(col.Field), cast(types[col.Field]))
		args = append(args, param(row.Value(i)))
	}
	args = append(args, row.Id)

	query = fmt.Sprintf("UPDATE %s SET %s WHERE %s = CAST(? AS BIGINT)",
		ident(dk.table), strings.Join(sets, ", "), ident(idField))
	return
}

func (dk *Duck) insertQuery(row *nt.Row) (query string, args []any) {

	types := dk.fieldTypes()
	names := []string{ident(idField)}
	marks := []string{"CAST(? AS BIGINT)"}
	args = []any{row.Id}

	for i, col := range dk.columns {
		names = append(names, ident(col.Field))
		marks = append(marks, cast(types[col.Field]))
		args = append(args, param(row.Value(i)))
	}

	query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident(dk.table), strings.Join(names, ", "), strings.Join(marks, ", "))
	return
}

func readerFor(path string) (reader string, err error) {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		reader = "read_csv_auto"
	case ".json", ".ndjson", ".jsonl", ".log":
		reader = "read_json_auto"
	case ".parquet":
		reader = "read_parquet"
	default:
		err = errors.Errorf("no reader for %s", path)
	}
	return
}

// castable asks duckdb whether text converts to fieldType.
func (dk *Duck) castable(text, fieldType string) (ok bool, err error) {

	query := fmt.Sprintf("SELECT TRY_CAST(? AS %s) IS NOT NULL", fieldType)

	err = dk.db.QueryRowContext(dk.ctx, query, text).Scan(&ok)
	err = errors.Wrapf(err, "failed to check %q as %s", text, fieldType)
	return
}

// validator checks numbers locally and leaves other typed fields to castable.
// Text fields, and typed fields when castable is nil, get none.
func validator(fieldType string, castable func(text, fieldType string) (bool, error)) func(nt.Value) error {

	switch fieldType {
	case "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT":
		return func(val nt.Value) error {
			if val.String() == "" {
				return nil
			}
			_, err := val.Int()
			return err
		}
	case "FLOAT", "DOUBLE":
		return func(val nt.Value) error {
			if val.String() == "" {
				return nil
			}
			_, err := val.Float()
			return err
		}
	case "", "VARCHAR":
		return nil
	}

	if castable == nil {
		return nil
	}
	return func(val nt.Value) (err error) {

		text, isText := val.Raw.(string)
		if !isText || text == "" {
			return
		}

		ok, err := castable(text, fieldType)
		if err != nil {
			return
		}
		if !ok {
			err = errors.Errorf("%q is not a valid %s", text, strings.ToLower(fieldType))
		}
		return
	}
}

// cast is the placeholder for a value bound as text and stored as fieldType.
func cast(fieldType string) string {

	if fieldType == "" || fieldType == "VARCHAR" {
		return "?"
	}
	return fmt.Sprintf("CAST(? AS %s)", fieldType)
}

// param binds text typed into an editor, empty meaning null, and loaded values as they are.
func param(val nt.Value) any {

	text, ok := val.Raw.(string)
	if !ok {
		return val.Raw
	}
	if text == "" {
		return nil
	}
	return text
}

func ident(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnCount(rows *sql.Rows) (int, error) {
	cols, err := rows.Columns()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get cols from query rows")
	}
	return len(cols), nil
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

func getFields(ctx context.Context, db *sql.DB, table string) (fields []nt.Field, err error) {

	rows, err := db.QueryContext(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		err = errors.Wrapf(err, "failed to query schema")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var field nt.Field
		if err = rows.Scan(&field.Name, &field.Type); err != nil {
			err = errors.Wrapf(err, "failed to scan field")
			return
		}
		if field.Name == idField {
			continue
		}
		fields = append(fields, field)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating fields")
	return
}
