package record

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cleardemon/cdf/sqldb"
	"github.com/cleardemon/cdf/sqlval"
)

var (
	// ErrNoTable reports a query-building call with no table name
	// configured and none supplied.
	ErrNoTable = errors.New("record: no table name configured")

	// ErrNoIdentity reports an update on a record whose identity
	// column is missing or unset.
	ErrNoIdentity = errors.New("record: no identity column value")

	// ErrNoColumns reports a write on a record with no writable
	// columns.
	ErrNoColumns = errors.New("record: no writable columns declared")
)

// tableName resolves the table for one query-building call: explicit
// override first, then the configured name.
func (r *Record) tableName(override []string) (string, error) {
	if len(override) > 0 && override[0] != "" {
		return override[0], nil
	}
	if r.table == "" {
		return "", ErrNoTable
	}
	return r.table, nil
}

// writableColumns returns the declared columns minus the identity
// column, in declaration order.
func (r *Record) writableColumns() []*Column {
	var cols []*Column
	for _, col := range r.cols {
		if col.isIdentity() {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

// identity returns the record's identity column, if declared.
func (r *Record) identity() *Column {
	for _, col := range r.cols {
		if col.isIdentity() {
			return col
		}
	}
	return nil
}

// buildInsert renders the insert statement for the writable columns.
func (r *Record) buildInsert(override []string) (string, error) {
	table, err := r.tableName(override)
	if err != nil {
		return "", err
	}
	cols := r.writableColumns()
	if len(cols) == 0 {
		return "", ErrNoColumns
	}
	names := make([]string, len(cols))
	tokens := make([]string, len(cols))
	for i, col := range cols {
		names[i] = sqlval.QuoteIdentifier(col.name)
		tokens[i] = "?"
	}
	return fmt.Sprintf("insert into %s (%s) values (%s)",
		sqlval.QuoteIdentifier(table), strings.Join(names, ","), strings.Join(tokens, ",")), nil
}

// buildUpdate renders the update statement, predicated on the identity
// column.
func (r *Record) buildUpdate(override []string) (string, error) {
	table, err := r.tableName(override)
	if err != nil {
		return "", err
	}
	id := r.identity()
	if id == nil || id.IsNull() {
		return "", ErrNoIdentity
	}
	cols := r.writableColumns()
	if len(cols) == 0 {
		return "", ErrNoColumns
	}
	assignments := make([]string, len(cols))
	for i, col := range cols {
		assignments[i] = sqlval.QuoteIdentifier(col.name) + "=?"
	}
	return fmt.Sprintf("update %s set %s where %s=?",
		sqlval.QuoteIdentifier(table), strings.Join(assignments, ","), sqlval.QuoteIdentifier(id.name)), nil
}

// buildSelect renders a select over the declared columns (or * when
// none are declared) with optional where and ordering clauses. The
// where parameters are returned for binding.
func (r *Record) buildSelect(where *Where, orders []Order, override []string) (string, []sqldb.Parameter, error) {
	table, err := r.tableName(override)
	if err != nil {
		return "", nil, err
	}
	projection := "*"
	if len(r.cols) > 0 {
		names := make([]string, len(r.cols))
		for i, col := range r.cols {
			names[i] = sqlval.QuoteIdentifier(col.name)
		}
		projection = strings.Join(names, ",")
	}
	clause, params, err := where.build()
	if err != nil {
		return "", nil, err
	}
	statement := fmt.Sprintf("select %s from %s", projection, sqlval.QuoteIdentifier(table))
	if clause != "" {
		statement += " where " + clause
	}
	statement += orderBy(orders)
	return statement, params, nil
}

// buildDelete renders a delete with an optional where clause.
func (r *Record) buildDelete(where *Where, override []string) (string, []sqldb.Parameter, error) {
	table, err := r.tableName(override)
	if err != nil {
		return "", nil, err
	}
	clause, params, err := where.build()
	if err != nil {
		return "", nil, err
	}
	statement := "delete from " + sqlval.QuoteIdentifier(table)
	if clause != "" {
		statement += " where " + clause
	}
	return statement, params, nil
}

// Insert writes the record as a new row, binding every writable column
// in declaration order. The identity column is never part of the
// column list.
func (r *Record) Insert(ctx context.Context, client *sqldb.Client, table ...string) error {
	statement, err := r.buildInsert(table)
	if err != nil {
		return err
	}
	client.NewQuery()
	if err := r.BindParameters(client, nil, false); err != nil {
		return err
	}
	_, err = client.Query(ctx, statement)
	return err
}

// Update rewrites the row identified by the record's identity column.
func (r *Record) Update(ctx context.Context, client *sqldb.Client, table ...string) error {
	statement, err := r.buildUpdate(table)
	if err != nil {
		return err
	}
	client.NewQuery()
	if err := r.BindParameters(client, nil, false); err != nil {
		return err
	}
	if err := client.AddParameter(sqlval.TypeInteger, r.identity().value); err != nil {
		return err
	}
	_, err = client.Query(ctx, statement)
	return err
}

// Select queries rows matching the where clause, ordered as requested.
func (r *Record) Select(ctx context.Context, client *sqldb.Client, where *Where, orders []Order, table ...string) ([]sqldb.Row, error) {
	statement, params, err := r.buildSelect(where, orders, table)
	if err != nil {
		return nil, err
	}
	client.NewQuery()
	for _, p := range params {
		if err := client.AddParameter(p.Type, p.Value); err != nil {
			return nil, err
		}
	}
	return client.Query(ctx, statement)
}

// SelectOne runs Select and loads the first matching row into the
// record, reporting whether a row was found.
func (r *Record) SelectOne(ctx context.Context, client *sqldb.Client, where *Where, table ...string) (bool, error) {
	rows, err := r.Select(ctx, client, where, nil, table...)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	return r.Load(rows[0]), nil
}

// Delete removes rows matching the where clause. A nil where clause
// deletes every row in the table.
func (r *Record) Delete(ctx context.Context, client *sqldb.Client, where *Where, table ...string) error {
	statement, params, err := r.buildDelete(where, table)
	if err != nil {
		return err
	}
	client.NewQuery()
	for _, p := range params {
		if err := client.AddParameter(p.Type, p.Value); err != nil {
			return err
		}
	}
	_, err = client.Query(ctx, statement)
	return err
}
