// Package sqldb provides a thin, synchronous MySQL client built around
// positional parameter substitution: callers queue typed parameters,
// supply SQL containing placeholder tokens and the client renders and
// executes the final statement. A client owns a single pinned
// connection and is not safe for concurrent use.
package sqldb

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/cleardemon/cdf/sqlval"
)

// Row maps result column names to driver-native values.
type Row map[string]any

// Client is a stateful query session against one MySQL schema. Its
// lifecycle is Closed → Open → Closed; Open and Close are both
// idempotent and executing a statement while closed reconnects
// implicitly.
type Client struct {
	creds    Credentials
	db       *sqlx.DB
	conn     *sqlx.Conn
	params   []Parameter
	cursor   *sqlx.Rows
	affected int64
	lastID   int64
	log      *zap.Logger
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger attaches a logger that traces executed statements at
// debug level. The client performs no logging without one.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a closed client for the given credentials. The
// credentials are validated immediately; no connection is attempted
// until Open or the first executed statement.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	c := &Client{creds: creds}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Open connects to the server, selects the target schema and pins a
// single connection for the client's lifetime. Opening an open client
// is a no-op.
func (c *Client) Open(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	db, err := sqlx.Open("mysql", c.creds.DSN())
	if err != nil {
		return fmt.Errorf("sqldb: open connection: %w", err)
	}
	conn, err := db.Connx(ctx)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("sqldb: acquire connection: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return fmt.Errorf("sqldb: ping: %w", err)
	}
	c.db = db
	c.conn = conn
	return nil
}

// IsOpen reports whether the client holds a live connection.
func (c *Client) IsOpen() bool {
	return c.conn != nil
}

// Close releases the open cursor and connection, if any. Closing a
// closed client is a no-op.
func (c *Client) Close() error {
	c.closeCursor()
	var err error
	if c.conn != nil {
		err = c.conn.Close()
		c.conn = nil
	}
	if c.db != nil {
		if closeErr := c.db.Close(); err == nil {
			err = closeErr
		}
		c.db = nil
	}
	return err
}

// AddParameter validates value against the declared type and appends it
// to the pending-parameter queue. Parameters accumulate until a query
// executes or NewQuery resets them.
func (c *Client) AddParameter(t sqlval.Type, value any) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", sqlval.ErrUnknownType, int(t))
	}
	coerced, err := sqlval.Coerce(t, value)
	if err != nil {
		return err
	}
	c.params = append(c.params, Parameter{Type: t, Value: coerced})
	return nil
}

// PendingParameters reports how many parameters await the next query.
func (c *Client) PendingParameters() int {
	return len(c.params)
}

// NewQuery discards pending parameters and any open cursor. Call it
// between unrelated logical queries that reuse the client; calling it
// twice in a row is harmless.
func (c *Client) NewQuery() {
	c.params = nil
	c.closeCursor()
}

// Query substitutes pending parameters into the placeholder tokens of
// query, executes the result and returns all rows. Statements that do
// not return rows yield an empty result and record their affected-row
// count. Pending parameters are consumed whether or not substitution
// succeeds.
func (c *Client) Query(ctx context.Context, query string) ([]Row, error) {
	params := c.params
	c.params = nil
	statement, err := Substitute(query, params)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, statement)
}

// QueryRaw executes query exactly as supplied, bypassing parameter
// substitution. Pending parameters are left untouched.
func (c *Client) QueryRaw(ctx context.Context, query string) ([]Row, error) {
	return c.execute(ctx, query)
}

// BeginQuery substitutes and executes like Query but leaves the result
// cursor open for row-at-a-time consumption through NextRow, so large
// result sets need not be materialised.
func (c *Client) BeginQuery(ctx context.Context, query string) error {
	params := c.params
	c.params = nil
	statement, err := Substitute(query, params)
	if err != nil {
		return err
	}
	return c.openCursor(ctx, statement)
}

// NextRow yields the next row of the cursor opened by BeginQuery or
// BeginProcedure, or nil once the cursor is exhausted. The cursor is
// released on exhaustion and on error.
func (c *Client) NextRow() (Row, error) {
	if c.cursor == nil {
		return nil, ErrNoCursor
	}
	if c.cursor.Next() {
		row := make(Row)
		if err := c.cursor.MapScan(row); err != nil {
			c.closeCursor()
			return nil, fmt.Errorf("sqldb: scan row: %w", err)
		}
		return row, nil
	}
	err := c.cursor.Err()
	c.closeCursor()
	return nil, err
}

// Procedure executes a stored procedure, passing the pending parameters
// positionally, and returns any rows it produces.
func (c *Client) Procedure(ctx context.Context, name string) ([]Row, error) {
	statement, err := c.buildCall(name)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, statement)
}

// BeginProcedure executes a stored procedure like Procedure but leaves
// the result cursor open for NextRow.
func (c *Client) BeginProcedure(ctx context.Context, name string) error {
	statement, err := c.buildCall(name)
	if err != nil {
		return err
	}
	return c.openCursor(ctx, statement)
}

// LastID returns the most recent auto-increment value generated on this
// connection.
func (c *Client) LastID() (int64, error) {
	if c.conn == nil {
		return 0, ErrNotConnected
	}
	return c.lastID, nil
}

// RowCount returns the row count recorded by the last executed
// statement: rows returned for reads, rows affected for writes.
func (c *Client) RowCount() int64 {
	return c.affected
}

// Escape applies driver-level string escaping for ad-hoc SQL built
// outside the parameter system.
func (c *Client) Escape(value string) (string, error) {
	if c.conn == nil {
		return "", ErrNotConnected
	}
	return sqlval.Escape(value), nil
}

func (c *Client) buildCall(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("sqldb: procedure name is required")
	}
	params := c.params
	c.params = nil
	args := make([]string, len(params))
	for i, p := range params {
		fragment, err := sqlval.Format(p.Type, p.Value)
		if err != nil {
			return "", err
		}
		args[i] = fragment
	}
	return fmt.Sprintf("CALL %s(%s)", sqlval.QuoteIdentifier(name), strings.Join(args, ", ")), nil
}

func (c *Client) execute(ctx context.Context, statement string) ([]Row, error) {
	c.closeCursor()
	if err := c.Open(ctx); err != nil {
		return nil, err
	}
	if c.log != nil {
		c.log.Debug("executing statement", zap.String("sql", statement))
	}
	if !returnsRows(statement) {
		res, err := c.conn.ExecContext(ctx, statement)
		if err != nil {
			return nil, newExecError(err, statement)
		}
		if affected, err := res.RowsAffected(); err == nil {
			c.affected = affected
		}
		if id, err := res.LastInsertId(); err == nil && id > 0 {
			c.lastID = id
		}
		return nil, nil
	}
	rows, err := c.conn.QueryxContext(ctx, statement)
	if err != nil {
		return nil, newExecError(err, statement)
	}
	defer rows.Close()
	var results []Row
	for rows.Next() {
		row := make(Row)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("sqldb: scan row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, newExecError(err, statement)
	}
	c.affected = int64(len(results))
	return results, nil
}

func (c *Client) openCursor(ctx context.Context, statement string) error {
	c.closeCursor()
	if err := c.Open(ctx); err != nil {
		return err
	}
	if c.log != nil {
		c.log.Debug("opening cursor", zap.String("sql", statement))
	}
	rows, err := c.conn.QueryxContext(ctx, statement)
	if err != nil {
		return newExecError(err, statement)
	}
	c.cursor = rows
	return nil
}

func (c *Client) closeCursor() {
	if c.cursor != nil {
		_ = c.cursor.Close()
		c.cursor = nil
	}
}

// returnsRows classifies a statement by its leading keyword: reads go
// through the row-returning path, everything else is executed for its
// affected-row count.
func returnsRows(statement string) bool {
	fields := strings.Fields(statement)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "select", "show", "describe", "desc", "explain", "call":
		return true
	}
	return false
}
