package sqldb

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotConnected reports an operation that requires a live
	// connection on a closed client.
	ErrNotConnected = errors.New("sqldb: not connected")

	// ErrNoCursor reports NextRow without a preceding BeginQuery.
	ErrNoCursor = errors.New("sqldb: no open cursor")

	// ErrMissingParameter reports a query with more placeholder tokens
	// than pending parameters.
	ErrMissingParameter = errors.New("sqldb: placeholder has no matching parameter")

	// ErrTooManyParameters reports pending parameters left over after
	// every placeholder has been consumed.
	ErrTooManyParameters = errors.New("sqldb: more parameters than placeholders")
)

// ExecError carries the driver's failure diagnostics alongside the
// statement that produced them.
type ExecError struct {
	Message string
	SQL     string
	Code    uint16
	Err     error
}

func (e *ExecError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("sqldb: query failed (%d): %s [%s]", e.Code, e.Message, e.SQL)
	}
	return fmt.Sprintf("sqldb: query failed: %s [%s]", e.Message, e.SQL)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func newExecError(err error, statement string) *ExecError {
	execErr := &ExecError{
		Message: err.Error(),
		SQL:     statement,
		Err:     err,
	}
	var driverErr *mysql.MySQLError
	if errors.As(err, &driverErr) {
		execErr.Code = driverErr.Number
		execErr.Message = driverErr.Message
	}
	return execErr
}
