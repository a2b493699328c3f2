package sqldb

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// Credentials identify the server, login and target schema for a
// client connection.
type Credentials struct {
	Host     string
	User     string
	Password string
	Schema   string
}

// Validate reports malformed credentials before any connection is
// attempted.
func (c Credentials) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("sqldb: credentials missing host")
	}
	if c.User == "" {
		return fmt.Errorf("sqldb: credentials missing user")
	}
	if c.Schema == "" {
		return fmt.Errorf("sqldb: credentials missing schema")
	}
	return nil
}

// DSN renders the credentials as a go-sql-driver connection string,
// selecting the target schema and a utf8mb4 character set.
func (c Credentials) DSN() string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = c.Host
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.DBName = c.Schema
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
