package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/cleardemon/cdf/sqldb"
)

// profileFile is the TOML document holding named connection profiles:
//
//	[profiles.local]
//	host = "127.0.0.1:3306"
//	user = "root"
//	password = "secret"
//	schema = "app"
type profileFile struct {
	Profiles map[string]profile `toml:"profiles"`
}

type profile struct {
	Host     string `toml:"host"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Schema   string `toml:"schema"`
}

// loadProfile reads the named profile from a TOML file and converts it
// to client credentials.
func loadProfile(path, name string) (sqldb.Credentials, error) {
	var file profileFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return sqldb.Credentials{}, fmt.Errorf("failed to read profile file %q: %w", path, err)
	}
	p, ok := file.Profiles[name]
	if !ok {
		return sqldb.Credentials{}, fmt.Errorf("profile %q not found in %q", name, path)
	}
	creds := sqldb.Credentials{
		Host:     p.Host,
		User:     p.User,
		Password: p.Password,
		Schema:   p.Schema,
	}
	if err := creds.Validate(); err != nil {
		return sqldb.Credentials{}, fmt.Errorf("profile %q: %w", name, err)
	}
	return creds, nil
}
