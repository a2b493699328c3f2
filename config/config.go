// Package config reads application settings from INI files and exposes
// them through typed, defaulted accessors so callers never need to
// null-check a missing key.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/cleardemon/cdf/coerce"
)

// Config is one loaded INI document.
type Config struct {
	file *ini.File
}

// Open loads and parses the INI file at path.
func Open(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %q: %w", path, err)
	}
	return &Config{file: f}, nil
}

// Parse reads an INI document from an in-memory source.
func Parse(source []byte) (*Config, error) {
	f, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &Config{file: f}, nil
}

// HasSection reports whether the named section exists. The root section
// is addressed by the empty string.
func (c *Config) HasSection(section string) bool {
	_, err := c.file.GetSection(section)
	return err == nil
}

// HasKey reports whether the key exists in the section.
func (c *Config) HasKey(section, key string) bool {
	s, err := c.file.GetSection(section)
	return err == nil && s.HasKey(key)
}

// String returns the key's value, or fallback when absent.
func (c *Config) String(section, key, fallback string) string {
	if !c.HasKey(section, key) {
		return fallback
	}
	return c.file.Section(section).Key(key).String()
}

// Int returns the key's value coerced to an integer, or fallback when
// absent.
func (c *Config) Int(section, key string, fallback int) int {
	if !c.HasKey(section, key) {
		return fallback
	}
	return coerce.AsInt(c.file.Section(section).Key(key).String())
}

// Float returns the key's value coerced to a float, or fallback when
// absent.
func (c *Config) Float(section, key string, fallback float64) float64 {
	if !c.HasKey(section, key) {
		return fallback
	}
	return coerce.AsFloat(c.file.Section(section).Key(key).String())
}

// Bool returns the key's value coerced to a boolean ("1", "true", "on"
// and "yes" are true), or fallback when absent.
func (c *Config) Bool(section, key string, fallback bool) bool {
	if !c.HasKey(section, key) {
		return fallback
	}
	return coerce.AsBool(c.file.Section(section).Key(key).String())
}
