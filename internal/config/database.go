// internal/config/database.go
package config

import (
	"fmt"
)

// DSN renders the keyword/value connection string the postgres driver
// expects. SSLMode is passed through verbatim; "disable" is the
// development default set in Load.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}
