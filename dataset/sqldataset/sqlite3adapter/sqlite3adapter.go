/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqldataset package that works over a SQLite3
database file.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jules-chstlr/sascade/dataset/sqldataset"

	// Import of SQLite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type adapter struct {
	db *sql.DB
}

/*
Open takes a path to a SQLite3 database file and returns an Adapter
that works on the database or an error if it fails to open it.
*/
func Open(filepath string) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", filepath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite3 database %s: %v", filepath, err)
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return fmt.Sprintf("%q", featureName), nil
}
