/*
Package pgadapter provides an implementation of the Adapter interface
in the sqldataset package that works over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jules-chstlr/sascade/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

type adapter struct {
	db *sql.DB
}

/*
Open takes a PostgreSQL database connection URL and returns an Adapter
that works on the database or an error if it fails to connect to it.
*/
func Open(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL database: %v", err)
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
