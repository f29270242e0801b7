package sqlite3adapter_test

import (
	"testing"

	"github.com/jules-chstlr/sascade/dataset/sqldataset/sqlite3adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnName(t *testing.T) {
	a, err := sqlite3adapter.Open(":memory:")
	require.NoError(t, err)
	column, err := a.ColumnName("petal_length")
	require.NoError(t, err)
	assert.Equal(t, `"petal_length"`, column)
}

func TestColumnNameRejectsQuotes(t *testing.T) {
	a, err := sqlite3adapter.Open(":memory:")
	require.NoError(t, err)
	_, err = a.ColumnName(`petal"length`)
	require.Error(t, err)
}
