package pgadapter_test

import (
	"testing"

	"github.com/jules-chstlr/sascade/dataset/sqldataset/pgadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnName(t *testing.T) {
	a, err := pgadapter.Open("postgresql://localhost/samples")
	require.NoError(t, err)
	column, err := a.ColumnName("sepal_width")
	require.NoError(t, err)
	assert.Equal(t, `"sepal_width"`, column)
}

func TestColumnNameRejectsQuotes(t *testing.T) {
	a, err := pgadapter.Open("postgresql://localhost/samples")
	require.NoError(t, err)
	_, err = a.ColumnName(`sepal"width`)
	require.Error(t, err)
}
