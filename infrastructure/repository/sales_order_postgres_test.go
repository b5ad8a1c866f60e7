package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInsertQuery(t *testing.T) {
	records := sampleRecords()

	query, args, err := buildInsertQuery(records[:2])

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "INSERT INTO sales_orders (id,display_number,customer_name"))
	assert.Contains(t, query, "ON CONFLICT (id) DO NOTHING")
	assert.Contains(t, query, "$22")
	assert.NotContains(t, query, "$23")
	assert.NotContains(t, query, "DO UPDATE")
	require.Len(t, args, 22)
	assert.Equal(t, "SO-1", args[0])
	assert.Equal(t, "SO-2", args[11])
}

func TestBuildLoadQuery(t *testing.T) {
	query, args, err := buildLoadQuery()

	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Equal(t,
		"SELECT id, display_number, customer_name, division_name, sales_rep_name, amount, gross_profit_rate, status, created_date, description, memo FROM sales_orders ORDER BY seq ASC",
		query,
	)
}
