package main

import (
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/fixtures"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRowsMatchColumns(t *testing.T) {
	products, err := fixtures.Products()
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows, err := productRows(products, now)
	require.NoError(t, err)
	require.Len(t, rows, len(products))

	for i, row := range rows {
		assert.Len(t, row, len(productColumns))
		id, ok := row[0].(pgtype.UUID)
		require.True(t, ok)
		assert.True(t, id.Valid)
		assert.Equal(t, products[i].Title, row[1])
	}
}

func TestProductRowsStampsMissingTimes(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows, err := productRows([]models.Product{
		{ID: "0191d3a0-5b2c-7001-8007-4f6e2a9c0001", Title: "a"},
		{ID: "0191d3a0-5b2c-7002-800e-4f6e2a9c0002", Title: "b"},
	}, now)
	require.NoError(t, err)

	createdIdx := len(productColumns) - 2
	assert.Equal(t, now, rows[0][createdIdx])
	assert.Equal(t, now.Add(-time.Second), rows[1][createdIdx])
	assert.Nil(t, rows[0][createdIdx-1], "images stay NULL when absent")
}

func TestProductRowsRejectsBadID(t *testing.T) {
	_, err := productRows([]models.Product{{ID: "nope", Title: "x"}}, time.Now())
	assert.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"migrate", "products", "all"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	products, _, _ := root.Find([]string{"products"})
	assert.NotNil(t, products.Flags().Lookup("truncate"))
}
