package database

import (
	"context"
	"fmt"
	"testing"

	"katalog/internal/config"
	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), config.Database{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.Equal(t, config.DriverMemory, store.Driver)
	assert.IsType(t, &repositories.MemoryProductRepository{}, store.Products)
}

func TestOpen_SQLiteMigrates(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	store, err := Open(ctx, config.Database{Driver: config.DriverSQLite, URL: dsn})
	require.NoError(t, err)
	defer store.Close(ctx)

	product := &models.Product{Name: "Pen", Description: "Blue ink pen", Price: 1.5, Category: models.CategoryOther}
	require.NoError(t, store.Products.Create(ctx, product))

	products, err := store.Products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Database{Driver: "cassandra"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
