package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
)

func TestCategoryFindAll_AscendingID(t *testing.T) {
	repo := memory.NewCategoryRepository()
	ctx := context.Background()
	for _, c := range []domain.Category{{ID: 3, Name: "Computadores"}, {ID: 1, Name: "Livros"}, {ID: 2, Name: "Eletrônicos"}} {
		_, err := repo.Save(ctx, c)
		require.NoError(t, err)
	}

	categories, err := NewCategoryService(repo).FindAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Category{
		{ID: 1, Name: "Livros"},
		{ID: 2, Name: "Eletrônicos"},
		{ID: 3, Name: "Computadores"},
	}, categories)
}
