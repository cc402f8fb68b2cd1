package service

import (
	"strings"
	"testing"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	svc := NewCategoryService(categoryRepo)

	category, err := svc.CreateCategory(CategoryInput{Name: "Food", Color: "#ff0000", Icon: "🍔"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.Equal(t, "Food", category.Name)
	assert.Equal(t, "#ff0000", category.Color)
	assert.Equal(t, "🍔", category.Icon)
}

func TestCreateCategory_AppliesDefaults(t *testing.T) {
	svc := NewCategoryService(testutil.NewMockCategoryRepository())

	category, err := svc.CreateCategory(CategoryInput{Name: "  Travel  "})

	require.NoError(t, err)
	assert.Equal(t, "Travel", category.Name)
	assert.Equal(t, domain.DefaultCategoryColor, category.Color)
	assert.Equal(t, domain.DefaultCategoryIcon, category.Icon)
}

func TestCreateCategory_NameValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", domain.ErrNameRequired},
		{"whitespace only", "   ", domain.ErrNameRequired},
		{"too long", strings.Repeat("a", domain.MaxCategoryNameLength+1), domain.ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCategoryService(testutil.NewMockCategoryRepository())

			_, err := svc.CreateCategory(CategoryInput{Name: tt.input})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateCategory_MaxLengthCountsCharacters(t *testing.T) {
	svc := NewCategoryService(testutil.NewMockCategoryRepository())

	_, err := svc.CreateCategory(CategoryInput{Name: strings.Repeat("é", domain.MaxCategoryNameLength)})

	assert.NoError(t, err)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory("Food")
	svc := NewCategoryService(categoryRepo)

	_, err := svc.CreateCategory(CategoryInput{Name: "food"})

	assert.ErrorIs(t, err, domain.ErrCategoryNameExists)
	assert.Equal(t, "conflict", domain.Kind(err))
}

func TestUpdateCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	existing := categoryRepo.AddCategory("Food")
	svc := NewCategoryService(categoryRepo)

	updated, err := svc.UpdateCategory(existing.ID, CategoryInput{Name: "Groceries", Color: "#00ff00"})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "Groceries", updated.Name)
	assert.Equal(t, "#00ff00", updated.Color)
	assert.Equal(t, domain.DefaultCategoryIcon, updated.Icon)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	svc := NewCategoryService(testutil.NewMockCategoryRepository())

	_, err := svc.UpdateCategory(uuid.New(), CategoryInput{Name: "Food"})

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestDeleteCategory_InUse(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	category := categoryRepo.AddCategory("Food")
	categoryRepo.ExpenseCounts[category.ID] = 2
	svc := NewCategoryService(categoryRepo)

	err := svc.DeleteCategory(category.ID)

	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	_, err = svc.GetCategoryByID(category.ID)
	assert.NoError(t, err)
}

func TestDeleteCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	category := categoryRepo.AddCategory("Food")
	svc := NewCategoryService(categoryRepo)

	require.NoError(t, svc.DeleteCategory(category.ID))

	_, err := svc.GetCategoryByID(category.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCanDelete(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	used := categoryRepo.AddCategory("Food")
	unused := categoryRepo.AddCategory("Travel")
	categoryRepo.ExpenseCounts[used.ID] = 3
	svc := NewCategoryService(categoryRepo)

	resp, err := svc.CanDelete(used.ID)
	require.NoError(t, err)
	assert.False(t, resp.CanDelete)
	assert.Equal(t, int64(3), resp.ExpenseCount)

	resp, err = svc.CanDelete(unused.ID)
	require.NoError(t, err)
	assert.True(t, resp.CanDelete)

	_, err = svc.CanDelete(uuid.New())
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
