package service

import (
	"testing"

	"course_market_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategory_InUse(t *testing.T) {
	categories := newFakeCategoryStore()
	svc := NewCategoryService(categories)

	category := categories.add("Music")
	categories.courseRefs[category.ID] = 3

	err := svc.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, util.ErrCategoryInUse)
	assert.Contains(t, categories.categories, category.ID)

	categories.courseRefs[category.ID] = 0
	require.NoError(t, svc.DeleteCategory(category.ID))
	assert.NotContains(t, categories.categories, category.ID)
}

func TestRenameCategory(t *testing.T) {
	categories := newFakeCategoryStore()
	svc := NewCategoryService(categories)

	category := categories.add("Musik")

	renamed, err := svc.RenameCategory(category.ID, "Music")
	require.NoError(t, err)
	assert.Equal(t, "Music", renamed.Name)

	_, err = svc.RenameCategory("missing", "Whatever")
	assert.ErrorIs(t, err, util.ErrCategoryNotFound)
}
