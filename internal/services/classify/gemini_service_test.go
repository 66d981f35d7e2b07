package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategoryNames(t *testing.T) {
	ids := ParseCategoryNames("Clothing, Electronics")
	assert.Equal(t, []string{"clothing", "electronics"}, ids)
}

func TestParseCategoryNamesToleratesCasingAndSpaces(t *testing.T) {
	ids := ParseCategoryNames("  kitchenware ,DORM ESSENTIALS")
	assert.Equal(t, []string{"kitchenware", "dorm-essentials"}, ids)
}

func TestParseCategoryNamesDropsUnknownLabels(t *testing.T) {
	// Модель иногда придумывает категории вне списка
	ids := ParseCategoryNames("Miscellaneous, Furniture, Vehicles")
	assert.Equal(t, []string{"furniture"}, ids)

	assert.Nil(t, ParseCategoryNames("Miscellaneous"))
	assert.Nil(t, ParseCategoryNames(""))
}

func TestParseCategoryNamesCapsAtThree(t *testing.T) {
	ids := ParseCategoryNames("Clothing, Food, Drinks, Furniture, Electronics")
	assert.Len(t, ids, 3)
}

func TestParseCategoryNamesDeduplicates(t *testing.T) {
	ids := ParseCategoryNames("Food, food, FOOD, Drinks")
	assert.Equal(t, []string{"food", "drinks"}, ids)
}

func TestBuildPromptListsAllCategories(t *testing.T) {
	prompt := buildPrompt()
	assert.Contains(t, prompt, "Clothing")
	assert.Contains(t, prompt, "Dorm Essentials")
	assert.Contains(t, prompt, "1-3 categories")
}
