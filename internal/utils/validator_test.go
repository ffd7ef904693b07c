package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"category_name" validate:"required,max=5"`
	Slug     string `json:"slug,omitempty" validate:"omitempty,slug"`
	Internal string `json:"-" validate:"max=1"`
}

func TestGetValidationErrors_UsesJSONNames(t *testing.T) {
	errs := GetValidationErrors(ValidateStruct(&sample{Name: "toolong", Internal: "xx"}))
	require.Len(t, errs, 2)

	assert.Equal(t, "category_name", errs[0].Field)
	assert.Equal(t, "max", errs[0].Tag)
	assert.Equal(t, "Ensure category_name has at most 5 characters.", errs[0].Message)
	assert.Equal(t, "Internal", errs[1].Field)

	assert.Empty(t, GetValidationErrors(ValidateStruct(&sample{Name: "ok"})))
	assert.Empty(t, GetValidationErrors(nil))
}

func TestSlugValidation(t *testing.T) {
	for _, valid := range []string{"shoes", "test-slug", "a_b-2"} {
		assert.NoError(t, ValidateStruct(&sample{Name: "ok", Slug: valid}), valid)
	}
	for _, invalid := range []string{"Shoes", "two words", "-lead", "trail-", "a--b"} {
		assert.Error(t, ValidateStruct(&sample{Name: "ok", Slug: invalid}), invalid)
	}
}
