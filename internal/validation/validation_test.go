package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathanTyoung/wayfare-client/internal/schema"
)

func TestFirstErrorMessageUsesReadableFieldNames(t *testing.T) {
	req := &schema.CreatePostRequest{
		Title:      "Sunrise at Angkor",
		Categories: []int64{2},
	}

	err := ValidateAndSanitizeStruct(req)
	require.Error(t, err)
	assert.Equal(t, "short description is required", FirstErrorMessage(err))
}

func TestFirstErrorMessageForMissingCategories(t *testing.T) {
	req := &schema.CreatePostRequest{
		Title:            "Sunrise at Angkor",
		ShortDescription: "Up at 4am, worth it",
	}

	err := ValidateAndSanitizeStruct(req)
	require.Error(t, err)
	assert.Equal(t, "categories is required", FirstErrorMessage(err))
}

func TestSanitizeStripsMarkup(t *testing.T) {
	req := &schema.CreatePostRequest{
		Title:            "Sunrise<script>alert(1)</script>",
		ShortDescription: "  padded  ",
		Categories:       []int64{2},
	}

	require.NoError(t, ValidateAndSanitizeStruct(req))
	assert.Equal(t, "Sunrise", req.Title)
	assert.Equal(t, "padded", req.ShortDescription)
}
