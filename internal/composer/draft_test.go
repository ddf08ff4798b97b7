package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsNormalizesAndDeduplicates(t *testing.T) {
	draft := &DraftPost{TagsText: "#Beach, hiking  beach"}
	assert.Equal(t, []string{"beach", "hiking"}, draft.Tags())
}

func TestTagsHandlesEmptyInput(t *testing.T) {
	draft := &DraftPost{}
	assert.Empty(t, draft.Tags())

	draft.TagsText = " , # ,, "
	assert.Empty(t, draft.Tags())
}

func TestResetClearsEveryField(t *testing.T) {
	draft := &DraftPost{
		Title:        "Sunrise at Angkor",
		LocationText: "Siem Reap",
		CategoryID:   2,
		TagsText:     "#temples",
	}

	draft.Reset()

	assert.Equal(t, DraftPost{}, *draft)
}
