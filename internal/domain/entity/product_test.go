package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus_MissingStatusReadsActive(t *testing.T) {
	legacy := &Product{Name: "Old Import"}

	assert.Equal(t, ProductStatusActive, legacy.EffectiveStatus())
	assert.True(t, legacy.IsActive())
}

func TestIsActive_ExplicitStatuses(t *testing.T) {
	assert.True(t, (&Product{Status: ProductStatusActive}).IsActive())
	assert.False(t, (&Product{Status: ProductStatusInactive}).IsActive())
	assert.False(t, (&Product{Status: ProductStatusOutOfStock}).IsActive())
}

func TestSearchTokens(t *testing.T) {
	t.Run("lowercases and splits on whitespace", func(t *testing.T) {
		tokens := SearchTokens("Trail Runner", "sports", []string{"Outdoor"})

		assert.Equal(t, []string{"trail", "runner", "sports", "outdoor"}, tokens)
	})

	t.Run("deduplicates across sources", func(t *testing.T) {
		tokens := SearchTokens("Yoga Mat", "sports", []string{"yoga", "mat", "sports"})

		assert.Equal(t, []string{"yoga", "mat", "sports"}, tokens)
	})

	t.Run("empty inputs produce no tokens", func(t *testing.T) {
		assert.Empty(t, SearchTokens("", "", nil))
	})
}
