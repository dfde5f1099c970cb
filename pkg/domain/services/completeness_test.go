package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockalloc/pkg/domain/entities"
)

func TestBuildSizeFamilies(t *testing.T) {
	rows := []entities.ProductRow{
		{Row: 8, Product: "Джемпер_C5 50706", Variant: "S"},
		{Row: 9, Product: "Джемпер_C5 50706", Variant: "M"},
		{Row: 10, Product: "Шорты_C3 34770", Variant: "M"},
		{Row: 11, Product: "Джемпер_C5 50706", Variant: "L"},
	}

	families := BuildSizeFamilies(rows)
	require.Len(t, families, 2)
	assert.Equal(t, []int{0, 1, 3}, families["Джемпер_C5 50706"])
	assert.Equal(t, []int{2}, families["Шорты_C3 34770"])
}

func quantities(q ...entities.Quantity) func(int) entities.Quantity {
	return func(i int) entities.Quantity { return q[i] }
}

func TestCompletenessPolicy_Evaluate(t *testing.T) {
	policy := DefaultCompletenessPolicy()
	family := []int{0, 1, 2, 3}

	t.Run("small family does not apply", func(t *testing.T) {
		d := policy.Evaluate([]int{0, 1, 2},
			quantities(0, 0, 0, 0), quantities(1, 1, 1, 1))
		assert.False(t, d.Applies)
	})

	t.Run("store with two existing sizes does not apply", func(t *testing.T) {
		d := policy.Evaluate(family,
			quantities(1, 2, 0, 0), quantities(1, 1, 1, 1))
		assert.False(t, d.Applies)
	})

	t.Run("empty store with full availability sends all", func(t *testing.T) {
		d := policy.Evaluate(family,
			quantities(0, 0, 0, 0), quantities(1, 1, 1, 1))
		require.True(t, d.Applies)
		assert.True(t, d.SendAll)
		assert.Equal(t, []int{0, 1, 2, 3}, d.Sendable)
	})

	t.Run("one existing size still sends the rest", func(t *testing.T) {
		d := policy.Evaluate(family,
			quantities(1, 0, 0, 0), quantities(1, 1, 1, 1))
		require.True(t, d.Applies)
		assert.True(t, d.SendAll)
		assert.Equal(t, []int{1, 2, 3}, d.Sendable)
	})

	t.Run("two available sizes are vetoed", func(t *testing.T) {
		d := policy.Evaluate(family,
			quantities(0, 0, 0, 0), quantities(1, 1, 0, 0))
		require.True(t, d.Applies)
		assert.False(t, d.SendAll)
		assert.Equal(t, 2, d.Have)
		assert.Equal(t, 3, d.Need)
	})

	t.Run("exactly three available sizes send", func(t *testing.T) {
		d := policy.Evaluate(family,
			quantities(0, 0, 0, 0), quantities(1, 1, 1, 0))
		require.True(t, d.Applies)
		assert.True(t, d.SendAll)
		assert.Equal(t, []int{0, 1, 2}, d.Sendable)
	})
}
