package rowfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockalloc/pkg/domain/entities"
)

func facetRows() []entities.ProductRow {
	return []entities.ProductRow{
		{Row: 8, Product: "Джемпер_C5 50706", Collection: "2221.0", ExtraName: "Базовая"},
		{Row: 9, Product: "Джемпер_C5 50707", Collection: "2222", ExtraName: "Базовая"},
		{Row: 10, Product: "Шорты_C3 34770", Collection: "2221.0", ExtraName: ""},
		{Row: 11, Product: "Шорты_C3 34771", Collection: "", ExtraName: "Пляжная"},
	}
}

func TestFormatFacet(t *testing.T) {
	assert.Equal(t, "2221", FormatFacet("2221.0"))
	assert.Equal(t, "2221", FormatFacet("2221"))
	assert.Equal(t, "2221.5", FormatFacet("2221.5"))
	assert.Equal(t, "Базовая", FormatFacet(" Базовая "))
	assert.Equal(t, "", FormatFacet(""))
}

func TestFacetValues(t *testing.T) {
	rows := facetRows()

	assert.Equal(t, []string{"Джемпер", "Шорты"}, ArticleTypes(rows))
	assert.Equal(t, []string{"2221", "2222"}, Collections(rows))
	assert.Equal(t, []string{"Базовая", "Пляжная"}, ExtraNames(rows))
}

func TestApply_NoFilterReturnsAll(t *testing.T) {
	rows := facetRows()
	assert.Len(t, Apply(rows, Filter{}), 4)
}

func TestApply_FullSelectionMeansNoFilter(t *testing.T) {
	rows := facetRows()
	out := Apply(rows, Filter{ArticleTypes: []string{"Джемпер", "Шорты"}})

	// Selecting every present value keeps rows whose facet is empty too.
	assert.Len(t, out, 4)
}

func TestApply_ByArticleType(t *testing.T) {
	rows := facetRows()
	out := Apply(rows, Filter{ArticleTypes: []string{"Шорты"}})

	require.Len(t, out, 2)
	assert.Equal(t, 10, out[0].Row)
	assert.Equal(t, 11, out[1].Row)
}

func TestApply_CombinedFacets(t *testing.T) {
	rows := facetRows()
	out := Apply(rows, Filter{
		ArticleTypes: []string{"Джемпер"},
		Collections:  []string{"2221"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, 8, out[0].Row)
}

func TestApply_NormalizedCollectionMatches(t *testing.T) {
	rows := facetRows()

	// "2221" matches the raw cell "2221.0".
	out := Apply(rows, Filter{Collections: []string{"2221"}})
	require.Len(t, out, 2)
	assert.Equal(t, 8, out[0].Row)
	assert.Equal(t, 10, out[1].Row)
}
