package conversation

import (
	"testing"

	"github.com/set-night/giftshop/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectProducts(t *testing.T) {
	cat := catalog.MustLoad()

	tests := []struct {
		name      string
		utterance string
		count     int
		want      []string
	}{
		{"trending is top rated", "show trending", 1, []string{"4", "7", "1", "8", "2", "3"}},
		{"seasonal mix then top up", "seasonal", 1, []string{"2", "3", "7", "5", "8", "1"}},
		{"local favorites", "local favorites", 1, []string{"1", "2", "4", "7", "3", "5"}},
		{"jeddah matches local rule", "gifts in Jeddah", 1, []string{"1", "2", "4", "7", "3", "5"}},
		{"rotation offset zero", "hello", 0, []string{"1", "2", "3", "4", "5", "6"}},
		{"rotation offset six", "hello", 3, []string{"7", "8", "1", "2", "3", "4"}},
		{"rotation wraps", "hello", 4, []string{"1", "2", "3", "4", "5", "6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, productIDs(SelectProducts(cat, tt.utterance, tt.count)))
		})
	}
}

func TestSelectProductsDropsBrokenImages(t *testing.T) {
	cat, err := catalog.Parse([]byte(`
products:
  - {id: "1", vendor: A, price: "10", image: a.jpg, rating: 5}
  - {id: "2", vendor: A, price: "10", image: placeholder.svg, rating: 4}
  - {id: "3", vendor: B, price: "10", image: load-error.png, rating: 3}
  - {id: "4", vendor: B, price: "10", image: d.jpg, rating: 2}
`))
	require.NoError(t, err)

	got := productIDs(SelectProducts(cat, "show trending", 0))
	assert.Equal(t, []string{"1", "4"}, got)
}
