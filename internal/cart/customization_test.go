package cart

import (
	"errors"
	"testing"

	"github.com/set-night/giftshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomizations(t *testing.T) {
	p := product("1", "V", 10)

	cz, err := ParseCustomizations(p, map[string]string{
		"quantity": "2",
		"size":     "large",
		"message":  "  Happy birthday  ",
		"age":      "30",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, cz.Quantity)
	assert.Equal(t, "Large", cz.Options["size"].Text)
	assert.Equal(t, "Happy birthday", cz.Options["message"].Text)
	assert.Equal(t, 30, cz.Options["age"].Number)
	assert.Equal(t, "30", cz.Options["age"].String())
}

func TestParseCustomizationsErrors(t *testing.T) {
	p := product("1", "V", 10)

	tests := []struct {
		name string
		raw  map[string]string
		want error
	}{
		{"unknown option", map[string]string{"color": "red"}, domain.ErrUnknownOption},
		{"choice not offered", map[string]string{"size": "Medium"}, domain.ErrInvalidOptionValue},
		{"number not numeric", map[string]string{"age": "thirty"}, domain.ErrInvalidOptionValue},
		{"negative quantity", map[string]string{"qty": "-1"}, domain.ErrInvalidQuantity},
		{"quantity not numeric", map[string]string{"quantity": "a few"}, domain.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCustomizations(p, tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseCustomizationsSkipsBlank(t *testing.T) {
	cz, err := ParseCustomizations(product("1", "V", 10), map[string]string{"message": "   "})
	require.NoError(t, err)
	assert.Empty(t, cz.Options)
}

func TestValidate(t *testing.T) {
	p := product("1", "V", 10)

	assert.NoError(t, Validate(p, domain.Customizations{}))
	assert.ErrorIs(t, Validate(p, domain.Customizations{
		Options: map[string]domain.OptionValue{"age": {Type: domain.OptionText, Text: "x"}},
	}), domain.ErrInvalidOptionValue)
	assert.ErrorIs(t, Validate(p, domain.Customizations{
		Options: map[string]domain.OptionValue{"size": {Type: domain.OptionSelect, Text: "Huge"}},
	}), domain.ErrInvalidOptionValue)
	assert.ErrorIs(t, Validate(p, domain.Customizations{Quantity: -2}), domain.ErrInvalidQuantity)
}

func TestAddRejectsInvalidCustomizations(t *testing.T) {
	c := New(DefaultPricing())
	_, err := c.Add(product("1", "V", 10), domain.Customizations{
		Options: map[string]domain.OptionValue{"nope": {Type: domain.OptionText, Text: "x"}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownOption)
	assert.Equal(t, 0, c.Len())
}

func TestRequireOptions(t *testing.T) {
	p := product("1", "V", 10)

	err := RequireOptions(p, domain.Customizations{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingOption)

	var missing *MissingOptionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "size", missing.Option.ID)

	assert.NoError(t, RequireOptions(p, domain.Customizations{
		Options: map[string]domain.OptionValue{"size": {Type: domain.OptionSelect, Text: "Small"}},
	}))
}
