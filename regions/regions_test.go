package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedData(t *testing.T) {
	codes := Codes()
	require.Len(t, codes, 14)
	assert.Equal(t, "01", codes[0])
	assert.Equal(t, "14", codes[13])
	assert.Equal(t, "Toshkent shahri", Name("14"))

	for _, code := range codes {
		assert.True(t, Valid(code))
		assert.NotEmpty(t, Cities(code), "region %s has no cities", code)
	}
}

func TestUnknownCode(t *testing.T) {
	assert.False(t, Valid("99"))
	assert.Equal(t, "99", Name("99"))
	assert.Empty(t, Cities("99"))
}

func TestCurrencies(t *testing.T) {
	assert.Equal(t, []string{"USD", "UZS"}, CurrencyCodes())
	assert.True(t, ValidCurrency("USD"))
	assert.True(t, ValidCurrency("UZS"))
	assert.False(t, ValidCurrency("EUR"))
	assert.NotEqual(t, "USD", CurrencyLabel("USD"))
}
