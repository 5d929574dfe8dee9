package money_test

import (
	"testing"

	"github.com/niksmo/zeroproof/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	t.Run("USD", func(t *testing.T) {
		f, err := money.NewFormatter("en-US", "USD")
		require.NoError(t, err)

		assert.Equal(t, "$12.00", f.Format(decimal.RequireFromString("12")))
		assert.Equal(t, "$20.50", f.Format(decimal.RequireFromString("20.5")))
		assert.Equal(t, "$1,234.50", f.Format(decimal.RequireFromString("1234.5")))
	})

	t.Run("InvalidLocale", func(t *testing.T) {
		_, err := money.NewFormatter("not a locale!", "USD")
		assert.Error(t, err)
	})

	t.Run("InvalidCurrency", func(t *testing.T) {
		_, err := money.NewFormatter("en-US", "XYZW")
		assert.Error(t, err)
	})
}
