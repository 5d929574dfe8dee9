package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecCartV1(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		c, err := NewCodec(CartSchemaTextV1)
		require.NoError(t, err)

		in := CartV1{Lines: []CartLineV1{
			{ProductID: "p-citrus", VariantID: "v-250", Quantity: 2},
			{ProductID: "p-gin", VariantID: "v-gin", Quantity: 1},
		}}

		data, err := c.Marshal(in)
		require.NoError(t, err)

		var out CartV1
		require.NoError(t, c.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})

	t.Run("NilLines", func(t *testing.T) {
		c, err := NewCodec(CartSchemaTextV1)
		require.NoError(t, err)

		data, err := c.Marshal(CartV1{})
		require.NoError(t, err)

		var out CartV1
		require.NoError(t, c.Unmarshal(data, &out))
		assert.Empty(t, out.Lines)
	})

	t.Run("InvalidSchema", func(t *testing.T) {
		_, err := NewCodec(`{"type": "record"}`)
		assert.Error(t, err)
	})
}
