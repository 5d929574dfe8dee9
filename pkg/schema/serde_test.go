package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/zeroproof/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeCartEventV1(t *testing.T) {
	const subject = "cart_events-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.Error(t, err)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		errRegistry := errors.New("registry unavailable")
		si.On(
			"DetermineID", t.Context(), subject, schema.CartEventSchemaTextV1,
		).Return(0, errRegistry)

		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		assert.ErrorIs(t, err, errRegistry)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On(
			"DetermineID", t.Context(), subject, schema.CartEventSchemaTextV1,
		).Return(7, nil)

		serde, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)

		in := schema.CartEventV1{
			EventID:    "evt-1",
			CartID:     "cart-1",
			ProductID:  "p-citrus",
			VariantID:  "v-500",
			Quantity:   1,
			OccurredAt: time.UnixMilli(1_760_000_000_000).UTC(),
		}

		data, err := serde.Encode(in)
		require.NoError(t, err)
		require.Greater(t, len(data), 5)
		assert.Equal(t, byte(0), data[0], "confluent magic byte")

		var out schema.CartEventV1
		require.NoError(t, serde.Decode(data, &out))
		assert.Equal(t, in.EventID, out.EventID)
		assert.Equal(t, in.CartID, out.CartID)
		assert.Equal(t, in.ProductID, out.ProductID)
		assert.Equal(t, in.VariantID, out.VariantID)
		assert.Equal(t, in.Quantity, out.Quantity)
		assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
		si.AssertExpectations(t)
	})
}
