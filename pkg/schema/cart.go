package schema

import "time"

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "zeroproof.cart",
	"name": "add_to_cart_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "cart_id", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "variant_id", "type": "string"},
		{"name": "quantity", "type": "int"},
		{
			"name": "occurred_at",
			"type": {"type": "long", "logicalType": "timestamp-millis"}
		}
	]
}`

const CartSchemaTextV1 = `{
	"type": "record",
	"namespace": "zeroproof.cart",
	"name": "cart",
	"fields": [
		{
			"name": "lines",
			"type": {
				"type": "array",
				"items": {
					"type": "record",
					"name": "cart_line",
					"fields": [
						{"name": "product_id", "type": "string"},
						{"name": "variant_id", "type": "string"},
						{"name": "quantity", "type": "int"}
					]
				}
			}
		}
	]
}`

type CartEventV1 struct {
	EventID    string    `avro:"event_id"`
	CartID     string    `avro:"cart_id"`
	ProductID  string    `avro:"product_id"`
	VariantID  string    `avro:"variant_id"`
	Quantity   int       `avro:"quantity"`
	OccurredAt time.Time `avro:"occurred_at"`
}

type (
	CartV1 struct {
		Lines []CartLineV1 `avro:"lines"`
	}

	CartLineV1 struct {
		ProductID string `avro:"product_id"`
		VariantID string `avro:"variant_id"`
		Quantity  int    `avro:"quantity"`
	}
)
