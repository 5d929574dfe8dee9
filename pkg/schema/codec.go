package schema

import (
	"fmt"

	"github.com/hamba/avro/v2"
)

// A Codec encodes values with a fixed avro schema and no registry framing.
// It suits compacted state topics read back only by this service.
type Codec struct {
	schema avro.Schema
}

func NewCodec(schemaText string) (Codec, error) {
	const op = "schema.NewCodec"
	s, err := avro.Parse(schemaText)
	if err != nil {
		return Codec{}, fmt.Errorf("%s: %w", op, err)
	}
	return Codec{s}, nil
}

func (c Codec) Marshal(v any) ([]byte, error) {
	return avro.Marshal(c.schema, v)
}

func (c Codec) Unmarshal(data []byte, v any) error {
	return avro.Unmarshal(c.schema, data, v)
}
