package oaisyspb

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Codec encodes Oaisys messages in the protobuf wire format. It keeps the
// "proto" content subtype so it interoperates with stock protobuf servers.
type Codec struct{}

var _ encoding.Codec = Codec{}

func (Codec) Name() string { return "proto" }

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("oaisyspb: cannot marshal %T", v)
	}
	return m.Marshal()
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("oaisyspb: cannot unmarshal into %T", v)
	}
	return m.Unmarshal(data)
}
