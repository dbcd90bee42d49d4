// Package api defines the conciencia.v1.ConcienciaService gRPC contract:
// the service descriptor, its request and response messages and the JSON
// codec both ends use to encode them.
package api

import (
	"github.com/bytedance/sonic"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype clients must select with
// grpc.CallContentSubtype.
const CodecName = "json"

// Codec encodes messages as JSON.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}
