// Package grpcjson registers a JSON codec for gRPC so services can be served
// without generated protobuf stubs. Callers select it per call with
// grpc.CallContentSubtype(grpcjson.Name).
package grpcjson

import (
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/grpc/encoding"
)

// Name is the content-subtype the codec is registered under.
const Name = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(Codec{})
}
