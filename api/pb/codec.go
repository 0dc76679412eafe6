package pb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Name is the codec these types travel under. Clients opt in with
// grpc.CallContentSubtype(pb.Name).
const Name = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return Name }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
