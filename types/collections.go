package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

// JSONValue returns a collections value codec that persists T as JSON.
// The economic core carries no protobuf codegen, so stored records go
// through this codec instead of the SDK's proto-backed CollValue.
func JSONValue[T any]() collcodec.ValueCodec[T] {
	return jsonValue[T]{}
}

type jsonValue[T any] struct{}

func (jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonValue[T]) Decode(b []byte) (T, error) {
	var value T
	err := json.Unmarshal(b, &value)
	return value, err
}

func (jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonValue[T]) DecodeJSON(b []byte) (T, error) {
	var value T
	err := json.Unmarshal(b, &value)
	return value, err
}

func (jsonValue[T]) Stringify(value T) string {
	return fmt.Sprintf("%v", value)
}

func (jsonValue[T]) ValueType() string {
	var value T
	return fmt.Sprintf("json(%T)", value)
}
