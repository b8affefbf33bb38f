// Package serializers encodes the small metadata records an index keeps next
// to its postings, such as flush manifests.
package serializers

import (
	"fmt"
)

const (
	CBOR    = "cbor"
	Msgpack = "msgpack"
	JSON    = "json"
)

// Names lists the serializers New accepts.
var Names = []string{CBOR, Msgpack, JSON}

// New returns the serializer registered under name.
func New(name string) (Serializer[any], error) {
	switch name {
	case CBOR:
		return NewCBORSerializer()
	case Msgpack:
		return NewMsgpackSerializer(), nil
	case JSON:
		return &JsonSerializer{}, nil
	default:
		return nil, fmt.Errorf("unknown serializer %q, expected one of %v", name, Names)
	}
}

type Serializer[T any] interface {
	Serialize(t T) ([]byte, error)
	Deserialize(b []byte, t T) error
}

// AnyWrapper narrows a Serializer[any] to a typed Serializer[T].
type AnyWrapper[T any] struct {
	Serializer Serializer[any]
}

func (s *AnyWrapper[T]) Serialize(t T) ([]byte, error) {
	return s.Serializer.Serialize(t)
}

func (s *AnyWrapper[T]) Deserialize(b []byte, t T) error {
	return s.Serializer.Deserialize(b, t)
}

var (
	_ Serializer[any] = (*CBORSerializer)(nil)
	_ Serializer[any] = (*MsgpackSerializer)(nil)
	_ Serializer[any] = (*JsonSerializer)(nil)
)
