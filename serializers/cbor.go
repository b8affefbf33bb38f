package serializers

import (
	"github.com/fxamacker/cbor/v2"
)

// timestamps keep nanoseconds; the cbor default truncates to seconds
var defaultEncMode, _ = cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()

type CBORSerializer struct {
	EncMode cbor.EncMode
	DecMode cbor.DecMode
}

// NewCBORSerializer returns a serializer using core deterministic encoding,
// so equal manifests always produce equal bytes.
func NewCBORSerializer() (*CBORSerializer, error) {
	encOpts := cbor.CoreDetEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano
	encMode, err := encOpts.EncMode()
	if err != nil {
		return nil, err
	}
	decMode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, err
	}
	return &CBORSerializer{EncMode: encMode, DecMode: decMode}, nil
}

func (c *CBORSerializer) Serialize(i interface{}) ([]byte, error) {
	if c.EncMode != nil {
		return c.EncMode.Marshal(i)
	}
	return defaultEncMode.Marshal(i)
}

func (c *CBORSerializer) Deserialize(b []byte, i interface{}) error {
	if c.DecMode != nil {
		return c.DecMode.Unmarshal(b, i)
	}
	return cbor.Unmarshal(b, i)
}
