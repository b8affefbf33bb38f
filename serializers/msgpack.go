package serializers

import (
	"bytes"

	"github.com/go-bond/slotsort/utils"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackSerializer encodes with msgpack. When Buffer is set, encoding goes
// through pooled scratch buffers and the result is copied out.
type MsgpackSerializer struct {
	Buffer utils.SyncPool[[]byte]
}

func NewMsgpackSerializer() *MsgpackSerializer {
	return &MsgpackSerializer{
		Buffer: utils.NewSlicePool[byte](256, 0),
	}
}

func (m *MsgpackSerializer) Serialize(i interface{}) ([]byte, error) {
	if m.Buffer == nil {
		return msgpack.Marshal(i)
	}

	buff := bytes.NewBuffer(m.Buffer.Get())
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	enc.Reset(buff)
	if err := enc.Encode(i); err != nil {
		m.Buffer.Put(buff.Bytes())
		return nil, err
	}

	out := bytes.Clone(buff.Bytes())
	m.Buffer.Put(buff.Bytes())
	return out, nil
}

func (m *MsgpackSerializer) Deserialize(b []byte, i interface{}) error {
	return msgpack.Unmarshal(b, i)
}
