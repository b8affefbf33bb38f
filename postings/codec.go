package postings

import (
	"slices"

	"github.com/go-bond/slotsort/utils"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	codecRaw  byte = 0
	codecZstd byte = 1
)

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)

	payloadPool utils.SyncPool[[]byte] = utils.NewSlicePool[byte](4<<10, 8) // 4 KB
)

// EncodeBlock appends the block encoding of postings to dst. Doc ids must be
// strictly ascending. Payloads of at least compressThreshold bytes are zstd
// compressed; a threshold <= 0 disables compression.
func EncodeBlock(dst []byte, postings []Posting, compressThreshold int) []byte {
	payload := appendPayload(payloadPool.Get(), postings)
	defer payloadPool.Put(payload)

	if compressThreshold > 0 && len(payload) >= compressThreshold {
		dst = append(dst, codecZstd)
		return zstdEncoder.EncodeAll(payload, dst)
	}

	dst = append(dst, codecRaw)
	return append(dst, payload...)
}

func appendPayload(buf []byte, postings []Posting) []byte {
	buf = protowire.AppendVarint(buf, uint64(len(postings)))
	var prev uint64
	for _, p := range postings {
		buf = protowire.AppendVarint(buf, p.DocID-prev)
		buf = protowire.AppendVarint(buf, uint64(p.Freq))
		prev = p.DocID
	}
	return buf
}

// DecodeBlock appends the postings of block to dst.
func DecodeBlock(dst []Posting, block []byte) ([]Posting, error) {
	if len(block) == 0 {
		return dst, errors.Wrap(ErrCorruptBlock, "empty block")
	}

	payload := block[1:]
	switch block[0] {
	case codecRaw:
	case codecZstd:
		buf, err := zstdDecoder.DecodeAll(payload, payloadPool.Get())
		defer payloadPool.Put(buf)
		if err != nil {
			return dst, errors.Wrapf(ErrCorruptBlock, "decompress: %v", err)
		}
		payload = buf
	default:
		return dst, errors.Wrapf(ErrCorruptBlock, "unknown codec %d", block[0])
	}

	count, n := protowire.ConsumeVarint(payload)
	if n < 0 {
		return dst, errors.Wrap(ErrCorruptBlock, "count")
	}
	payload = payload[n:]
	// every posting takes at least two bytes
	if count > uint64(len(payload)/2) {
		return dst, errors.Wrapf(ErrCorruptBlock, "count %d exceeds payload", count)
	}

	out := slices.Grow(dst, int(count))
	var prev uint64
	for i := uint64(0); i < count; i++ {
		delta, n := protowire.ConsumeVarint(payload)
		if n < 0 {
			return dst, errors.Wrapf(ErrCorruptBlock, "doc id of posting %d", i)
		}
		payload = payload[n:]
		if i > 0 && delta == 0 {
			return dst, errors.Wrapf(ErrCorruptBlock, "doc ids not ascending at posting %d", i)
		}

		freq, n := protowire.ConsumeVarint(payload)
		if n < 0 || freq > uint64(^uint32(0)) {
			return dst, errors.Wrapf(ErrCorruptBlock, "freq of posting %d", i)
		}
		payload = payload[n:]

		prev += delta
		out = append(out, Posting{DocID: prev, Freq: uint32(freq)})
	}
	if len(payload) != 0 {
		return dst, errors.Wrapf(ErrCorruptBlock, "%d trailing bytes", len(payload))
	}
	return out, nil
}
