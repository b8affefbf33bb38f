package postings

import (
	"time"

	"github.com/google/uuid"
)

// Posting is one document entry of a term. A Freq of zero marks the document
// as deleted.
type Posting struct {
	DocID uint64
	Freq  uint32
}

// FlushInfo describes one committed Flush.
type FlushInfo struct {
	ID        uuid.UUID `json:"id" cbor:"1,keyasint" msgpack:"id" structs:"id"`
	Terms     int       `json:"terms" cbor:"2,keyasint" msgpack:"terms" structs:"terms"`
	Postings  int       `json:"postings" cbor:"3,keyasint" msgpack:"postings" structs:"postings"`
	Shards    int       `json:"shards" cbor:"4,keyasint" msgpack:"shards" structs:"shards"`
	CreatedAt time.Time `json:"createdAt" cbor:"5,keyasint" msgpack:"createdAt" structs:"created_at,omitnested"`
}

func compareDocID(a, b Posting) int {
	switch {
	case a.DocID < b.DocID:
		return -1
	case a.DocID > b.DocID:
		return 1
	}
	return 0
}
