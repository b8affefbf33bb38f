package postings

import (
	"github.com/google/uuid"
)

const (
	termKeyPrefix  byte = 't'
	flushKeyPrefix byte = 'f'
	filterKeyByte  byte = 'b'
)

var (
	flushKeyLowerBound = []byte{flushKeyPrefix}
	flushKeyUpperBound = []byte{flushKeyPrefix + 1}
	filterKey          = []byte{filterKeyByte}
)

// termKey appends 't' + term to buf. Term keys sort in term order, so a
// prefix scan is a bounded range scan.
func termKey(buf []byte, term string) []byte {
	buf = append(buf, termKeyPrefix)
	return append(buf, term...)
}

// termFromKey returns the term bytes of a term key. The result aliases key.
func termFromKey(key []byte) ([]byte, error) {
	if len(key) == 0 || key[0] != termKeyPrefix {
		return nil, ErrCorruptKey
	}
	return key[1:], nil
}

// prefixUpperBound returns the smallest key greater than every key starting
// with prefix, or nil when there is none.
func prefixUpperBound(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			end := append([]byte(nil), prefix[:i+1]...)
			end[i]++
			return end
		}
	}
	return nil
}

func flushKey(id uuid.UUID) []byte {
	key := make([]byte, 0, 1+len(id))
	key = append(key, flushKeyPrefix)
	return append(key, id[:]...)
}
