package postings

import "github.com/pkg/errors"

var (
	ErrClosed       = errors.New("postings: index is closed")
	ErrCorruptBlock = errors.New("postings: corrupt posting block")
	ErrCorruptKey   = errors.New("postings: corrupt key")
)
