package ledger

import "errors"

var (
	ErrNotFound     = errors.New("ledger entry not found")
	ErrInvalidEntry = errors.New("invalid ledger entry")
)
