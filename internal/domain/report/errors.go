package report

import "errors"

var (
	ErrNotFound          = errors.New("report not found")
	ErrAlreadyFinalized  = errors.New("report already finalized")
	ErrOverlappingReport = errors.New("report period overlaps an existing report of the same type")
	ErrInvalidReport     = errors.New("invalid report")
)
