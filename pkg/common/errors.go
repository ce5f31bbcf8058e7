package common

import "errors"

var (
	ErrFormatVersionMismatch = errors.New("unsupported bale format version")
	ErrEntryNotFound         = errors.New("entry not found in bale")
	ErrSizeMismatch          = errors.New("decompressed size does not match recorded size")
	ErrNameTooLong           = errors.New("entry name does not fit the name slot")
	ErrDuplicateEntry        = errors.New("duplicate entry name")
	ErrTooManyEntries        = errors.New("entry count exceeds format limit")
)
