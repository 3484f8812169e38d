package domain

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrPreviewNotFound  = errors.New("preview token not found")
	ErrDraftNotFound    = errors.New("draft not found")
	ErrInvalidCount     = errors.New("count must be a positive integer")
	ErrIndexOutOfRange  = errors.New("floor or apartment index out of range")
	ErrUnknownField     = errors.New("unknown field name")
	ErrInvalidFieldType = errors.New("value does not match the field type")
)
