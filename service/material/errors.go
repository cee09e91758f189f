package material

import "errors"

var (
	ErrInvalidCount        = errors.New("record count must be positive")
	ErrUnknownConflictMode = errors.New("unknown conflict mode")
	ErrUnknownFormat       = errors.New("unknown output format")
	ErrMissingHeader       = errors.New("csv header missing required column")
	ErrEmptyOutputPath     = errors.New("output path is empty")
	ErrTooManyRows         = errors.New("csv has too many rows")
	ErrFileTooLarge        = errors.New("csv file too large")
)
