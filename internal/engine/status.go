package engine

import "github.com/cockroachdb/errors"

//go:generate go tool enumer -type=Status -trimprefix=Status -transform=snake -output=status_enumer.go
//go:generate go run ../../tools/enumerfix status_enumer.go

// Status is the caller-facing result of arming. The set is closed.
type Status int

const (
	StatusOK                Status = 0
	StatusLoadLibraryFailed Status = -2
	StatusInitLibraryFailed Status = -3
)

// StatusFromError maps an Arm error to its Status.
func StatusFromError(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrLoadFailed):
		return StatusLoadLibraryFailed
	default:
		return StatusInitLibraryFailed
	}
}

// Code returns the numeric status.
func (i Status) Code() int {
	return int(i)
}
