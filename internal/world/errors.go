package world

import "errors"

var (
	// ErrInvalidArgument reports a non-positive buffer dimension or a chunk
	// that does not belong where it was put.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIndexOutOfRange reports a slot or local block coordinate outside its bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)
