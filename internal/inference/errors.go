package inference

import (
	"errors"
	"fmt"
)

// ErrDecode marks input bytes that are not a decodable image.
var ErrDecode = errors.New("invalid image data")

// Error is any failure past decoding: session acquisition, model run,
// or an output the adapter cannot map.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("inference %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
