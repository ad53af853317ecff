package screen

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNoVariantMatched is returned when a block payload fits none of the
	// known data shapes.
	ErrNoVariantMatched = errors.New("no block variant matched")
	// ErrUnknownBlockType is returned for a wire type name outside the block enum.
	ErrUnknownBlockType = errors.New("unknown block type")
	// ErrMalformed is returned when the screen envelope is missing a field or
	// has a field of the wrong type.
	ErrMalformed = errors.New("screen payload malformed")
)

// DecodeError reports why every candidate shape rejected a block payload.
// It matches ErrNoVariantMatched under errors.Is.
type DecodeError struct {
	Reasons *multierror.Error
}

func (e *DecodeError) Error() string {
	if e.Reasons == nil || len(e.Reasons.Errors) == 0 {
		return ErrNoVariantMatched.Error()
	}
	return fmt.Sprintf("%s (%d candidates rejected)", ErrNoVariantMatched, len(e.Reasons.Errors))
}

func (e *DecodeError) Unwrap() error {
	return ErrNoVariantMatched
}

// Details returns one line per rejected candidate, in priority order.
func (e *DecodeError) Details() []string {
	if e.Reasons == nil {
		return nil
	}
	out := make([]string, 0, len(e.Reasons.Errors))
	for _, err := range e.Reasons.Errors {
		out = append(out, err.Error())
	}
	return out
}
