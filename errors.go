package autorec

import "fmt"

// A ShapeError indicates that a batch's length does not
// line up with a model's input dimension.
type ShapeError struct {
	// InCount is the model's input dimension.
	InCount int

	// Len is the offending vector length.
	Len int
}

// Error returns a human-readable description of the
// shape mismatch.
func (s *ShapeError) Error() string {
	return fmt.Sprintf("batch length %d does not match input dimension %d", s.Len, s.InCount)
}
