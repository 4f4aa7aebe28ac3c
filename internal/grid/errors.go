package grid

import "errors"

// Sentinel errors returned by the grid package. Callers match them with
// errors.Is; context is added with fmt.Errorf("...: %w", err).
var (
	// ErrEmptyInput is returned when no samples are supplied.
	ErrEmptyInput = errors.New("grid: no samples")

	// ErrShapeMismatch is returned when the sample count does not equal
	// |X-axis| * |Y-axis|, or the x, y and z sequences differ in length.
	ErrShapeMismatch = errors.New("grid: shape mismatch")

	// ErrInsufficientAxisSamples is returned when an axis has fewer than
	// two distinct values, so no bin width can be derived from it.
	ErrInsufficientAxisSamples = errors.New("grid: fewer than 2 distinct axis samples")
)
