package core

// TransformResult is the closed outcome of a piece insertion or transformation
type TransformResult uint8

const (
	ResultSuccess TransformResult = iota
	ResultCollision
	ResultInvalidRotation
	ResultOutOfBounds
	ResultOutOfTries
)

// Success reports whether the operation was applied
func (r TransformResult) Success() bool {
	return r == ResultSuccess
}

func (r TransformResult) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultCollision:
		return "collision"
	case ResultInvalidRotation:
		return "invalid-rotation"
	case ResultOutOfBounds:
		return "out-of-bounds"
	case ResultOutOfTries:
		return "out-of-tries"
	}
	return "unknown"
}

// Message returns a human readable description
func (r TransformResult) Message() string {
	switch r {
	case ResultSuccess:
		return "Transformation successful."
	case ResultCollision:
		return "Transformation collided with non-empty cells."
	case ResultInvalidRotation:
		return "Invalid transformation: Tried to rotate unrotatable piece."
	case ResultOutOfBounds:
		return "Transformation went out of bounds."
	case ResultOutOfTries:
		return "Exceeded maximum number of tries for transformation."
	}
	return "Unknown transformation result."
}
