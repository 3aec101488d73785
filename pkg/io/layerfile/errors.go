package layerfile

import "errors"

// ErrNoValues is returned when a layer file declares no values mapping.
var ErrNoValues = errors.New("layer file has no values mapping")

// ErrInvalidPriority is returned when a layer file declares an unusable priority.
var ErrInvalidPriority = errors.New("invalid layer priority")

// ErrMalformedAssignment is returned when a command-line assignment is not key=value.
var ErrMalformedAssignment = errors.New("malformed assignment")
