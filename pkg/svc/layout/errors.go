package layout

import "errors"

// ErrInvalidDiskSpec is returned when a disk specification cannot produce a
// coherent layout.
var ErrInvalidDiskSpec = errors.New("invalid disk specification")
