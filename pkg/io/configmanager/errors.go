package configmanager

import "errors"

// ErrConfigInvalid is returned when the loaded machine configuration fails validation.
var ErrConfigInvalid = errors.New("machine configuration is invalid")
