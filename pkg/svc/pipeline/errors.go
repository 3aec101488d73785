package pipeline

import "errors"

var (
	// ErrMissingDiskLayout indicates the resolved configuration carries no
	// pool/partition layout for the requested device.
	ErrMissingDiskLayout = errors.New("resolved configuration has no disk layout for the requested device")

	// ErrMissingSystemImage indicates the install spec names no system image
	// to install.
	ErrMissingSystemImage = errors.New("install spec has no system image")

	// ErrMissingPrepareScript indicates the install spec names no partitioner
	// prepare script.
	ErrMissingPrepareScript = errors.New("install spec has no prepare script")

	// ErrMissingPayloadSource indicates a payload copy was requested without
	// a source path.
	ErrMissingPayloadSource = errors.New("payload has no source path")
)
