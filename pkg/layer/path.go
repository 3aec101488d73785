package layer

import "strings"

// PathSeparator separates the segments of a dotted key-path.
const PathSeparator = "."

// Path is a parsed key-path: the sequence of mapping keys that addresses one
// value inside a configuration tree, e.g. ["boot" "initrd" "luks" "devices"].
type Path []string

// ParsePath splits a dotted key-path into its segments.
//
// Empty segments produced by leading, trailing, or doubled separators are
// dropped, so "a..b." parses the same as "a.b". Keys inside nested mapping
// values are never parsed; only assignment and lookup paths use dotted form.
func ParsePath(keyPath string) Path {
	parts := strings.Split(keyPath, PathSeparator)
	segments := make(Path, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}

		segments = append(segments, part)
	}

	return segments
}

// String renders the path back into dotted form.
func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}

// IsRoot reports whether the path addresses the whole configuration tree.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Child returns a new path extended by one segment.
func (p Path) Child(segment string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)

	return append(child, segment)
}
