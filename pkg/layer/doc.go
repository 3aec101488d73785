// Package layer provides the configuration layering engine for metalstrap.
//
// A [Layer] is an immutable, named, prioritized partial configuration: a
// sparse mapping from dotted key-paths to structured values. [Resolve] merges
// an ordered stack of layers into a single [Resolved] configuration with
// exactly one winning value per path.
//
// Conflict resolution is deterministic:
//
//   - a lower priority number beats a higher one on direct conflict
//   - at equal priority the later-declared layer wins (last-wins)
//   - mapping values merge recursively, key by key
//   - a [ModeReplace] layer replaces the whole subtree at each path it
//     assigns, and weaker later layers cannot reintroduce descendants
//
// Scalar-versus-mapping conflicts at equal priority resolve last-wins and are
// recorded as [Warning] values on the result so callers can detect unintended
// overrides.
package layer
