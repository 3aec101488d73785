package layer

import "fmt"

// Warning records a scalar-versus-mapping conflict between two layers at
// equal priority. Resolution is last-wins, so the shape declared by Layer
// replaced the shape declared by Earlier.
type Warning struct {
	Path     string
	Layer    string
	Earlier  string
	Priority Priority
}

// String renders the warning for user-facing diagnostics.
func (w Warning) String() string {
	return fmt.Sprintf(
		"conflicting value shapes at %q: layer %q overrides layer %q at priority %d",
		w.Path, w.Layer, w.Earlier, int(w.Priority),
	)
}
