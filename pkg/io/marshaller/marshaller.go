// Package marshaller provides serialization for configuration models.
package marshaller

// Marshaller serializes models of type T into their wire representation.
type Marshaller[T any] interface {
	// Marshal serializes the model and returns the serialized content.
	Marshal(model T) (string, error)
}
