package driven

// IDGenerator produces fragment identifiers that are unique for the
// lifetime of the collection, independent of its size.
type IDGenerator interface {
	// NewID returns an identifier that has not been returned before.
	NewID() string

	// Observe records an identifier assigned elsewhere (e.g. seed data)
	// so that NewID never returns it.
	Observe(id string)
}
