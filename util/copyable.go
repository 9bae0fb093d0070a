package util

// Copyable is implemented by values owning storage that must not be shared
// across mutations.
type Copyable[A any] interface {
	Copy() A
}
