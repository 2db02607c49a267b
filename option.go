package jsonable

// Option is an explicit present/absent wrapper for optional fields. The zero
// value is None, which is what generated FromJSON code leaves behind for an
// absent key.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None returns the absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool { return o.some }

// Get returns the held value and whether one is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// OrElse returns the held value, or def when absent.
func (o Option[T]) OrElse(def T) T {
	if o.some {
		return o.value
	}
	return def
}
