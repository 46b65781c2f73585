package store

// Source tells where a value returned by the accessor came from.
type Source int

const (
	SourceStore   Source = iota // read from the kv store
	SourceConfig                // configured value (admin secret only)
	SourceDefault               // built-in default
)

func (s Source) String() string {
	switch s {
	case SourceStore:
		return "store"
	case SourceConfig:
		return "config"
	case SourceDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Result is the internal outcome of a read. Err is nil for an Ok read and
// holds the swallowed failure for a Recovered one; Value is usable in both
// cases.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Recovered reports whether Value is a fallback standing in for a failed read.
func (r Result[T]) Recovered() bool {
	return r.Err != nil
}

func ok[T any](v T, src Source) Result[T] {
	return Result[T]{Value: v, Source: src}
}

func recovered[T any](v T, src Source, err error) Result[T] {
	return Result[T]{Value: v, Source: src, Err: err}
}
