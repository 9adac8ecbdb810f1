package csvgen

import (
	"io"
	"iter"
)

// Reader parses CSV produced with the same Options back into records.
// No implementation is provided by this package.
type Reader[T any] interface {
	Read(src io.Reader, opts *Options) iter.Seq2[T, error]
}
