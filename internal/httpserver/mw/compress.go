package mw

import (
	"fmt"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// compressMinSize skips compression of small JSON answers.
const compressMinSize = 512

// Compress gzips responses for clients that accept it.
func Compress() (func(http.Handler) http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(
		gzhttp.MinSize(compressMinSize),
		gzhttp.ContentTypes([]string{"text/html", "application/json"}),
	)
	if err != nil {
		return nil, fmt.Errorf("init gzip wrapper: %w", err)
	}
	return func(next http.Handler) http.Handler {
		return wrap(next)
	}, nil
}
