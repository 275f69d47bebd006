//go:build !unix

package mmfile

import "fmt"

// Anon allocates size zeroed bytes on the Go heap when anonymous mappings
// are not available on this platform.
func Anon(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid mapping size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}

// Supported reports whether Anon returns memory outside the Go heap.
func Supported() bool { return false }
