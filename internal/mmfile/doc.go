// Package mmfile provides platform-specific helpers for mapping arena memory.
//
// On unix systems Anon returns an anonymous private mapping obtained through
// golang.org/x/sys/unix, so the arena's bytes live outside the Go heap and
// are never scanned or moved by the garbage collector. Other platforms fall
// back to a heap slice.
package mmfile
