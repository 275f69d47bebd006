// Package verify provides validation functions for arena block chains.
//
// # Overview
//
// The checks operate on the raw arena bytes and decode headers through
// internal/format, so they never depend on allocator state. They are used by
// tests after every step of randomized runs and by the memgrind CLI when
// --verify is set.
//
// Validation categories:
//   - Chain: every header is readable and the chain ends exactly at the
//     arena end (conservation: sum of header+payload equals capacity)
//   - Coalescing: no two address-adjacent blocks are both free
//   - Hanging: hanging bytes only on used blocks, always below MetaSize
//
// # Quick Start
//
//	if err := verify.AllInvariants(a.Bytes()); err != nil {
//	    fmt.Printf("arena corrupt: %v\n", err)
//	}
//
// # ValidationError
//
// Every failure is a *ValidationError carrying the check name, a message
// and the header offset of the offending block (-1 when not applicable).
package verify
