// Package runtime exposes a few unexported Go runtime helpers through
// go:linkname. They are used on hot paths where the public equivalents
// take locks or allocate.
package runtime

import (
	_ "unsafe" // for go:linkname
)

// Uint32n returns a fast, non-cryptographic random value in [0, n).
//
//go:linkname Uint32n runtime.fastrandn
func Uint32n(n uint32) uint32

// Procyield spins for the given number of PAUSE cycles without yielding the P.
//
//go:linkname Procyield runtime.procyield
func Procyield(cycles uint32)

// NanoTime returns monotonic clock nanoseconds.
//
//go:linkname NanoTime runtime.nanotime
func NanoTime() int64
