// Package simd provides word-at-a-time byte search primitives.
//
// The routines use SWAR (SIMD Within A Register): eight haystack bytes are
// loaded into a uint64 and compared against a needle broadcast to every byte
// lane, so the scan advances eight bytes per iteration on every platform.
// Single-byte search goes to the runtime's vectorized bytes.IndexByte when
// the CPU has vector units.
package simd

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// hasVector reports vector units the runtime's IndexByte uses.
var hasVector = cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes returns a word with the high bit set in each lane of v that is
// zero. Lanes above the first zero lane may be set spuriously by borrows,
// so only the lowest set bit is meaningful.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
func Memchr(haystack []byte, needle byte) int {
	if hasVector {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

func memchrSWAR(haystack []byte, needle byte) int {
	n := uint64(needle) * lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk ^ n); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	n1 := uint64(needle1) * lo8
	n2 := uint64(needle2) * lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^n1) | zeroBytes(chunk^n2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if c := haystack[i]; c == needle1 || c == needle2 {
			return i
		}
	}
	return -1
}

// Memchr3 returns the index of the first instance of needle1, needle2 or
// needle3 in haystack, or -1 if none are present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	n1 := uint64(needle1) * lo8
	n2 := uint64(needle2) * lo8
	n3 := uint64(needle3) * lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^n1) | zeroBytes(chunk^n2) | zeroBytes(chunk^n3); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if c := haystack[i]; c == needle1 || c == needle2 || c == needle3 {
			return i
		}
	}
	return -1
}

// MemchrInTable returns the index of the first byte b in haystack with
// table[b] set, or -1.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	for i, b := range haystack {
		if table[b] {
			return i
		}
	}
	return -1
}
