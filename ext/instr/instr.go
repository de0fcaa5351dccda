// Package instr implements the zeries substring-search extension: forward
// (INSTR) and backward (RINSTR) Boyer-Moore-Horspool search over raw byte,
// UTF-8, and UTF-16LE haystacks.
//
// Positions are 1-based: byte offsets for raw byte searches, codepoint
// offsets for text searches.  A return of 0 means the needle is absent.
package instr

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	"github.com/zeries/zeries/pkg/zeries"
)

// Malformed-text errors surfaced by the UTF-8 and UTF-16 searchers.
var (
	ErrMalformedUTF8  = zeries.NewError(zeries.ZDB_FORMAT, "malformed UTF-8 text")
	ErrMalformedUTF16 = zeries.NewError(zeries.ZDB_FORMAT, "malformed UTF-16 text")
)

// bmhSkips is the per-byte shift table.  For UTF-16 haystacks the shifts are
// rounded up to even so a skip never lands inside a code unit.
type bmhSkips [256]int

func fbmhSetup(needle []byte, mask int) (skips bmhSkips) {
	n := len(needle)
	for c := range skips {
		skips[c] = n
	}
	limit := n - 1
	for ix := 0; ix < limit; ix++ {
		skips[needle[ix]] = limit - ix
	}
	if mask != 0 {
		for c := range skips {
			skips[c] = (skips[c] + mask) &^ mask
		}
	}
	return skips
}

func rbmhSetup(needle []byte, mask int) (skips bmhSkips) {
	n := len(needle)
	for c := range skips {
		skips[c] = n
	}
	for ix := n - 1; ix > 0; ix-- {
		skips[needle[ix]] = ix
	}
	if mask != 0 {
		for c := range skips {
			skips[c] = (skips[c] + mask) &^ mask
		}
	}
	return skips
}

// utf8Advance returns the byte length of the codepoint at the head of b.
// ok is false on malformed input (overlong forms, surrogates, and values
// beyond U+10FFFF included).
func utf8Advance(b []byte) (int, bool) {
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	return size, true
}

// utf8Retreat returns the byte length of the codepoint ending at b[:i].
// The forward positioning pass already validated everything left of i, so
// malformed input cannot occur here; a stray byte still retreats by one to
// guarantee progress.
func utf8Retreat(b []byte, i int) int {
	_, size := utf8.DecodeLastRune(b[:i])
	if size <= 0 {
		return 1
	}
	return size
}

// utf16Advance returns the byte length (2 or 4) of the codepoint at b[i:].
// ok is false on a truncated buffer or an unpaired surrogate.
func utf16Advance(b []byte, i int) (int, bool) {
	if len(b)-i >= 2 {
		c0 := binary.LittleEndian.Uint16(b[i:])
		if c0 < 0xD800 || c0 >= 0xE000 {
			return 2, true
		}
		if c0 < 0xDC00 && len(b)-i >= 4 {
			c1 := binary.LittleEndian.Uint16(b[i+2:])
			if c1 >= 0xDC00 && c1 < 0xE000 {
				return 4, true
			}
		}
	}
	return 0, false
}

// utf16Retreat returns the byte length of the codepoint ending at b[:i],
// over text already validated by the forward positioning pass.
func utf16Retreat(b []byte, i int) int {
	if i >= 4 {
		c1 := binary.LittleEndian.Uint16(b[i-2:])
		if c1 >= 0xDC00 && c1 < 0xE000 {
			c2 := binary.LittleEndian.Uint16(b[i-4:])
			if c2 >= 0xD800 && c2 < 0xDC00 {
				return 4
			}
		}
	}
	return 2
}

// Bytes returns the 1-based byte position of the first occurrence of needle
// in haystack at or after position start, or 0 when absent.  An empty needle
// matches at the start position.
func Bytes(haystack, needle []byte, start int64) int64 {
	found := int64(1)
	if start > 1 {
		found = start
		skip := start - 1
		if skip > int64(len(haystack)) {
			return 0
		}
		haystack = haystack[skip:]
	}
	n := len(needle)
	if n > len(haystack) {
		return 0
	}
	if n == 0 {
		return found
	}
	if n > 1 {
		skips := fbmhSetup(needle, 0)
		for len(haystack) >= n {
			if bytes.Equal(haystack[:n], needle) {
				return found
			}
			skip := skips[haystack[n-1]]
			haystack = haystack[skip:]
			found += int64(skip)
		}
		return 0
	}
	first := needle[0]
	for ix, b := range haystack {
		if b == first {
			return found + int64(ix)
		}
	}
	return 0
}

// RBytes returns the 1-based byte position of the last occurrence of needle
// in haystack at or before position start, or 0 when absent.
func RBytes(haystack, needle []byte, start int64) int64 {
	if start <= 0 {
		return 0
	}
	n := len(needle)
	if n > len(haystack) {
		return 0
	}
	var found int64
	var ix int
	if start > 1 {
		if start-1 > int64(len(haystack)-n) {
			start = int64(len(haystack)-n) + 1
		}
		found = start
		ix = int(start - 1)
	} else {
		found = 1
		ix = 0
	}
	if n == 0 {
		return found
	}
	if n > 1 {
		skips := rbmhSetup(needle, 0)
		for {
			if bytes.Equal(haystack[ix:ix+n], needle) {
				return found
			}
			skip := skips[haystack[ix]]
			if skip > ix {
				return 0
			}
			ix -= skip
			found -= int64(skip)
		}
	}
	first := needle[0]
	for {
		if haystack[ix] == first {
			return found
		}
		if ix <= 0 {
			return 0
		}
		ix--
		found--
	}
}

// Text returns the 1-based codepoint position of the first occurrence of
// needle in the UTF-8 haystack at or after position start, or 0 when absent.
// Malformed haystack text encountered during the scan is an error.
func Text(haystack, needle string, start int64) (int64, error) {
	hs := []byte(haystack)
	nd := []byte(needle)
	n := len(nd)
	if n > len(hs) {
		return 0, nil
	}
	found := int64(1)
	ix := 0
	for found < start && len(hs)-ix > n {
		size, ok := utf8Advance(hs[ix:])
		if !ok {
			return 0, ErrMalformedUTF8
		}
		ix += size
		found++
	}
	if found < start {
		return 0, nil
	}
	if n == 0 {
		return found, nil
	}
	if n > 1 {
		skips := fbmhSetup(nd, 0)
		next := ix
		for len(hs)-ix >= n {
			// The BMH shift is byte-granular while the scan is
			// codepoint-granular; compare only once the scan catches up.
			if ix >= next {
				if bytes.Equal(hs[ix:ix+n], nd) {
					return found, nil
				}
				skip := skips[hs[ix+n-1]]
				if len(hs)-ix-skip < n {
					return 0, nil
				}
				next = ix + skip
			}
			size, ok := utf8Advance(hs[ix:])
			if !ok {
				return 0, ErrMalformedUTF8
			}
			ix += size
			found++
		}
		return 0, nil
	}
	first := nd[0]
	for ix < len(hs) {
		if hs[ix] == first {
			return found, nil
		}
		size, ok := utf8Advance(hs[ix:])
		if !ok {
			return 0, ErrMalformedUTF8
		}
		ix += size
		found++
	}
	return 0, nil
}

// RText returns the 1-based codepoint position of the last occurrence of
// needle in the UTF-8 haystack at or before position start, or 0 when absent.
func RText(haystack, needle string, start int64) (int64, error) {
	hs := []byte(haystack)
	nd := []byte(needle)
	if start <= 0 {
		return 0, nil
	}
	n := len(nd)
	if n > len(hs) {
		return 0, nil
	}
	found := int64(1)
	ix := 0
	for found < start && len(hs)-ix > n {
		size, ok := utf8Advance(hs[ix:])
		if !ok {
			return 0, ErrMalformedUTF8
		}
		if len(hs)-(ix+size) < n {
			break
		}
		ix += size
		found++
	}
	if n == 0 {
		return found, nil
	}
	if n > 1 {
		skips := rbmhSetup(nd, 0)
		next := ix
		for {
			if ix <= next {
				if bytes.Equal(hs[ix:ix+n], nd) {
					return found, nil
				}
				skip := skips[hs[ix]]
				if skip > ix {
					return 0, nil
				}
				next = ix - skip
			}
			if ix <= 0 {
				return 0, nil
			}
			ix -= utf8Retreat(hs, ix)
			found--
		}
	}
	first := nd[0]
	for {
		if hs[ix] == first {
			return found, nil
		}
		if ix <= 0 {
			return 0, nil
		}
		ix -= utf8Retreat(hs, ix)
		found--
	}
}

// UTF16 returns the 1-based codepoint position of the first occurrence of
// needle in the UTF-16LE haystack at or after position start, or 0 when
// absent.  Both buffers are truncated to an even byte count; unpaired
// surrogates encountered during the scan are an error.
func UTF16(haystack, needle []byte, start int64) (int64, error) {
	hs := haystack[:len(haystack)&^1]
	nd := needle[:len(needle)&^1]
	n := len(nd)
	if n > len(hs) {
		return 0, nil
	}
	found := int64(1)
	ix := 0
	for found < start && len(hs)-ix > n {
		size, ok := utf16Advance(hs, ix)
		if !ok {
			return 0, ErrMalformedUTF16
		}
		ix += size
		found++
	}
	if found < start {
		return 0, nil
	}
	if n == 0 {
		return found, nil
	}
	if n > 2 {
		skips := fbmhSetup(nd, 1)
		next := ix
		for len(hs)-ix >= n {
			if ix >= next {
				if bytes.Equal(hs[ix:ix+n], nd) {
					return found, nil
				}
				skip := skips[hs[ix+n-1]]
				if len(hs)-ix-skip < n {
					return 0, nil
				}
				next = ix + skip
			}
			size, ok := utf16Advance(hs, ix)
			if !ok {
				return 0, ErrMalformedUTF16
			}
			ix += size
			found++
		}
		return 0, nil
	}
	first := binary.LittleEndian.Uint16(nd)
	for len(hs)-ix >= 2 {
		if binary.LittleEndian.Uint16(hs[ix:]) == first {
			return found, nil
		}
		size, ok := utf16Advance(hs, ix)
		if !ok {
			return 0, ErrMalformedUTF16
		}
		ix += size
		found++
	}
	return 0, nil
}

// RUTF16 returns the 1-based codepoint position of the last occurrence of
// needle in the UTF-16LE haystack at or before position start, or 0 when
// absent.
func RUTF16(haystack, needle []byte, start int64) (int64, error) {
	hs := haystack[:len(haystack)&^1]
	nd := needle[:len(needle)&^1]
	if start <= 0 {
		return 0, nil
	}
	n := len(nd)
	if n > len(hs) {
		return 0, nil
	}
	found := int64(1)
	ix := 0
	for found < start && len(hs)-ix > n {
		size, ok := utf16Advance(hs, ix)
		if !ok {
			return 0, ErrMalformedUTF16
		}
		if len(hs)-(ix+size) < n {
			break
		}
		ix += size
		found++
	}
	if n == 0 {
		return found, nil
	}
	if n > 2 {
		skips := rbmhSetup(nd, 1)
		next := ix
		for {
			if ix <= next {
				if bytes.Equal(hs[ix:ix+n], nd) {
					return found, nil
				}
				skip := skips[hs[ix]]
				if skip > ix {
					return 0, nil
				}
				next = ix - skip
			}
			if ix <= 0 {
				return 0, nil
			}
			ix -= utf16Retreat(hs, ix)
			found--
		}
	}
	first := binary.LittleEndian.Uint16(nd)
	for {
		if binary.LittleEndian.Uint16(hs[ix:]) == first {
			return found, nil
		}
		if ix <= 0 {
			return 0, nil
		}
		ix -= utf16Retreat(hs, ix)
		found--
	}
}
