// Package keyset detects duplicate composite row keys.
//
// Keys are identified by their 64-bit xxHash. The first key seen for a hash
// is kept, so two different keys that share a hash are told apart and
// recorded as a collision instead of being reported as duplicates.
package keyset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/tidydraws/errs"
)

// nullTag encodes a missing part. Encoded parts start with a digit.
const nullTag = '-'

// AppendPart appends one part of a composite key to dst as its decimal byte
// length, a colon and the bytes themselves. Any byte may occur in part.
func AppendPart(dst, part []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(part)), 10)
	dst = append(dst, ':')

	return append(dst, part...)
}

// AppendNull appends a missing part to dst.
func AppendNull(dst []byte) []byte {
	return append(dst, nullTag)
}

// Hash computes the xxHash64 of a key.
func Hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// Set tracks keys and rejects duplicates.
type Set struct {
	first      map[uint64]string   // hash → first key with that hash
	overflow   map[string]struct{} // keys whose hash was already taken by another key
	count      int
	collisions int
}

// New creates a set sized for about capacity keys.
func New(capacity int) *Set {
	return &Set{
		first:    make(map[uint64]string, capacity),
		overflow: make(map[string]struct{}),
	}
}

// Add records key. It returns errs.ErrDuplicateKey if key was added before.
func (s *Set) Add(key string) error {
	return s.add(Hash(key), key)
}

// AddBytes is Add for a key assembled in a reusable buffer.
func (s *Set) AddBytes(key []byte) error {
	h := xxhash.Sum64(key)
	if existing, ok := s.first[h]; ok && existing == string(key) {
		return duplicate(existing)
	}

	return s.add(h, string(key))
}

func (s *Set) add(h uint64, key string) error {
	existing, ok := s.first[h]
	if !ok {
		s.first[h] = key
		s.count++

		return nil
	}

	if existing == key {
		return duplicate(key)
	}

	if _, dup := s.overflow[key]; dup {
		return duplicate(key)
	}

	s.overflow[key] = struct{}{}
	s.collisions++
	s.count++

	return nil
}

func duplicate(key string) error {
	return fmt.Errorf("%w: %s", errs.ErrDuplicateKey, printable(key))
}

// Len returns the number of distinct keys.
func (s *Set) Len() int {
	return s.count
}

// HasCollision reports whether two distinct keys shared a hash.
func (s *Set) HasCollision() bool {
	return s.collisions > 0
}

// Reset clears the set, keeping allocated capacity.
func (s *Set) Reset() {
	clear(s.first)
	clear(s.overflow)
	s.count = 0
	s.collisions = 0
}

// printable decodes key into a parenthesized list of its parts.
func printable(key string) string {
	var parts []string
	for len(key) > 0 {
		if key[0] == nullTag {
			parts = append(parts, "null")
			key = key[1:]

			continue
		}

		colon := strings.IndexByte(key, ':')
		n, err := strconv.Atoi(key[:max(colon, 0)])
		if colon < 0 || err != nil || n < 0 || n > len(key)-colon-1 {
			// not an encoded key
			parts = append(parts, strconv.Quote(key))

			break
		}

		parts = append(parts, label(key[colon+1:colon+1+n]))
		key = key[colon+1+n:]
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

func label(part string) string {
	if strings.IndexFunc(part, func(r rune) bool { return !unicode.IsPrint(r) }) >= 0 {
		return strconv.Quote(part)
	}

	return part
}
