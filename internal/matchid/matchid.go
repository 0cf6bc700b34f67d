// Package matchid generates time-ordered identifiers for matches.
//
// IDs follow the UUIDv7 layout (48-bit millisecond timestamp followed by
// random bits) and are encoded as 26 characters of Crockford base32, so
// lexical order matches creation order.
package matchid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of every encoded ID.
const Length = 26

// RandSource lets tests supply deterministic random bytes.
type RandSource interface {
	IntN(n int) int
}

// Generator produces match IDs.
type Generator struct {
	randSource RandSource
	clock      quartz.Clock
}

// NewGenerator returns a generator. A nil randSource uses crypto/rand and a
// nil clock uses wall time.
func NewGenerator(randSource RandSource, clock quartz.Clock) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{randSource: randSource, clock: clock}
}

// New generates an ID with crypto randomness and the wall clock.
func New() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns a fresh ID.
func (g *Generator) Generate() string {
	return encode(g.uuid())
}

func (g *Generator) uuid() [16]byte {
	var id [16]byte

	now := g.clock.Now().UnixMilli()
	id[0] = byte(now >> 40)
	id[1] = byte(now >> 32)
	id[2] = byte(now >> 24)
	id[3] = byte(now >> 16)
	id[4] = byte(now >> 8)
	id[5] = byte(now)

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("matchid: crypto/rand failed: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return id
}

// encode writes the 128 bits as 26 five-bit groups, the last one padded
// with two zero bits.
func encode(data [16]byte) string {
	out := make([]byte, Length)
	for i := range out {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < len(data) {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		out[i] = alphabet[value]
	}
	return string(out)
}

// Validate checks that id looks like something Generate produced.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("match ID must be %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("match ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
