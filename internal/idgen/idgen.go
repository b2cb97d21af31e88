// Package idgen generates account identifiers.
package idgen

import (
	"crypto/rand"
)

// AccountIDLength is the fixed length of every generated account id.
const AccountIDLength = 10

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Largest multiple of len(alphabet) that fits in a byte; bytes at or above it
// are discarded so every character is equally likely.
const maxByte = 256 - 256%len(alphabet)

// Generator produces account ids. Implementations have no side effects and
// do not check for collisions; the ledger retries on a live id.
type Generator interface {
	NewAccountID() string
}

// Random draws ids from crypto/rand.
type Random struct{}

func (Random) NewAccountID() string {
	return NewAccountID()
}

// NewAccountID returns a random upper-case alphanumeric id of AccountIDLength
// characters. It panics only if the system random source fails.
func NewAccountID() string {
	out := make([]byte, 0, AccountIDLength)
	buf := make([]byte, AccountIDLength*2)
	for len(out) < AccountIDLength {
		if _, err := rand.Read(buf); err != nil {
			// Panic here so we don't hand out predictable ids
			panic("idgen: failed to read random bytes: " + err.Error())
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == AccountIDLength {
				break
			}
		}
	}
	return string(out)
}

// Sequence replays a fixed list of ids and then falls back to Random. It
// exists so tests can force collisions.
type Sequence struct {
	IDs []string
	pos int
}

func (s *Sequence) NewAccountID() string {
	if s.pos < len(s.IDs) {
		id := s.IDs[s.pos]
		s.pos++
		return id
	}
	return NewAccountID()
}
