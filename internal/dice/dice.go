// Package dice provides the random sources used by battles and encounters.
package dice

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

// Source is the randomness a battle or encounter draws from.
// *math/rand/v2.Rand satisfies it, which makes seeded sources easy in tests.
type Source interface {
	// IntN returns a uniform int in [0, n). n must be positive.
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// Between returns a uniform int in [lo, hi] inclusive.
// When hi <= lo it returns lo without drawing.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return src.IntN(hi-lo+1) + lo
}

type cryptoSource struct {
	r io.Reader
}

// Crypto returns a Source backed by crypto/rand. It is safe for concurrent
// use.
func Crypto() Source {
	return cryptoSource{r: rand.Reader}
}

func (c cryptoSource) uint64() uint64 {
	var b [8]byte
	if _, err := io.ReadFull(c.r, b[:]); err != nil {
		panic("dice: read random bytes: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

func (c cryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("dice: invalid argument to IntN")
	}
	bound := uint64(n)
	// values below 2^64 mod bound would make the low results more likely
	threshold := -bound % bound
	for {
		if v := c.uint64(); v >= threshold {
			return int(v % bound)
		}
	}
}

func (c cryptoSource) Float64() float64 {
	// 53 random bits scaled into [0, 1)
	return float64(c.uint64()>>11) / (1 << 53)
}
