// Package readers provides deterministic pseudo-random byte streams and the
// small decisions tests draw from them.
package readers

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"io"

	"hop.computer/slist/pkg"
	"hop.computer/slist/pkg/must"
)

var iv = [aes.BlockSize]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

type ctrReader struct {
	stream cipher.Stream
}

// Read fills p with key stream. The output depends only on the seed and the
// total number of bytes read so far, not on how reads are split. It cannot
// fail.
func (c *ctrReader) Read(p []byte) (n int, err error) {
	clear(p)
	c.stream.XORKeyStream(p, p)
	return len(p), nil
}

var _ io.Reader = &ctrReader{}

// newCTRReader returns the AES-CTR key stream for a key derived from seed and a
// static IV.
func newCTRReader(seed uint64) *ctrReader {
	key := [16]byte{}
	binary.LittleEndian.PutUint64(key[:], seed)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		pkg.Panicf("unable to create new aes: %s", err)
	}
	return &ctrReader{
		stream: cipher.NewCTR(block, iv[:]),
	}
}

// Source makes repeatable random decisions, for driving randomized operation
// sequences in tests.
type Source struct {
	r *ctrReader
}

// NewSource returns a Source seeded with seed. Two sources with the same seed
// make the same decisions in the same order.
func NewSource(seed uint64) *Source {
	return &Source{r: newCTRReader(seed)}
}

// Flip returns true with probability 1/2^bits. bits must be in the range 0-7;
// zero bits always returns true.
func (s *Source) Flip(bits int) bool {
	if bits > 7 || bits < 0 {
		pkg.Panicf("bits must be in the range 0-7, got %d", bits)
	}
	var buf [1]byte
	_ = must.Do(s.r.Read(buf[:]))
	mask := byte((1 << bits) - 1)
	return buf[0]&mask == 0
}

// Intn returns a value in [0, n). n must be positive. The slight modulo bias is
// irrelevant for test data.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		pkg.Panicf("n must be positive, got %d", n)
	}
	var buf [8]byte
	_ = must.Do(s.r.Read(buf[:]))
	return int(binary.LittleEndian.Uint64(buf[:]) % uint64(n))
}
