// Package hamming implements a parametric single-error-correcting Hamming
// code: k data bits and r parity bits packed into an n = k+r bit codeword.
package hamming

import (
	"errors"
	"fmt"
)

// ErrUncorrectable is wrapped by DecodeStream when DecodeBlock flags a
// codeword whose syndrome cannot be resolved to a single flipped bit.
var ErrUncorrectable = errors.New("hamming: uncorrectable codeword")

// Options pins down the (k, r) shape of a code. The package does not verify
// 2^r >= k+r+1, the condition for the code to correct every single-bit
// error over k data bits; see Options.WellFormed.
type Options struct {
	DataBits   int // k, 1..16
	ParityBits int // r, 1..8
}

// WellFormed reports whether the parity width is large enough to address
// every codeword position (the classical Hamming validity condition). A
// caller that ignores this still gets encode/decode, just without the
// correction guarantee for every position.
func (o Options) WellFormed() bool {
	n := o.DataBits + o.ParityBits
	return (1 << uint(o.ParityBits)) >= n+1
}

// Codec encodes and decodes fixed-size blocks under one (k, r) shape.
type Codec struct {
	k, r, n int
}

// NewCodec validates opts against the data model's range constraints and
// returns a Codec for encoding/decoding k-bit blocks into n = k+r bit
// codewords. It does not reject ill-formed (k, r) pairs; see Options.WellFormed.
func NewCodec(opts Options) (*Codec, error) {
	if opts.DataBits < 1 || opts.DataBits > 16 {
		return nil, fmt.Errorf("hamming: data bits %d out of range [1,16]", opts.DataBits)
	}
	if opts.ParityBits < 1 || opts.ParityBits > 8 {
		return nil, fmt.Errorf("hamming: parity bits %d out of range [1,8]", opts.ParityBits)
	}
	return &Codec{k: opts.DataBits, r: opts.ParityBits, n: opts.DataBits + opts.ParityBits}, nil
}

func (c *Codec) K() int { return c.k }
func (c *Codec) R() int { return c.r }
func (c *Codec) N() int { return c.n }

// EncodedSize computes the encoded byte length for an input of originalSize
// bytes, per invariant I1: codeword_count = ceil(original_bits/k),
// encoded_size = ceil(codeword_count*n/8).
func (c *Codec) EncodedSize(originalSize uint64) uint64 {
	bits := originalSize * 8
	cwCount := ceilDiv(bits, uint64(c.k))
	return ceilDiv(cwCount*uint64(c.n), 8)
}

func ceilDiv(a, b uint64) uint64 {
	if a == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// isParity reports whether codeword position p holds a parity bit: one of
// the first r powers of two. For a well-formed code these are exactly the
// powers of two <= n; for an ill-formed one the remaining positions still
// leave room for all k data bits.
func (c *Codec) isParity(p int) bool { return p&(p-1) == 0 && p < 1<<uint(c.r) }

// EncodeBlock places the k data bits of data (bit i of data is data-bit
// index i, LSB first) into the non-parity positions of an n-bit codeword in
// order, then fills each parity position p = 1,2,4,... (the first r powers
// of two that are <= n) with the XOR of every position q where q & p != 0.
func (c *Codec) EncodeBlock(data uint32) uint32 {
	var word uint32
	idx := uint(0)
	for p := 1; p <= c.n; p++ {
		if c.isParity(p) {
			continue
		}
		if (data>>idx)&1 != 0 {
			word |= 1 << uint(p-1)
		}
		idx++
	}
	for j := 0; j < c.r && (1<<uint(j)) <= c.n; j++ {
		p := 1 << uint(j)
		var parity uint32
		for q := 1; q <= c.n; q++ {
			if q&p != 0 {
				parity ^= (word >> uint(q-1)) & 1
			}
		}
		if parity != 0 {
			word |= 1 << uint(p-1)
		} else {
			word &^= 1 << uint(p-1)
		}
	}
	return word
}

// DecodeBlock extracts the k data bits from an n-bit codeword, correcting an
// isolated single-bit error. errFlag is true when the codeword's syndrome
// names a position outside the codeword, or when the post-correction
// verification syndrome is still nonzero (a malformed-parameter residual, or
// genuine multi-bit corruption).
func (c *Codec) DecodeBlock(word uint32) (data uint32, errFlag bool) {
	s := c.syndrome(word)
	if s == 0 {
		return c.extract(word), false
	}
	if s <= uint32(c.n) {
		corrected := word ^ (1 << uint(s-1))
		if c.syndrome(corrected) != 0 {
			return 0, true
		}
		return c.extract(corrected), false
	}
	return 0, true
}

func (c *Codec) syndrome(word uint32) uint32 {
	var s uint32
	for j := 0; j < c.r && (1<<uint(j)) <= c.n; j++ {
		p := uint32(1 << uint(j))
		var parity uint32
		for q := 1; q <= c.n; q++ {
			if uint32(q)&p != 0 {
				parity ^= (word >> uint(q-1)) & 1
			}
		}
		if parity != 0 {
			s |= p
		}
	}
	return s
}

func (c *Codec) extract(word uint32) uint32 {
	var data uint32
	idx := uint(0)
	for p := 1; p <= c.n; p++ {
		if c.isParity(p) {
			continue
		}
		data |= ((word >> uint(p-1)) & 1) << idx
		idx++
	}
	return data
}
