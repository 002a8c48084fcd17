package hamming

import (
	"bufio"
	"fmt"
	"io"

	"github.com/javi11/hamarc/internal/bitstream"
)

// EncodeStream unpacks r's bytes into an LSB-first bit sequence, groups them
// into k-bit blocks (zero-extending a final short block), encodes each
// block, and packs the resulting codewords into w.
func (c *Codec) EncodeStream(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	in := bitstream.NewReader(br)
	out := bitstream.NewWriter(bw)

	var block uint32
	count := 0
	for {
		bit, err := in.PullBit()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("hamming: read input: %w", err)
		}
		block |= uint32(bit) << uint(count)
		count++
		if count == c.k {
			if err := emitCodeword(out, c, block); err != nil {
				return err
			}
			block, count = 0, 0
		}
	}
	if count > 0 {
		if err := emitCodeword(out, c, block); err != nil {
			return err
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("hamming: flush output: %w", err)
	}
	return bw.Flush()
}

func emitCodeword(out *bitstream.Writer, c *Codec, block uint32) error {
	cw := c.EncodeBlock(block)
	for i := 0; i < c.n; i++ {
		if err := out.PushBit(uint(cw>>uint(i)) & 1); err != nil {
			return fmt.Errorf("hamming: write codeword: %w", err)
		}
	}
	return nil
}

// DecodeStream reads exactly ceil(ceil(originalSize*8/k)*n/8) codeword bytes
// worth of bits from r, decodes each n-bit codeword, and writes the
// recovered data bits to w, trimming the final block to originalSize bytes
// exactly. It fails on the first uncorrectable codeword.
func (c *Codec) DecodeStream(w io.Writer, r io.Reader, originalSize uint64) error {
	originalBits := originalSize * 8
	codewordCount := ceilDiv(originalBits, uint64(c.k))

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	in := bitstream.NewReader(br)
	out := bitstream.NewWriter(bw)

	for i := uint64(0); i < codewordCount; i++ {
		var cw uint32
		for b := 0; b < c.n; b++ {
			bit, err := in.PullBit()
			if err != nil {
				return fmt.Errorf("hamming: read codeword %d: %w", i, err)
			}
			cw |= uint32(bit) << uint(b)
		}
		data, bad := c.DecodeBlock(cw)
		if bad {
			return fmt.Errorf("codeword %d: %w", i, ErrUncorrectable)
		}
		bitsThisBlock := c.k
		if i == codewordCount-1 {
			bitsThisBlock = int(originalBits - uint64(c.k)*(codewordCount-1))
		}
		for b := 0; b < bitsThisBlock; b++ {
			if err := out.PushBit(uint(data>>uint(b)) & 1); err != nil {
				return fmt.Errorf("hamming: write output: %w", err)
			}
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("hamming: flush output: %w", err)
	}
	return bw.Flush()
}
