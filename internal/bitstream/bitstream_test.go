package bitstream

import (
	"bytes"
	"io"
	"testing"
)

func TestWriterPacksLSBFirst(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	// 1,0,1,1,0,0,0,0 -> LSB first means bit0=1 lands in bit position 0.
	bits := []uint{1, 0, 1, 1, 0, 0, 0, 0}
	for _, b := range bits {
		if err := w.PushBit(b); err != nil {
			t.Fatalf("PushBit: %v", err)
		}
	}
	if got, want := buf.Bytes(), []byte{0x0D}; !bytes.Equal(got, want) {
		t.Fatalf("got %08b want %08b", got[0], want[0])
	}
}

func TestWriterFlushPartialByte(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, b := range []uint{1, 1, 0} {
		if err := w.PushBit(b); err != nil {
			t.Fatalf("PushBit: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := buf.Bytes(), []byte{0x03}; !bytes.Equal(got, want) {
		t.Fatalf("got %08b want %08b", got[0], want[0])
	}
	// Flushing again with nothing pending must not emit another byte.
	if err := w.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if buf.Len() != 1 {
		t.Fatalf("expected no extra byte from empty flush, got %d bytes", buf.Len())
	}
}

func TestReaderPullsLSBFirst(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x0D}))
	want := []uint{1, 0, 1, 1, 0, 0, 0, 0}
	for i, w := range want {
		bit, err := r.PullBit()
		if err != nil {
			t.Fatalf("PullBit %d: %v", i, err)
		}
		if bit != w {
			t.Fatalf("bit %d: got %d want %d", i, bit, w)
		}
	}
	if _, err := r.PullBit(); err != io.EOF {
		t.Fatalf("expected io.EOF at clean boundary, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	var bits []uint
	for i := 0; i < 37; i++ {
		bits = append(bits, uint(i%3)&1)
	}
	for _, b := range bits {
		if err := w.PushBit(b); err != nil {
			t.Fatalf("PushBit: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	for i, want := range bits {
		got, err := r.PullBit()
		if err != nil {
			t.Fatalf("PullBit %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("bit %d: got %d want %d", i, got, want)
		}
	}
}
