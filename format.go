package hamarc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the three-byte signature at the start of every archive.
var Magic = [3]byte{'H', 'A', 'F'}

// HeaderSize computes the serialized byte length of a header covering
// entries: magic + count + each entry's (name_len, name, original_size,
// encoded_size, offset) fields.
func HeaderSize(entries []FileEntry) uint64 {
	size := uint64(len(Magic)) + 4
	for _, e := range entries {
		size += 2 + uint64(len(e.Name)) + 8 + 8 + 8
	}
	return size
}

// AssignOffsets sets, in order, entries[0].Offset = HeaderSize(entries) and
// each subsequent entry's offset to the previous entry's offset plus its
// encoded size, establishing invariant I2 (contiguous, gap-free, in payload
// order).
func AssignOffsets(entries []FileEntry) {
	if len(entries) == 0 {
		return
	}
	off := HeaderSize(entries)
	for i := range entries {
		entries[i].Offset = off
		off += entries[i].EncodedSize
	}
}

// WriteHeader serializes magic, entry count, and each entry in order. All
// integers are little-endian; there is no alignment padding.
func WriteHeader(w io.Writer, entries []FileEntry) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(Magic[:]); err != nil {
		return fmt.Errorf("%w: write magic: %v", ErrIO, err)
	}
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(entries)))
	if _, err := bw.Write(countBuf[:]); err != nil {
		return fmt.Errorf("%w: write count: %v", ErrIO, err)
	}
	for _, e := range entries {
		if err := writeEntry(bw, e); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush header: %v", ErrIO, err)
	}
	return nil
}

func writeEntry(w io.Writer, e FileEntry) error {
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(e.Name)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("%w: write name length: %v", ErrIO, err)
	}
	if _, err := io.WriteString(w, e.Name); err != nil {
		return fmt.Errorf("%w: write name: %v", ErrIO, err)
	}
	var fields [24]byte
	binary.LittleEndian.PutUint64(fields[0:8], e.OriginalSize)
	binary.LittleEndian.PutUint64(fields[8:16], e.EncodedSize)
	binary.LittleEndian.PutUint64(fields[16:24], e.Offset)
	if _, err := w.Write(fields[:]); err != nil {
		return fmt.Errorf("%w: write entry fields: %v", ErrIO, err)
	}
	return nil
}

// ReadHeader validates the magic, reads the entry count, reads each entry,
// and verifies invariant I2 (entries sorted by offset, contiguous, starting
// at the header size). Any short read, or a name length exceeding the
// remaining input, is a Format error.
func ReadHeader(r io.Reader) ([]FileEntry, error) {
	br := bufio.NewReader(r)
	var magic [3]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: read magic: %v", ErrFormat, err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, magic[:])
	}
	var countBuf [4]byte
	if _, err := io.ReadFull(br, countBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: read count: %v", ErrFormat, err)
	}
	count := binary.LittleEndian.Uint32(countBuf[:])
	entries := make([]FileEntry, count)
	for i := range entries {
		e, err := readEntry(br)
		if err != nil {
			return nil, err
		}
		entries[i] = e
	}
	if err := validateOffsets(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func readEntry(r io.Reader) (FileEntry, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return FileEntry{}, fmt.Errorf("%w: read name length: %v", ErrFormat, err)
	}
	nameLen := binary.LittleEndian.Uint16(lenBuf[:])
	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return FileEntry{}, fmt.Errorf("%w: read name (len %d): %v", ErrFormat, nameLen, err)
	}
	var fields [24]byte
	if _, err := io.ReadFull(r, fields[:]); err != nil {
		return FileEntry{}, fmt.Errorf("%w: read entry fields: %v", ErrFormat, err)
	}
	return FileEntry{
		Name:         string(nameBuf),
		OriginalSize: binary.LittleEndian.Uint64(fields[0:8]),
		EncodedSize:  binary.LittleEndian.Uint64(fields[8:16]),
		Offset:       binary.LittleEndian.Uint64(fields[16:24]),
	}, nil
}

func validateOffsets(entries []FileEntry) error {
	if len(entries) == 0 {
		return nil
	}
	want := HeaderSize(entries)
	for i, e := range entries {
		if e.Offset != want {
			return fmt.Errorf("%w: entry %d (%q) offset %d, expected %d", ErrFormat, i, e.Name, e.Offset, want)
		}
		want += e.EncodedSize
	}
	return nil
}
