package hamarc

// FileEntry is one file's metadata inside an archive header.
type FileEntry struct {
	Name         string // basename only, no path components
	OriginalSize uint64 // exact byte length of the unencoded input
	EncodedSize  uint64 // exact byte length of the encoded payload
	Offset       uint64 // absolute byte offset of the payload from archive start
}

// Header is the fixed-then-variable-length metadata prefix of an archive:
// magic, file count, and the file count's worth of FileEntry records.
type Header struct {
	Entries []FileEntry
}
