package hamarc

import "errors"

// Error categories. hamarc wraps the underlying cause with fmt.Errorf and
// %w so callers can errors.Is against these sentinels while still getting a
// descriptive message, the same idiom the rest of the package uses for
// wrapping (e.g. fmt.Errorf("%s: %w", path, err)).
var (
	// ErrArgument covers missing required inputs or sources, names not
	// found in the archive, duplicate basenames, a delete that removes
	// nothing, and invalid Hamming parameters. cmd/hamarc reports its own
	// mode-selection errors without this sentinel.
	ErrArgument = errors.New("hamarc: argument error")
	// ErrFilesystem covers missing input files, inaccessible directories,
	// and rename failures.
	ErrFilesystem = errors.New("hamarc: filesystem error")
	// ErrFormat covers a bad magic, a short header read, or a truncated
	// archive.
	ErrFormat = errors.New("hamarc: format error")
	// ErrCodec covers a decoded codeword with an uncorrectable syndrome.
	ErrCodec = errors.New("hamarc: codec error")
	// ErrIO covers a read/write failure mid-stream.
	ErrIO = errors.New("hamarc: i/o error")
)
