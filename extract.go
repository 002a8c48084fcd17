package hamarc

import (
	"errors"
	"fmt"
	"io"

	"github.com/javi11/hamarc/hamming"
)

// Extract pulls names (or every entry, if names is empty) out of the
// archive at archivePath under opts, writing each into the current working
// directory under its recorded basename. If any requested name is absent,
// it fails before writing any output.
func Extract(archivePath string, opts hamming.Options, names []string) error {
	return extractFS(defaultFS, archivePath, opts, names)
}

func extractFS(fsys FileSystem, archivePath string, opts hamming.Options, names []string) error {
	codec, err := hamming.NewCodec(opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArgument, err)
	}

	f, err := fsys.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrFilesystem, archivePath, err)
	}
	defer f.Close()

	entries, err := ReadHeader(f)
	if err != nil {
		return err
	}

	selected, err := selectEntries(entries, names)
	if err != nil {
		return err
	}

	for _, e := range selected {
		if _, err := f.Seek(int64(e.Offset), io.SeekStart); err != nil {
			return fmt.Errorf("%w: seek %s: %v", ErrIO, e.Name, err)
		}
		if err := extractOne(fsys, f, e, codec); err != nil {
			return err
		}
	}
	return nil
}

// selectEntries returns the subset of entries named by names, in the order
// given, or every entry if names is empty. It fails if any requested name
// is not present.
func selectEntries(entries []FileEntry, names []string) ([]FileEntry, error) {
	if len(names) == 0 {
		return entries, nil
	}
	byName := make(map[string]FileEntry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	out := make([]FileEntry, 0, len(names))
	for _, n := range names {
		e, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s not found in archive", ErrArgument, n)
		}
		out = append(out, e)
	}
	return out, nil
}

func extractOne(fsys FileSystem, archive io.Reader, e FileEntry, codec *hamming.Codec) error {
	if err := ensureParentDir(fsys, e.Name); err != nil {
		return err
	}
	out, err := fsys.Create(e.Name)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrFilesystem, e.Name, err)
	}
	defer out.Close()

	limited := io.LimitReader(archive, int64(e.EncodedSize))
	if err := codec.DecodeStream(out, limited, e.OriginalSize); err != nil {
		if errors.Is(err, hamming.ErrUncorrectable) {
			return fmt.Errorf("%w: decode %s: %v", ErrCodec, e.Name, err)
		}
		return fmt.Errorf("%w: decode %s: %v", ErrIO, e.Name, err)
	}
	return nil
}
